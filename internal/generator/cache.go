package generator

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// promptCache is a size-bounded LRU whose entries also expire after a TTL.
// Question slices are copied on the way in and out so callers cannot mutate
// cached batches.
type promptCache struct {
	lru *expirable.LRU[string, []GeneratedQuestion]
}

func newPromptCache(capacity int, ttl time.Duration) *promptCache {
	if capacity < 1 {
		capacity = 1
	}
	return &promptCache{
		lru: expirable.NewLRU[string, []GeneratedQuestion](capacity, nil, ttl),
	}
}

func cacheKey(topic string, count int) string {
	return fmt.Sprintf("%s_%d", topic, count)
}

func (c *promptCache) get(key string) ([]GeneratedQuestion, bool) {
	questions, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return cloneQuestions(questions), true
}

func (c *promptCache) put(key string, questions []GeneratedQuestion) {
	c.lru.Add(key, cloneQuestions(questions))
}

func (c *promptCache) len() int {
	return c.lru.Len()
}

func cloneQuestions(in []GeneratedQuestion) []GeneratedQuestion {
	out := make([]GeneratedQuestion, len(in))
	for i, q := range in {
		q.Options = append([]string(nil), q.Options...)
		if q.CorrectAnswer != nil {
			v := *q.CorrectAnswer
			q.CorrectAnswer = &v
		}
		out[i] = q
	}
	return out
}

package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// SnapshotVersion identifies the state of a quiz's attempt set. Any submitted
// attempt or quiz edit changes at least one field.
type SnapshotVersion struct {
	QuizID        uint
	UpdatedAt     time.Time
	AttemptCount  int
	LastAttemptAt *time.Time
}

// Fingerprint hashes a snapshot version into a stable hex key.
func (v SnapshotVersion) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatUint(uint64(v.QuizID), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(v.UpdatedAt.UnixNano(), 10)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(v.AttemptCount)))
	h.Write([]byte{0})
	if v.LastAttemptAt != nil {
		h.Write([]byte(strconv.FormatInt(v.LastAttemptAt.UnixNano(), 10)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

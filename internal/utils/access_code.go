package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

var alphabetSize = big.NewInt(int64(len(accessCodeAlphabet)))

// GenerateAccessCode returns a random six character code from A-Z0-9.
func GenerateAccessCode() (string, error) {
	code := make([]byte, models.AccessCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

package utils

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

const accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ValidateQuizDifficulty accepts easy, medium and hard.
func ValidateQuizDifficulty(fl validator.FieldLevel) bool {
	switch models.QuizDifficulty(fl.Field().String()) {
	case models.QuizEasy, models.QuizMedium, models.QuizHard:
		return true
	}
	return false
}

// ValidateAccessCode accepts six characters from A-Z0-9, case-insensitively.
func ValidateAccessCode(fl validator.FieldLevel) bool {
	return IsAccessCode(fl.Field().String())
}

// ValidateNotBlank rejects strings that are empty after trimming.
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func IsAccessCode(code string) bool {
	code = strings.ToUpper(code)
	if len(code) != models.AccessCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(accessCodeAlphabet, r) {
			return false
		}
	}
	return true
}

// RegisterCustomValidators registers the quiz validators and reports field
// names by their json tag.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("quiz_difficulty", ValidateQuizDifficulty)
	validate.RegisterValidation("access_code", ValidateAccessCode)
	validate.RegisterValidation("not_blank", ValidateNotBlank)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

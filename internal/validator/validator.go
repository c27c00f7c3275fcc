package validator

import (
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct tag validation with quiz business rules.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a validator with the custom quiz tags registered.
func New() *Validator {
	structValidator := validator.New()
	utils.RegisterCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct checks struct tags and returns ValidationErrors on failure.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Engine exposes the underlying go-playground validator, e.g. for gin binding.
func (v *Validator) Engine() *validator.Validate {
	return v.structValidator
}

func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// В сообщениях используем имена полей из JSON, а не из Go.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Error — ошибка валидации входного DTO.
type Error struct {
	Fields []validator.FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fieldMessage(f))
	}
	return strings.Join(msgs, ", ")
}

// MissingRequired сообщает, что хотя бы одно обязательное поле пустое.
func (e *Error) MissingRequired() bool {
	for _, f := range e.Fields {
		if f.Tag() == "required" {
			return true
		}
	}
	return false
}

// Struct проверяет структуру по тегам validate. Возвращает *Error либо nil.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &Error{Fields: verrs}
	}
	return err
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", e.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email", e.Field())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s characters", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of: %s", e.Field(), e.Param())
	case "json":
		return fmt.Sprintf("Field '%s' must be valid JSON", e.Field())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	zipCodeRegex = regexp.MustCompile(`^[0-9]{5,7}$`)

	bloodTypes = map[string]bool{
		"A+": true, "A-": true,
		"B+": true, "B-": true,
		"AB+": true, "AB-": true,
		"O+": true, "O-": true,
	}

	registerOnce sync.Once
	registerErr  error
)

// Register adds the custom rules to v and reports field names by their json
// tag.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("bloodtype", validateBloodType); err != nil {
		return fmt.Errorf("failed to register bloodtype validator: %w", err)
	}
	if err := v.RegisterValidation("zipcode", validateZipCode); err != nil {
		return fmt.Errorf("failed to register zipcode validator: %w", err)
	}
	return nil
}

// RegisterWithGin installs the custom rules on gin's binding validator. Safe
// to call more than once.
func RegisterWithGin() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

func validateBloodType(fl validator.FieldLevel) bool {
	return IsBloodType(fl.Field().String())
}

func validateZipCode(fl validator.FieldLevel) bool {
	return IsZipCode(fl.Field().String())
}

func IsBloodType(s string) bool {
	return bloodTypes[strings.ToUpper(strings.TrimSpace(s))]
}

func IsZipCode(s string) bool {
	return zipCodeRegex.MatchString(s)
}

// Message renders a binding error as one human-readable line.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "bloodtype":
		return fmt.Sprintf("%s must be one of A+, A-, B+, B-, AB+, AB-, O+, O-", field)
	case "zipcode":
		return fmt.Sprintf("%s must be 5 to 7 digits", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// New returns a single-field validation error.
func New(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate requires the exact YYYY-MM-DD shape and a real calendar date.
func IsValidDate(dateStr string) (time.Time, bool) {
	if !dateRegex.MatchString(dateStr) {
		return time.Time{}, false
	}
	date, err := time.Parse(time.DateOnly, dateStr)
	return date, err == nil
}

const (
	MinYear = 2000
	MaxYear = 2100
)

// ParsePeriod parses month and year path values.
func ParsePeriod(monthStr, yearStr string) (month int, year int, err error) {
	var errs ValidationErrors

	month, convErr := strconv.Atoi(monthStr)
	if convErr != nil || month < 1 || month > 12 {
		errs = append(errs, ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	year, convErr = strconv.Atoi(yearStr)
	if convErr != nil || year < MinYear || year > MaxYear {
		errs = append(errs, ValidationError{Field: "year", Message: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}

var (
	structValidator *playground.Validate
	once            sync.Once
)

func engine() *playground.Validate {
	once.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structValidator
}

// Struct validates `validate` struct tags and converts failures to ValidationErrors keyed by json name.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return errs
}

func fieldMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "datetime":
		return "must match format " + fe.Param()
	}
	return fmt.Sprintf("failed validation for '%s'", fe.Tag())
}

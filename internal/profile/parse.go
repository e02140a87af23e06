package profile

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument indicates the data file is not a usable profile record.
	ErrInvalidDocument = errors.New("profile: invalid document")

	// ErrMissingField indicates a required field is absent or empty.
	ErrMissingField = errors.New("profile: missing required field")
)

// FieldError describes one failed field. It unwraps to ErrMissingField or
// ErrInvalidDocument.
type FieldError struct {
	Field   string
	Message string
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("profile: field %q: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

// FieldErrors collects every failed field of one document.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("profile: %d invalid field(s): %s", len(e), strings.Join(msgs, "; "))
}

// Is matches ErrInvalidDocument for any collection and the wrapped sentinel
// of each contained field error.
func (e FieldErrors) Is(target error) bool {
	if target == ErrInvalidDocument {
		return true
	}
	for _, fe := range e {
		if errors.Is(fe, target) {
			return true
		}
	}
	return false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Parse decodes a YAML document into a Profile and validates it. Either a
// complete record or an error is returned, never a partial record.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseFile reads and parses the data file at path.
func ParseFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks required fields and key uniqueness.
func Validate(p *Profile) error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) *FieldError {
	// Namespace is "Profile.profile.name"; drop the root type name.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return &FieldError{Field: field, Message: "is required", Wrapped: ErrMissingField}
	case "unique":
		return &FieldError{Field: field, Message: fmt.Sprintf("%s must be unique", fe.Param()), Wrapped: ErrInvalidDocument}
	default:
		return &FieldError{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag()), Wrapped: ErrInvalidDocument}
	}
}

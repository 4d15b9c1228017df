package auth

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Role is the learner's track.
type Role string

const (
	RoleStudentPilot Role = "student_pilot"
	RoleMechanic     Role = "mechanic"
	RoleInstructor   Role = "instructor"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleStudentPilot, RoleMechanic, RoleInstructor}

func (r Role) Label() string {
	switch r {
	case RoleStudentPilot:
		return "Student Pilot"
	case RoleMechanic:
		return "Aviation Mechanic"
	case RoleInstructor:
		return "Flight Instructor"
	}
	return string(r)
}

// LoginForm is the sign-in submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the sign-up submission.
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=80"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     Role   `form:"role" validate:"required,oneof=student_pilot mechanic instructor"`
}

// FieldError is one problem with one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every invalid field of a submission in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Field returns the message for field, or "".
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	return v
}

// Validate checks a LoginForm or RegisterForm. Leading and trailing
// whitespace is not significant.
func (f LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

func (f RegisterForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

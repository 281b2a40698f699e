package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReservedNames cannot be used as user names because they collide with
// route segments.
var ReservedNames = []string{"stories"}

var (
	validate     *validator.Validate
	userNameExpr = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)
)

func init() {
	v, err := newValidate()
	if err != nil {
		panic(err)
	}
	validate = v
}

func newValidate() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return IsUserName(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("register username rule: %w", err)
	}
	return v, nil
}

// IsUserName reports whether name is usable as a user (and directory) name.
func IsUserName(name string) bool {
	if !userNameExpr.MatchString(name) {
		return false
	}
	for _, reserved := range ReservedNames {
		if strings.EqualFold(name, reserved) {
			return false
		}
	}
	return true
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

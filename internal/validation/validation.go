// Package validation registers the custom binding tags used by request
// structs and turns validator errors into client facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/HarishP23/OneStop/internal/model"
)

var (
	once        sync.Once
	registerErr error
)

// Register installs the custom tags on gin's binding validator.
// It is safe to call more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding validator is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the custom tags and json field naming on v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("application_status", validateApplicationStatus); err != nil {
		return fmt.Errorf("register application_status: %w", err)
	}
	if err := v.RegisterValidation("account_role", validateAccountRole); err != nil {
		return fmt.Errorf("register account_role: %w", err)
	}
	return nil
}

// Describe builds a short message for a failed ShouldBindJSON call.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return "Missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "Invalid request body"
}

// FieldErrors maps each failing json field to the tag it failed on.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	return model.IsValidApplicationStatus(fl.Field().String())
}

func validateAccountRole(fl validator.FieldLevel) bool {
	_, ok := model.NormalizeRole(fl.Field().String())
	return ok
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

package api

import (
	"church/internal/entity"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bindingRulesOnce sync.Once

// registerBindingRules teaches gin's validator the church_role tag and makes
// validation errors name fields by their JSON key.
func registerBindingRules() {
	bindingRulesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("church_role", func(fl validator.FieldLevel) bool {
			return entity.ValidRole(fl.Field().String())
		})
	})
}

// bindJSON decodes the body into req and writes the 400 response itself when
// decoding or validation fails.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		InvalidPayload(c)
		return false
	}

	first := fieldErrs[0]
	if first.Tag() == "required" {
		MissingField(c, first.Field())
		return false
	}
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest,
		fmt.Sprintf("%s is invalid", first.Field()),
		gin.H{"field": first.Field(), "rule": first.Tag()})
	return false
}

// requireText trims value and reports a missing field when nothing is left.
func requireText(c *gin.Context, field, value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		MissingField(c, field)
		return "", false
	}
	return trimmed, true
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

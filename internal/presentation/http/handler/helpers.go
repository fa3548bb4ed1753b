package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/milk-ledger/internal/domain/enum"
	"github.com/sangkips/milk-ledger/internal/presentation/http/middleware"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
	"github.com/sangkips/milk-ledger/pkg/apperror"
)

// GetRole extracts the role from the Gin context. Requests that did not pass
// the role middleware are treated as customers.
func GetRole(c *gin.Context) enum.Role {
	role, exists := c.Get(middleware.RoleKey)
	if !exists {
		return enum.RoleCustomer
	}
	r, ok := role.(enum.Role)
	if !ok {
		return enum.RoleCustomer
	}
	return r
}

// bindJSON binds the request body. Tag violations answer 422 with one entry
// per field; malformed JSON answers 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationError(c, fieldErrors(verrs))
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// bindURI binds path parameters and answers 400 when one is malformed.
func bindURI(c *gin.Context, uri interface{}) bool {
	if err := c.ShouldBindUri(uri); err != nil {
		response.BadRequest(c, invalidParamMessage(err))
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fieldName(fe),
			Message: tagMessage(fe),
		})
	}
	return out
}

// fieldName drops the request type from the namespace, leaving the JSON
// path, e.g. other_items[0].price.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "0" {
			return "must not be negative"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}

func invalidParamMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "yearmonth":
			return "Invalid month, expected YYYY-MM"
		case "isodate":
			return "Invalid date, expected YYYY-MM-DD"
		}
	}
	return "Invalid path parameter"
}

package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateRequest runs the struct's validate tags and reports the first failure as a
// validation error naming the JSON field.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Validation(err.Error())
	}
	return apperror.Validation(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing required field: %s", field)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot be empty", field)
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "iso8601":
		return fmt.Sprintf("%s must be an ISO-8601 timestamp", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", field)
	default:
		return fmt.Sprintf("Invalid value for %s", field)
	}
}

// ParseBody decodes the JSON body into req whatever the Content-Type header says.
// An empty or malformed body is a validation error.
func ParseBody(c *fiber.Ctx, req any) error {
	body := c.Body()
	if len(body) == 0 {
		return apperror.Validation("No data provided")
	}
	if err := c.App().Config().JSONDecoder(body, req); err != nil {
		return apperror.Validation("Invalid JSON body")
	}
	return nil
}

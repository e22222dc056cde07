package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"topup-store/internal/common/enum"
	types "topup-store/internal/common/type"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var val *validator.Validate

var validationMessages = map[string]string{
	"required":        "is required",
	"url":             "must be a valid URL",
	"number":          "must be a number",
	"oneof":           "must be one of the allowed values: %s",
	"email":           "must be a valid email address",
	"min":             "must be greater than or equal to %s",
	"max":             "must be less than or equal to %s",
	"len":             "must have the exact length of %s",
	"gt":              "must be greater than %s",
	"gte":             "must be greater than or equal to %s",
	"lt":              "must be less than %s",
	"lte":             "must be less than or equal to %s",
	"enum":            "must be one of the allowed enum values: %s",
	"stringToBool":    "must be a boolean value",
	"mapStringString": "must be a map of non-empty keys",
	"cartItemID":      "must be a cart item id",
	"imageMime":       "must be an image content type",
}

func Setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("stringToBool", types.ValidateStringToBool); err != nil {
		return fmt.Errorf("failed to register stringToBool validation: %w", err)
	}
	if err := v.RegisterValidation("mapStringString", validateMapStringString); err != nil {
		return fmt.Errorf("failed to register map string validation: %w", err)
	}
	if err := v.RegisterValidation("cartItemID", validateCartItemID); err != nil {
		return fmt.Errorf("failed to register cart item id validation: %w", err)
	}
	if err := v.RegisterValidation("imageMime", validateImageMime); err != nil {
		return fmt.Errorf("failed to register image mime validation: %w", err)
	}
	return nil
}

func Validate(payload interface{}) error {
	if val == nil {
		if err := Setup(); err != nil {
			return err
		}
	}

	if err := val.Struct(payload); err != nil {
		var errorMessages []string

		validationErrors := parsingErrorValidate(err)
		if validationErrors != "" {
			errorMessages = append(errorMessages, validationErrors)
		}
		message := "Validation failed: " + strings.Join(errorMessages, ", ")
		return errors.New(message)
	}

	return nil
}

func parsingErrorValidate(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			name := e.Namespace()
			field := e.Field()
			tag := e.Tag()
			param := e.Param()
			tp := e.Type()

			msg, ok := validationMessages[tag]
			if !ok {
				msg = "is invalid"
			}
			switch tag {
			case "enum":
				msg = fmt.Sprintf(msg, tp)
			default:
				if strings.Contains(msg, "%s") {
					msg = fmt.Sprintf(msg, param)
				}
			}
			sb.WriteString(fmt.Sprintf("%s: %s %s", name, field, msg))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}

package validation

import "github.com/go-playground/validator/v10"

// validateMapStringString accepts empty values, since a cleared field is stored as "".
func validateMapStringString(fl validator.FieldLevel) bool {
	m, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}

	for k := range m {
		if k == "" {
			return false
		}
	}

	return true
}

package helper

import (
	"encoding/json"
	"strings"
)

// StringToStruct decodes a JSON string. Empty input yields a nil result and no error.
func StringToStruct[I any](payload string) (result *I, err error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil
	}
	err = json.Unmarshal([]byte(payload), &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

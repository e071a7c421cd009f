package common

import "fmt"

// ParseIDList parses a parameter that can be either a single email id or an
// array of email ids.
func ParseIDList(param interface{}, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var result []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		result = []string{v}
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			if str == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
			}
			result = append(result, str)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return result, nil
}

// MaxResultsFromArgs extracts the optional maxResults argument. JSON numbers
// arrive as float64 in the arguments map. Non-positive and missing values
// fall back to the provided default.
func MaxResultsFromArgs(args map[string]interface{}, defaultMax int) int {
	if v, ok := args["maxResults"].(float64); ok && v > 0 {
		return int(v)
	}
	return defaultMax
}

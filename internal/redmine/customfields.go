package redmine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"redmine-cli/internal/apperr"
)

// CustomField is a custom field as read from the server. Value may be a
// string, a number, a bool, a list, or null.
type CustomField struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Value    any    `json:"value"`
	Multiple *bool  `json:"multiple,omitempty"`
}

// CustomFieldValue is a custom field as written to the server, or used as a
// cf_<id> list filter.
type CustomFieldValue struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// DisplayValue renders the value for tables.
func (cf CustomField) DisplayValue() string {
	switch v := cf.Value.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		if len(v) == 0 {
			return "-"
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
				continue
			}
			b, _ := json.Marshal(item)
			parts = append(parts, string(b))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// ParseCustomFields parses repeated --cf ID=VALUE arguments. VALUE may be empty.
func ParseCustomFields(args []string) ([]CustomFieldValue, error) {
	values := make([]CustomFieldValue, 0, len(args))
	for _, arg := range args {
		idPart, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, apperr.Validationf("invalid custom field %q", arg).
				WithHint("Use the format `--cf ID=VALUE`, e.g. `--cf 5=urgent`.")
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idPart), 10, 31)
		if err != nil {
			return nil, apperr.Validationf("invalid custom field id %q", idPart).
				WithHint("Custom field ids are numeric, e.g. `--cf 5=urgent`.")
		}
		values = append(values, CustomFieldValue{ID: int(id), Value: value})
	}
	return values, nil
}

func findCustomField(fields []CustomField, id int) (CustomField, bool) {
	for _, cf := range fields {
		if cf.ID == id {
			return cf, true
		}
	}
	return CustomField{}, false
}

// internal/common/validation/coerce.go
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form answers arrive as whatever the front end serialised: numbers, numeric
// strings ("$1,200", "2.5%"), blanks or nulls. Blank and nil become the zero
// value; text that is not a number is an error.

var numberNoise = strings.NewReplacer(",", "", "$", "", "%", "", " ", "")

func ToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return checkFinite(val)
	case float32:
		return checkFinite(float64(val))
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val.String())
		}
		return checkFinite(f)
	case string:
		s := numberNoise.Replace(strings.TrimSpace(val))
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", val)
		}
		return checkFinite(f)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func checkFinite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return f, nil
}

// ToInt accepts whole numbers only; "12.5" is rejected rather than truncated.
func ToInt(v interface{}) (int, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected whole number, got %v", f)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("number out of range: %v", f)
	}
	return int(f), nil
}

// ToOptionalBool distinguishes an unanswered yes/no question (nil) from "no".
func ToOptionalBool(v interface{}) (*bool, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &val, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		if s == "" || s == "null" {
			return nil, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			switch s {
			case "yes", "y":
				b = true
			case "no", "n":
				b = false
			default:
				return nil, fmt.Errorf("expected yes/no, got %q", val)
			}
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("expected boolean, got %T", v)
	}
}

func ToBool(v interface{}) (bool, error) {
	b, err := ToOptionalBool(v)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

func ToString(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(val), nil
	case float64, int, int64, bool:
		return fmt.Sprint(val), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func ToStringSlice(v interface{}) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return val, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, err := ToString(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			if s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
}

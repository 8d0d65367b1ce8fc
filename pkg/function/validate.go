package function

// RunConfig holds the submitted value of each config field, keyed by field ID.
// Values are the JSON scalar types: string, float64/int, bool.
type RunConfig map[string]interface{}

// ValidateRunConfig checks every field present in config against its
// constraint. Fields absent from config are not checked here; required-field
// presence is left to the function's own validate hook. Returns false on the
// first violated field.
func ValidateRunConfig(config RunConfig, constraints ConstraintMap) bool {
	for id, value := range config {
		constraint, ok := constraints[id]
		if !ok {
			continue
		}

		switch constraint.Type {
		case ConstraintString:
			str, ok := value.(string)
			if !ok {
				return false
			}
			if constraint.AcceptedValues != nil {
				if !containsString(constraint.AcceptedValues, str) {
					return false
				}
			} else {
				if constraint.MaxLength != nil && len(str) > *constraint.MaxLength {
					return false
				}
				if constraint.MinLength != nil && len(str) < *constraint.MinLength {
					return false
				}
			}
		case ConstraintNumber:
			num, ok := asNumber(value)
			if !ok {
				return false
			}
			if constraint.AcceptedValues != nil {
				if !containsNumber(constraint.AcceptedValues, num) {
					return false
				}
			} else {
				if constraint.MaxValue != nil && num > *constraint.MaxValue {
					return false
				}
				if constraint.MinValue != nil && num < *constraint.MinValue {
					return false
				}
				if constraint.MustBePositive && num < 0 {
					return false
				}
				if constraint.NonZero && num == 0 {
					return false
				}
			}
		case ConstraintBoolean:
			if _, ok := value.(bool); !ok {
				return false
			}
		case ConstraintDropdown:
			if _, isBool := value.(bool); isBool {
				return false
			}
			if !acceptedWithMatchingType(constraint.AcceptedValues, value) {
				return false
			}
		}
	}
	return true
}

// asNumber normalizes the numeric types a config value can arrive as.
// bool is explicitly not a number.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func containsString(accepted []interface{}, value string) bool {
	for _, a := range accepted {
		if s, ok := a.(string); ok && s == value {
			return true
		}
	}
	return false
}

func containsNumber(accepted []interface{}, value float64) bool {
	for _, a := range accepted {
		if n, ok := asNumber(a); ok && n == value {
			return true
		}
	}
	return false
}

// acceptedWithMatchingType requires the runtime type to match, not just the
// value: the string "4" does not satisfy an accepted numeric 4.
func acceptedWithMatchingType(accepted []interface{}, value interface{}) bool {
	if str, ok := value.(string); ok {
		return containsString(accepted, str)
	}
	if num, ok := asNumber(value); ok {
		return containsNumber(accepted, num)
	}
	return false
}

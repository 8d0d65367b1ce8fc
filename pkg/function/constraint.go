package function

// ConstraintType discriminates the constraint union.
type ConstraintType string

const (
	ConstraintString   ConstraintType = "STRING"
	ConstraintNumber   ConstraintType = "NUMBER"
	ConstraintDropdown ConstraintType = "DROPDOWN"
	ConstraintBoolean  ConstraintType = "BOOLEAN"
)

// Constraint restricts the values a config field accepts. Only the fields
// relevant to Type are ever set; the rest stay nil/zero.
type Constraint struct {
	Type ConstraintType `json:"type"`

	// STRING
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// NUMBER
	MinValue       *float64 `json:"minValue,omitempty"`
	MaxValue       *float64 `json:"maxValue,omitempty"`
	MustBePositive bool     `json:"mustBePositive,omitempty"`
	NonZero        bool     `json:"nonZero,omitempty"`

	// STRING, NUMBER: takes precedence over all other checks when set.
	// DROPDOWN: required, values may mix strings and numbers.
	AcceptedValues []interface{} `json:"acceptedValues,omitempty"`
}

// ConstraintMap maps config field ID -> constraint.
type ConstraintMap map[string]Constraint

// IntPtr and FloatPtr are helpers for building constraint literals.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

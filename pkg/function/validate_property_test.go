package function

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_StringsWithinAcceptedValuesAlwaysPass(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a string drawn from acceptedValues always validates", prop.ForAll(
		func(values []string, pick uint) bool {
			if len(values) == 0 {
				return true
			}
			chosen := values[int(pick)%len(values)]

			accepted := make([]interface{}, len(values))
			for i, v := range values {
				accepted[i] = v
			}
			constraints := ConstraintMap{
				"field": {Type: ConstraintString, AcceptedValues: accepted},
			}
			return ValidateRunConfig(RunConfig{"field": chosen}, constraints)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.UInt(),
	))

	properties.Property("a string meeting its own length as minLength always validates", prop.ForAll(
		func(value string) bool {
			constraints := ConstraintMap{
				"field": {Type: ConstraintString, MinLength: IntPtr(len(value))},
			}
			return ValidateRunConfig(RunConfig{"field": value}, constraints)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_NumberConstraints(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("negative numbers never pass mustBePositive", prop.ForAll(
		func(n int) bool {
			constraints := ConstraintMap{
				"field": {Type: ConstraintNumber, MustBePositive: true},
			}
			return !ValidateRunConfig(RunConfig{"field": n}, constraints)
		},
		gen.IntRange(-1000000, -1),
	))

	properties.Property("nonzero numbers always pass nonZero", prop.ForAll(
		func(n int) bool {
			if n == 0 {
				return true
			}
			constraints := ConstraintMap{
				"field": {Type: ConstraintNumber, NonZero: true},
			}
			return ValidateRunConfig(RunConfig{"field": n}, constraints)
		},
		gen.IntRange(-1000, 1000),
	))

	properties.Property("numbers inside a min-max window always validate", prop.ForAll(
		func(lo, hi, n int) bool {
			if lo > hi {
				lo, hi = hi, lo
			}
			if n < lo || n > hi {
				return true
			}
			constraints := ConstraintMap{
				"field": {Type: ConstraintNumber, MinValue: FloatPtr(float64(lo)), MaxValue: FloatPtr(float64(hi))},
			}
			return ValidateRunConfig(RunConfig{"field": n}, constraints)
		},
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

func TestProperty_DropdownTypeMismatchNeverPasses(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a stringified accepted number never validates", prop.ForAll(
		func(n int) bool {
			constraints := ConstraintMap{
				"field": {Type: ConstraintDropdown, AcceptedValues: []interface{}{n}},
			}
			stringified := RunConfig{"field": strconv.Itoa(n)}
			return !ValidateRunConfig(stringified, constraints)
		},
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t)
}

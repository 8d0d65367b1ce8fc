package config

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestApplyStateDefaults_ZeroConfigGetsAllDefaults(t *testing.T) {
	var s StateConfig
	applyStateDefaults(&s)

	assert.Equal(t, defaultDisconnectTimeout, s.DisconnectTimeout)
	assert.Equal(t, defaultSystemInfoRefresh, s.SystemInfoRefresh)
	assert.Equal(t, defaultFunctionListRefresh, s.FunctionListRefresh)
	assert.Equal(t, defaultSweepInterval, s.SweepInterval)
}

func TestApplyStateDefaults_ExplicitValuesAreKept(t *testing.T) {
	s := StateConfig{
		DisconnectTimeout:   10 * time.Second,
		SystemInfoRefresh:   30 * time.Second,
		FunctionListRefresh: 2 * time.Hour,
		SweepInterval:       500 * time.Millisecond,
	}
	applyStateDefaults(&s)

	assert.Equal(t, 10*time.Second, s.DisconnectTimeout)
	assert.Equal(t, 30*time.Second, s.SystemInfoRefresh)
	assert.Equal(t, 2*time.Hour, s.FunctionListRefresh)
	assert.Equal(t, 500*time.Millisecond, s.SweepInterval)
}

func TestProperty_StateDefaultsNeverLeaveZeroOrNegativeDurations(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	durationGen := gen.Int64Range(-int64(time.Hour), int64(time.Hour)).
		Map(func(n int64) time.Duration { return time.Duration(n) })

	properties.Property("all durations positive after defaults", prop.ForAll(
		func(disconnect, sysInfo, funcList, sweep time.Duration) bool {
			s := StateConfig{
				DisconnectTimeout:   disconnect,
				SystemInfoRefresh:   sysInfo,
				FunctionListRefresh: funcList,
				SweepInterval:       sweep,
			}
			applyStateDefaults(&s)
			return s.DisconnectTimeout > 0 &&
				s.SystemInfoRefresh > 0 &&
				s.FunctionListRefresh > 0 &&
				s.SweepInterval > 0
		},
		durationGen, durationGen, durationGen, durationGen,
	))

	properties.Property("positive durations pass through untouched", prop.ForAll(
		func(n int64) bool {
			d := time.Duration(n)
			s := StateConfig{
				DisconnectTimeout:   d,
				SystemInfoRefresh:   d,
				FunctionListRefresh: d,
				SweepInterval:       d,
			}
			applyStateDefaults(&s)
			return s.DisconnectTimeout == d &&
				s.SystemInfoRefresh == d &&
				s.FunctionListRefresh == d &&
				s.SweepInterval == d
		},
		gen.Int64Range(1, int64(24*time.Hour)),
	))

	properties.TestingRun(t)
}

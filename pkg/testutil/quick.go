// Package testutil has helpers shared by the test suites.
package testutil

import (
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// QuickConfig is re-exported so callers don't need to import testing/quick
// just to pass a config.
type QuickConfig = quick.Config

// QuickCheck runs property fn (a func returning bool) against randomized
// inputs, then replays the pinned input tuples.  Pinning inputs that broke
// the property once keeps old regressions from quietly coming back.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig, pinned ...[]interface{}) {
	t.Helper()
	assert.NoError(t, quick.Check(fn, &cfg))

	fnVal := reflect.ValueOf(fn)
	for i, inputs := range pinned {
		if len(inputs) != fnVal.Type().NumIn() {
			t.Errorf("pinned input #%d has %d values, but the property takes %d",
				i, len(inputs), fnVal.Type().NumIn())
			continue
		}
		args := make([]reflect.Value, len(inputs))
		for j, input := range inputs {
			args[j] = reflect.ValueOf(input)
		}
		if !fnVal.Call(args)[0].Bool() {
			assert.NoError(t, fmt.Errorf("pinned%w", &quick.CheckError{
				Count: i + 1,
				In:    inputs,
			}))
		}
	}
}

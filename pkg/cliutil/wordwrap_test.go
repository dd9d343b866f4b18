package cliutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nsfr750/pack/pkg/cliutil"
)

func TestWrap(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Width    int
		Input    string
		Expected string
	}
	testcases := map[string]testcase{
		"no-wrapping": {
			Width:    0,
			Input:    "leave this line exactly as it is, however long it happens to be",
			Expected: "leave this line exactly as it is, however long it happens to be",
		},
		"short-line": {
			Width:    80,
			Input:    "fits on one line",
			Expected: "fits on one line",
		},
		"breaks": {
			Width: 25,
			// Breaks at width-5.
			Input:    "aaaa bbbb cccc dddd eeee",
			Expected: "aaaa bbbb cccc dddd\neeee",
		},
		"paragraphs": {
			Width:    80,
			Input:    "first paragraph.\n\nsecond paragraph.",
			Expected: "first paragraph.\n\nsecond paragraph.",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Expected, cliutil.Wrap(tc.Width, tc.Input))
		})
	}
}

func TestWrapIndent(t *testing.T) {
	t.Parallel()
	// 4-space indent on continuation lines only.
	assert.Equal(t,
		"aaaa bbbb\n    cccc dddd",
		cliutil.WrapIndent(4, 19, "aaaa bbbb cccc dddd"))
}

package cliutil

import (
	"strings"
)

// Wrap word-wraps s to width w.  A w of 0 means no wrapping.  Lines actually
// break a little short of w so a trailing short word does not end up alone
// on its own line.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// WrapIndent is Wrap with continuation lines indented by i spaces.  The
// first line is not indented; the caller has already emitted its leading
// text.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	if width == 0 {
		return s
	}
	limit := width - 5
	if limit <= indent {
		limit = indent + 1
	}
	prefix := strings.Repeat(" ", indent)

	var out strings.Builder
	for p, para := range strings.Split(s, "\n\n") {
		if p > 0 {
			out.WriteString("\n" + prefix + "\n" + prefix)
		}
		lineLen := indent
		for i, word := range strings.Fields(para) {
			switch {
			case i == 0:
				out.WriteString(word)
				lineLen += len(word)
			case lineLen+1+len(word) > limit:
				out.WriteString("\n" + prefix + word)
				lineLen = indent + len(word)
			default:
				out.WriteString(" " + word)
				lineLen += 1 + len(word)
			}
		}
	}
	return out.String()
}

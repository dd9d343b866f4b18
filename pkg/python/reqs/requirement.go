// Package reqs deals with dependency requirement strings as they appear in
// project metadata and requirements.txt files: a distribution name, optional
// extras, an optional version specifier, and an optional environment marker
// ("requests[socks]>=2.25,<3; python_version >= '3.6'").
package reqs

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Nsfr750/pack/pkg/python/pep440"
)

type Requirement struct {
	// Name as written; use Key() for comparisons.
	Name      string
	Extras    []string
	Specifier pep440.Specifier
	// URL is set instead of Specifier for direct references
	// ("pip @ https://...").
	URL string
	// Marker is the raw environment marker, carried through unevaluated.
	Marker string
}

// "The only valid characters in a name are the ASCII alphabet, ASCII
// numbers, '.', '-', and '_'", and it must begin and end with a letter or
// number.
var reName = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// Parse parses a single requirement string.
func Parse(str string) (*Requirement, error) {
	var ret Requirement

	str = strings.TrimSpace(str)
	if str == "" {
		return nil, fmt.Errorf("reqs.Parse: empty requirement")
	}

	if i := strings.Index(str, ";"); i >= 0 {
		ret.Marker = strings.TrimSpace(str[i+1:])
		str = strings.TrimSpace(str[:i])
	}

	if i := strings.Index(str, "@"); i >= 0 {
		ret.URL = strings.TrimSpace(str[i+1:])
		str = strings.TrimSpace(str[:i])
	}

	if i := strings.IndexAny(str, "<>=!~"); i >= 0 {
		if ret.URL != "" {
			return nil, fmt.Errorf("reqs.Parse: %q: direct references take no version specifier", str)
		}
		spec, err := pep440.ParseSpecifier(str[i:])
		if err != nil {
			return nil, fmt.Errorf("reqs.Parse: %q: %w", str, err)
		}
		ret.Specifier = spec
		str = strings.TrimSpace(str[:i])
	}

	if i := strings.Index(str, "["); i >= 0 {
		j := strings.Index(str, "]")
		if j < i {
			return nil, fmt.Errorf("reqs.Parse: %q: unterminated extras", str)
		}
		for _, extra := range strings.Split(str[i+1:j], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				ret.Extras = append(ret.Extras, extra)
			}
		}
		str = strings.TrimSpace(str[:i] + str[j+1:])
	}

	if !reName.MatchString(str) {
		return nil, fmt.Errorf("reqs.Parse: invalid distribution name: %q", str)
	}
	ret.Name = str

	return &ret, nil
}

// String renders the requirement in canonical form.
func (req Requirement) String() string {
	var ret strings.Builder
	ret.WriteString(req.Name)
	if len(req.Extras) > 0 {
		ret.WriteString("[" + strings.Join(req.Extras, ",") + "]")
	}
	if len(req.Specifier) > 0 {
		ret.WriteString(req.Specifier.String())
	}
	if req.URL != "" {
		ret.WriteString(" @ " + req.URL)
	}
	if req.Marker != "" {
		ret.WriteString(" ; " + req.Marker)
	}
	return ret.String()
}

// Key returns the requirement's name normalized per PEP 503: lowercased,
// with runs of "-", "_", and "." collapsed to a single "-".
func (req Requirement) Key() string {
	return NormalizeName(req.Name)
}

var reNameSep = regexp.MustCompile(`[-_.]+`)

func NormalizeName(name string) string {
	return strings.ToLower(reNameSep.ReplaceAllLiteralString(name, "-"))
}

// ParseFile reads a requirements.txt: one requirement per line, "#" comments,
// blank lines ignored.  Lines that are pip options ("-r", "--index-url", ...)
// are skipped rather than rejected, since pip owns their semantics.
func ParseFile(r io.Reader) ([]Requirement, error) {
	var ret []Requirement
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		req, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		ret = append(ret, *req)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

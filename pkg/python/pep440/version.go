// Package pep440 implements the PEP 440 version scheme: parsing and
// normalization of version identifiers, their total ordering, and version
// specifiers.
//
// https://peps.python.org/pep-0440/
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

// A Version is a parsed public version identifier, optionally with a local
// version label ("1!2.3.4rc5.post6.dev7+ubuntu.8").
type Version struct {
	// Epoch segment: "N!"
	Epoch int
	// Release segment: "N(.N)*"
	Release []int
	// Pre-release segment: "{a|b|rc}N"
	Pre *PreRelease
	// Post-release segment: ".postN"
	Post *int
	// Development release segment: ".devN"
	Dev *int
	// Local version label: "+foo.N.bar"; each dot-separated segment is
	// either an integer or a lowercase string.
	Local []intstr.IntOrString
}

type PreRelease struct {
	L string // "a", "b", or "rc" once normalized
	N int
}

// reVersion is the "Appendix B" regular expression from the PEP (as published
// by the pypa/packaging project), accepting the inputs that normalization is
// defined for.
//
//nolint:lll // upstream regexp
var reVersion = regexp.MustCompile(`(?i)^\s*v?(?:(?:(?P<epoch>[0-9]+)!)?(?P<release>[0-9]+(?:\.[0-9]+)*)(?P<pre>[-_\.]?(?P<pre_l>a|b|c|rc|alpha|beta|pre|preview)[-_\.]?(?P<pre_n>[0-9]+)?)?(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_\.]?(?P<post_l>post|rev|r)[-_\.]?(?P<post_n2>[0-9]+)?))?(?P<dev>[-_\.]?(?P<dev_l>dev)[-_\.]?(?P<dev_n>[0-9]+)?)?)(?:\+(?P<local>[a-z0-9]+(?:[-_\.][a-z0-9]+)*))?\s*$`)

// Parse parses a version string, applying the PEP's normalization rules
// (case folding, alternate pre/post spellings, "v" prefix, separator
// variants).
func Parse(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("pep440: invalid version: %q", str)
	}

	var ver Version

	if epoch := match[reVersion.SubexpIndex("epoch")]; epoch != "" {
		n, err := strconv.Atoi(epoch)
		if err != nil {
			return nil, fmt.Errorf("pep440: %q: epoch: %w", str, err)
		}
		ver.Epoch = n
	}

	for _, seg := range strings.Split(match[reVersion.SubexpIndex("release")], ".") {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("pep440: %q: release segment: %w", str, err)
		}
		ver.Release = append(ver.Release, n)
	}

	if l := match[reVersion.SubexpIndex("pre_l")]; l != "" {
		n := 0
		if nStr := match[reVersion.SubexpIndex("pre_n")]; nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Pre = &PreRelease{L: normalizePreLetter(strings.ToLower(l)), N: n}
	}

	if match[reVersion.SubexpIndex("post")] != "" {
		n := 0
		if nStr := match[reVersion.SubexpIndex("post_n1")] + match[reVersion.SubexpIndex("post_n2")]; nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Post = &n
	}

	if match[reVersion.SubexpIndex("dev")] != "" {
		n := 0
		if nStr := match[reVersion.SubexpIndex("dev_n")]; nStr != "" {
			n, _ = strconv.Atoi(nStr)
		}
		ver.Dev = &n
	}

	for _, seg := range strings.FieldsFunc(match[reVersion.SubexpIndex("local")], func(r rune) bool {
		return strings.ContainsRune("-_.", r)
	}) {
		ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(seg)))
	}

	return &ver, nil
}

// MustParse is Parse, but panics on error.  For use with known-good constants.
func MustParse(str string) Version {
	ver, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return *ver
}

func normalizePreLetter(l string) string {
	switch l {
	case "alpha":
		return "a"
	case "beta":
		return "b"
	case "c", "pre", "preview":
		return "rc"
	default:
		return l
	}
}

// String renders the version in normalized form.
func (ver Version) String() string {
	var ret strings.Builder
	if ver.Epoch > 0 {
		fmt.Fprintf(&ret, "%d!", ver.Epoch)
	}
	for i, seg := range ver.Release {
		if i > 0 {
			ret.WriteByte('.')
		}
		fmt.Fprintf(&ret, "%d", seg)
	}
	if ver.Pre != nil {
		fmt.Fprintf(&ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(&ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(&ret, ".dev%d", *ver.Dev)
	}
	sep := "+"
	for _, seg := range ver.Local {
		ret.WriteString(sep)
		ret.WriteString(seg.String())
		sep = "."
	}
	return ret.String()
}

// IsFinal reports whether the version is a final release: no pre, post, dev,
// or local part.
func (ver Version) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil && len(ver.Local) == 0
}

// IsPreRelease reports whether installation tools should by default exclude
// this version when choosing candidates.
func (ver Version) IsPreRelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

// Major, Minor, and Micro return the leading release segments, with absent
// segments reading as zero.
func (ver Version) Major() int { return ver.releaseSegment(0) }
func (ver Version) Minor() int { return ver.releaseSegment(1) }
func (ver Version) Micro() int { return ver.releaseSegment(2) }

func (ver Version) releaseSegment(i int) int {
	if i < len(ver.Release) {
		return ver.Release[i]
	}
	return 0
}

// Cmp returns <0 if a sorts before b, >0 if a sorts after b, and 0 if they
// are equal.  Only the sign is meaningful.
func (a Version) Cmp(b Version) int {
	if d := a.Epoch - b.Epoch; d != 0 {
		return d
	}
	if d := cmpRelease(a, b); d != 0 {
		return d
	}
	if d := cmpPre(a, b); d != 0 {
		return d
	}
	if d := cmpPost(a, b); d != 0 {
		return d
	}
	if d := cmpDev(a, b); d != 0 {
		return d
	}
	return cmpLocal(a.Local, b.Local)
}

// cmpRelease pads the shorter release segment list with zeros.
func cmpRelease(a, b Version) int {
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if d := a.releaseSegment(i) - b.releaseSegment(i); d != 0 {
			return d
		}
	}
	return 0
}

// Pre-release phases sort a < b < rc < final.  A bare dev release (no pre and
// no post part) sorts before any pre-release of the same release segment.
var preOrder = map[string]int{
	"a":  -3,
	"b":  -2,
	"rc": -1,
	// absent: 0
}

func cmpPre(a, b Version) int {
	var aL, aN, bL, bN int
	if a.Pre != nil {
		aL, aN = preOrder[a.Pre.L], a.Pre.N
	} else if a.Dev != nil && a.Post == nil {
		aL = -4
	}
	if b.Pre != nil {
		bL, bN = preOrder[b.Pre.L], b.Pre.N
	} else if b.Dev != nil && b.Post == nil {
		bL = -4
	}
	if aL != bL {
		return aL - bL
	}
	return aN - bN
}

func cmpPost(a, b Version) int {
	aN, bN := -1, -1
	if a.Post != nil {
		aN = *a.Post
	}
	if b.Post != nil {
		bN = *b.Post
	}
	return aN - bN
}

func cmpDev(a, b Version) int {
	switch {
	case a.Dev == nil && b.Dev == nil:
		return 0
	case a.Dev == nil:
		return 1
	case b.Dev == nil:
		return -1
	default:
		return *a.Dev - *b.Dev
	}
}

// cmpLocal compares local version labels segment by segment: integer
// segments compare numerically and beat string segments, string segments
// compare lexicographically, and the longer label wins on a shared prefix.
func cmpLocal(a, b []intstr.IntOrString) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i >= len(a):
			return -1
		case i >= len(b):
			return 1
		}
		if d := cmpLocalSegment(a[i], b[i]); d != 0 {
			return d
		}
	}
	return 0
}

func cmpLocalSegment(a, b intstr.IntOrString) int {
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.Int:
		return 1
	case b.Type == intstr.Int:
		return -1
	default:
		return strings.Compare(a.StrVal, b.StrVal)
	}
}

package pep440

import (
	"fmt"
	"strings"
)

// A Specifier is a comma-separated series of version clauses; a candidate
// version must match every clause ("~=0.9,>=1.0,!=1.3.4.*,<2.0").
type Specifier []Clause

// A Clause is a single comparison against a version.
type Clause struct {
	Op      Op
	Version Version
}

type Op int

const (
	OpCompatible     Op = iota // ~=
	OpEqual                    // ==
	OpEqualPrefix              // ==V.*
	OpNotEqual                 // !=
	OpNotEqualPrefix           // !=V.*
	OpLE
	OpGE
	OpLT
	OpGT
)

var opNames = map[Op]string{
	OpCompatible:     "~=",
	OpEqual:          "==",
	OpEqualPrefix:    "==",
	OpNotEqual:       "!=",
	OpNotEqualPrefix: "!=",
	OpLE:             "<=",
	OpGE:             ">=",
	OpLT:             "<",
	OpGT:             ">",
}

func (op Op) String() string {
	str, ok := opNames[op]
	if !ok {
		panic(fmt.Errorf("invalid pep440.Op: %d", int(op)))
	}
	return str
}

// ParseSpecifier parses a version specifier.  The "===" arbitrary-equality
// operator is rejected; versions must be PEP 440 compliant.
func ParseSpecifier(str string) (Specifier, error) {
	var ret Specifier
	for _, clauseStr := range strings.Split(str, ",") {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		clause, err := parseClause(clauseStr)
		if err != nil {
			return nil, fmt.Errorf("pep440.ParseSpecifier: %w", err)
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

func parseClause(str string) (Clause, error) {
	var ret Clause
	minSegments := 1
	devOK := true
	localOK := false
	switch {
	case strings.HasPrefix(str, "==="):
		return ret, fmt.Errorf("arbitrary equality (===) is not supported")
	case strings.HasPrefix(str, "~="):
		ret.Op = OpCompatible
		str = str[2:]
		minSegments = 2
	case strings.HasPrefix(str, "=="):
		ret.Op = OpEqual
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.Op = OpEqualPrefix
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "!="):
		ret.Op = OpNotEqual
		str = str[2:]
		localOK = true
		if strings.HasSuffix(str, ".*") {
			ret.Op = OpNotEqualPrefix
			str = strings.TrimSuffix(str, ".*")
			devOK = false
			localOK = false
		}
	case strings.HasPrefix(str, "<="):
		ret.Op = OpLE
		str = str[2:]
	case strings.HasPrefix(str, ">="):
		ret.Op = OpGE
		str = str[2:]
	case strings.HasPrefix(str, "<"):
		ret.Op = OpLT
		str = str[1:]
	case strings.HasPrefix(str, ">"):
		ret.Op = OpGT
		str = str[1:]
	default:
		return ret, fmt.Errorf("invalid comparison operator in clause %q", str)
	}
	ver, err := Parse(str)
	if err != nil {
		return ret, err
	}
	if len(ver.Release) < minSegments {
		return ret, fmt.Errorf("%s clauses need at least %d release segments", ret.Op, minSegments)
	}
	if ver.Dev != nil && !devOK {
		return ret, fmt.Errorf("dev-part not permitted in %s.* clauses", ret.Op)
	}
	if len(ver.Local) > 0 && !localOK {
		return ret, fmt.Errorf("local-part not permitted in %s clauses", ret.Op)
	}
	ret.Version = *ver
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

func (clause Clause) String() string {
	str := clause.Op.String() + clause.Version.String()
	if clause.Op == OpEqualPrefix || clause.Op == OpNotEqualPrefix {
		str += ".*"
	}
	return str
}

// Match reports whether ver satisfies every clause of the specifier.  The
// empty specifier matches everything.
func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

func (clause Clause) Match(ver Version) bool {
	spec := clause.Version
	switch clause.Op {
	case OpCompatible:
		// ~=V.N is >=V.N combined with ==V.* on all but the last
		// release segment.
		prefix := spec
		prefix.Release = prefix.Release[:len(prefix.Release)-1]
		prefix.Pre = nil
		prefix.Post = nil
		prefix.Dev = nil
		return spec.Cmp(ver) <= 0 && matchPrefix(prefix, ver)
	case OpEqual:
		// The candidate's local part is ignored unless the clause
		// names one.
		if len(spec.Local) == 0 {
			ver.Local = nil
		}
		return spec.Cmp(ver) == 0
	case OpEqualPrefix:
		return matchPrefix(spec, ver)
	case OpNotEqual:
		if len(spec.Local) == 0 {
			ver.Local = nil
		}
		return spec.Cmp(ver) != 0
	case OpNotEqualPrefix:
		return !matchPrefix(spec, ver)
	case OpLE:
		return spec.Cmp(ver) >= 0
	case OpGE:
		return spec.Cmp(ver) <= 0
	case OpLT:
		return spec.Cmp(ver) > 0
	case OpGT:
		return spec.Cmp(ver) < 0
	default:
		panic(fmt.Errorf("invalid pep440.Op: %d", int(clause.Op)))
	}
}

// matchPrefix implements the "==V.*" wildcard: the candidate matches if it
// agrees with the spec up through the spec's last named part.  Local parts
// are always ignored.
func matchPrefix(spec, ver Version) bool {
	if spec.Epoch != ver.Epoch {
		return false
	}
	if len(ver.Release) > len(spec.Release) {
		ver.Release = ver.Release[:len(spec.Release)]
	}
	if cmpRelease(spec, ver) != 0 {
		return false
	}
	if spec.Pre == nil && spec.Post == nil {
		return true
	}
	if (spec.Pre == nil) != (ver.Pre == nil) {
		return false
	}
	if spec.Pre != nil && (spec.Pre.L != ver.Pre.L || spec.Pre.N != ver.Pre.N) {
		return false
	}
	if spec.Post == nil {
		return true
	}
	return cmpPost(spec, ver) == 0
}

// Select returns the best (highest-sorting) candidate that matches the
// specifier, or nil if none does.  Pre-releases are only considered when no
// final candidate matches, per the PEP's handling of pre-releases.
func (spec Specifier) Select(candidates []Version) *Version {
	var best, bestPre *Version
	for i := range candidates {
		ver := candidates[i]
		if !spec.Match(ver) {
			continue
		}
		if ver.IsPreRelease() {
			if bestPre == nil || bestPre.Cmp(ver) < 0 {
				bestPre = &candidates[i]
			}
			continue
		}
		if best == nil || best.Cmp(ver) < 0 {
			best = &candidates[i]
		}
	}
	if best == nil {
		best = bestPre
	}
	return best
}

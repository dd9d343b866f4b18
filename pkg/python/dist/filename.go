// Package dist parses the filenames of built distribution artifacts: wheels
// ("{name}-{version}(-{build})?-{python}-{abi}-{platform}.whl") and source
// distributions ("{name}-{version}.tar.gz" or ".zip").
package dist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nsfr750/pack/pkg/python/pep440"
)

type Kind int

const (
	KindSdist Kind = iota
	KindWheel
)

func (k Kind) String() string {
	switch k {
	case KindSdist:
		return "sdist"
	case KindWheel:
		return "wheel"
	default:
		panic(fmt.Errorf("invalid dist.Kind: %d", int(k)))
	}
}

// Artifact is the information recoverable from an artifact's filename.
type Artifact struct {
	Filename string
	Kind     Kind
	Name     string
	Version  pep440.Version
	// Wheel-only fields.
	BuildTag *BuildTag
	Python   string
	ABI      string
	Platform string
}

type BuildTag struct {
	N int
	L string
}

func (t BuildTag) String() string {
	return fmt.Sprintf("%d%s", t.N, t.L)
}

var reWheel = regexp.MustCompile(`^(?P<distribution>[^-]+)` +
	`-(?P<version>[^-]+)` +
	`(?:-(?P<build_n>[0-9]+)(?P<build_l>[^-0-9][^-]*)?)?` +
	`-(?P<python>[^-]+)` +
	`-(?P<abi>[^-]+)` +
	`-(?P<platform>[^-]+)` +
	`\.whl$`)

// ParseFilename parses a wheel or sdist filename.
func ParseFilename(filename string) (*Artifact, error) {
	switch {
	case strings.HasSuffix(filename, ".whl"):
		return parseWheel(filename)
	case strings.HasSuffix(filename, ".tar.gz"):
		return parseSdist(filename, ".tar.gz")
	case strings.HasSuffix(filename, ".zip"):
		return parseSdist(filename, ".zip")
	default:
		return nil, fmt.Errorf("dist: unrecognized artifact filename: %q", filename)
	}
}

func parseWheel(filename string) (*Artifact, error) {
	match := reWheel.FindStringSubmatch(filename)
	if match == nil {
		return nil, fmt.Errorf("dist: invalid wheel filename: %q", filename)
	}
	ver, err := pep440.Parse(match[reWheel.SubexpIndex("version")])
	if err != nil {
		return nil, fmt.Errorf("dist: invalid wheel filename: %q: %w", filename, err)
	}
	ret := &Artifact{
		Filename: filename,
		Kind:     KindWheel,
		Name:     match[reWheel.SubexpIndex("distribution")],
		Version:  *ver,
		Python:   match[reWheel.SubexpIndex("python")],
		ABI:      match[reWheel.SubexpIndex("abi")],
		Platform: match[reWheel.SubexpIndex("platform")],
	}
	if buildN := match[reWheel.SubexpIndex("build_n")]; buildN != "" {
		n, _ := strconv.Atoi(buildN)
		ret.BuildTag = &BuildTag{
			N: n,
			L: match[reWheel.SubexpIndex("build_l")],
		}
	}
	return ret, nil
}

// An sdist filename is "{name}-{version}{ext}", but the name itself may
// contain hyphens; the version is whatever follows the last hyphen that
// parses as a version.
func parseSdist(filename, ext string) (*Artifact, error) {
	stem := strings.TrimSuffix(filename, ext)
	i := strings.LastIndex(stem, "-")
	if i <= 0 {
		return nil, fmt.Errorf("dist: invalid sdist filename: %q", filename)
	}
	ver, err := pep440.Parse(stem[i+1:])
	if err != nil {
		return nil, fmt.Errorf("dist: invalid sdist filename: %q: %w", filename, err)
	}
	return &Artifact{
		Filename: filename,
		Kind:     KindSdist,
		Name:     stem[:i],
		Version:  *ver,
	}, nil
}

package pip

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nsfr750/pack/pkg/python/reqs"
)

// ParseListOutput parses "pip list --format=json" output into a map keyed by
// normalized package name.
func ParseListOutput(bs []byte) (map[string]Installed, error) {
	var list []Installed
	if err := json.Unmarshal(bs, &list); err != nil {
		return nil, fmt.Errorf("parsing pip list output: %w", err)
	}
	ret := make(map[string]Installed, len(list))
	for _, pkg := range list {
		ret[reqs.NormalizeName(pkg.Name)] = pkg
	}
	return ret, nil
}

// Metadata is the "pip show" record for an installed package.
type Metadata struct {
	Name       string
	Version    string
	Summary    string
	HomePage   string
	Author     string
	License    string
	Location   string
	Requires   []string
	RequiredBy []string
}

// ParseShowOutput parses the RFC 822-ish "pip show" output.  Unknown fields
// are ignored.
func ParseShowOutput(bs []byte) (*Metadata, error) {
	var md Metadata
	seen := false
	for _, line := range strings.Split(string(bs), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			md.Name = value
			seen = true
		case "Version":
			md.Version = value
		case "Summary":
			md.Summary = value
		case "Home-page":
			md.HomePage = value
		case "Author":
			md.Author = value
		case "License":
			md.License = value
		case "Location":
			md.Location = value
		case "Requires":
			md.Requires = splitCommaList(value)
		case "Required-by":
			md.RequiredBy = splitCommaList(value)
		}
	}
	if !seen {
		return nil, fmt.Errorf("parsing pip show output: no Name field")
	}
	return &md, nil
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ret := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

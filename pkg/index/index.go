// Package index is a client for the simple repository API that PyPI and
// compatible indexes serve: one HTML page per project, one anchor per
// downloadable file.
//
// https://peps.python.org/pep-0503/
package index

import (
	"bytes"
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/Nsfr750/pack/pkg/python/dist"
	"github.com/Nsfr750/pack/pkg/python/pep440"
	"github.com/Nsfr750/pack/pkg/python/reqs"
)

// ErrNotFound is returned when the index has no page for a project.
var ErrNotFound = errors.New("project not found on index")

// Client queries one simple-API index.  The zero value talks to PyPI.
type Client struct {
	// BaseURL is the index root ("https://pypi.org/simple/").
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	// Python, when set, drops files whose data-requires-python the
	// interpreter does not satisfy.
	Python *pep440.Version
	// Username and Password are sent as basic auth on every request.
	Username string
	Password string
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://pypi.org/simple/"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "pypack (+https://github.com/Nsfr750/pack)"
	}
}

// File is one downloadable artifact anchor on a project page.
type File struct {
	client *Client

	// Filename is the anchor text, normally the artifact filename.
	Filename string
	// URL is the resolved download URL, fragment included.
	URL string
	// RequiresPython is the raw data-requires-python attribute, if any.
	RequiresPython string
	// Yanked is set when the file carries a data-yanked attribute.
	Yanked bool
}

// ProjectFiles fetches the project's page and returns its file anchors.  The
// project name is normalized before building the URL, so any spelling the
// dependency metadata uses works.
func (c *Client) ProjectFiles(ctx context.Context, project string) ([]File, error) {
	c.fillDefaults()
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	u.Path = path.Join(u.Path, reqs.NormalizeName(project)) + "/"

	location, content, err := c.get(ctx, u.String())
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("index: %w: %q", ErrNotFound, project)
		}
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	var files []File
	walk(doc, func(node *html.Node) {
		if node.Type != html.ElementNode || node.Data != "a" {
			return
		}
		file := File{client: c}
		for _, attr := range node.Attr {
			if attr.Namespace != "" {
				continue
			}
			switch attr.Key {
			case "href":
				if href, err := location.Parse(attr.Val); err == nil {
					file.URL = href.String()
				}
			case "data-requires-python":
				file.RequiresPython = attr.Val
			case "data-yanked":
				file.Yanked = true
			}
		}
		file.Filename = nodeText(node)
		if file.URL == "" || file.Filename == "" {
			return
		}
		if c.Python != nil && file.RequiresPython != "" {
			spec, err := pep440.ParseSpecifier(file.RequiresPython)
			if err == nil && !spec.Match(*c.Python) {
				return
			}
		}
		files = append(files, file)
	})
	return files, nil
}

// Releases returns the distinct release versions a project has files for,
// oldest first.
func (c *Client) Releases(ctx context.Context, project string) ([]pep440.Version, error) {
	files, err := c.ProjectFiles(ctx, project)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var versions []pep440.Version
	for _, file := range files {
		if file.Yanked {
			continue
		}
		artifact, err := dist.ParseFilename(file.Filename)
		if err != nil {
			continue
		}
		key := artifact.Version.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		versions = append(versions, artifact.Version)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Cmp(versions[j]) < 0 })
	return versions, nil
}

// ReleaseFiles returns the project's files belonging to one release,
// matched by parsing each filename.  Yanked files are excluded.
func (c *Client) ReleaseFiles(ctx context.Context, project string, version pep440.Version) ([]File, error) {
	files, err := c.ProjectFiles(ctx, project)
	if err != nil {
		return nil, err
	}
	var ret []File
	for _, file := range files {
		if file.Yanked {
			continue
		}
		artifact, err := dist.ParseFilename(file.Filename)
		if err != nil {
			continue
		}
		if artifact.Version.Cmp(version) == 0 {
			ret = append(ret, file)
		}
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("index: %w: %q has no files for version %s", ErrNotFound, project, version.String())
	}
	return ret, nil
}

// LatestVersion returns the newest release, preferring final releases over
// pre-releases the way installers do.
func (c *Client) LatestVersion(ctx context.Context, project string) (*pep440.Version, error) {
	versions, err := c.Releases(ctx, project)
	if err != nil {
		return nil, err
	}
	var spec pep440.Specifier // empty: match anything
	if latest := spec.Select(versions); latest != nil {
		return latest, nil
	}
	return nil, fmt.Errorf("index: %w: %q has no releases", ErrNotFound, project)
}

// Download fetches the file, verifying any checksum carried in the URL
// fragment.
func (f File) Download(ctx context.Context) ([]byte, error) {
	_, content, err := f.client.get(ctx, f.URL)
	return content, err
}

// HTTPError is a non-200 response.
type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return "HTTP " + e.Status
}

func (c *Client) get(ctx context.Context, requestURL string) (_ *url.URL, _ []byte, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q: %w", requestURL, err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Username != "" || c.Password != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	content, err := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}

	if err := verifyFragment(requestURL, content); err != nil {
		return nil, nil, err
	}
	return resp.Request.URL, content, nil
}

// verifyFragment checks "#hashname=hexdigest" checksums, the way the simple
// API attaches them to file URLs.
func verifyFragment(requestURL string, content []byte) error {
	u, err := url.Parse(requestURL)
	if err != nil || u.Fragment == "" {
		return nil
	}
	keyvals, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return nil
	}
	for key, vals := range keyvals {
		var sum []byte
		switch key {
		case "md5":
			s := md5.Sum(content)
			sum = s[:]
		case "sha1":
			s := sha1.Sum(content)
			sum = s[:]
		case "sha224":
			s := sha256.Sum224(content)
			sum = s[:]
		case "sha256":
			s := sha256.Sum256(content)
			sum = s[:]
		case "sha384":
			s := sha512.Sum384(content)
			sum = s[:]
		case "sha512":
			s := sha512.Sum512(content)
			sum = s[:]
		default:
			continue
		}
		for _, val := range vals {
			if !strings.EqualFold(hex.EncodeToString(sum), val) {
				return fmt.Errorf("checksum mismatch: %s: expected=%s actual=%s",
					key, val, hex.EncodeToString(sum))
			}
		}
	}
	return nil
}

func walk(node *html.Node, fn func(*html.Node)) {
	fn(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func nodeText(node *html.Node) string {
	var text strings.Builder
	walk(node, func(child *html.Node) {
		if child.Type == html.TextNode {
			text.WriteString(child.Data)
		}
	})
	return strings.TrimSpace(text.String())
}

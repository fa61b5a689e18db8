package urlhandler

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Regex for cleaning filenames
var (
	unsafeFilenameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
	multipleUnderscoresRegex = regexp.MustCompile(`_+`)
)

// BaselineIndex marks the endpoint of the canonical source
const BaselineIndex = -1

// Endpoint is one copy of the file under test, identified by its position in the mirror list.
type Endpoint struct {
	Index    int
	URL      string
	Host     string // authority without port
	Filename string // sanitized last path segment
}

// ParseEndpoint parses rawURL and derives its host and file name.
func ParseEndpoint(index int, rawURL string) (Endpoint, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Endpoint{}, ErrEmptyURL
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return Endpoint{}, WrapError(err, fmt.Sprintf("could not parse URL '%s'", trimmed))
	}
	if !parsed.IsAbs() || parsed.Hostname() == "" {
		return Endpoint{}, WrapError(ErrNoHost, trimmed)
	}

	filename := SanitizeFilename(path.Base(parsed.Path))
	if filename == "" {
		return Endpoint{}, WrapError(ErrNoFilename, trimmed)
	}

	return Endpoint{
		Index:    index,
		URL:      trimmed,
		Host:     strings.ToLower(parsed.Hostname()),
		Filename: filename,
	}, nil
}

// IsBaseline reports whether e is the canonical source
func (e Endpoint) IsBaseline() bool {
	return e.Index == BaselineIndex
}

// LocalName is the file name used for this endpoint's download. Mirrors are prefixed with their
// list position so two mirrors serving the same file name never share a local file.
func (e Endpoint) LocalName() string {
	if e.IsBaseline() {
		return "baseline-" + e.Filename
	}
	return fmt.Sprintf("%02d-%s", e.Index, e.Filename)
}

// SanitizeFilename reduces name to characters safe for a local file name.
// Names that are empty or only dots yield "".
func SanitizeFilename(name string) string {
	cleaned := unsafeFilenameCharsRegex.ReplaceAllString(name, "_")
	cleaned = multipleUnderscoresRegex.ReplaceAllString(cleaned, "_")
	if strings.Trim(cleaned, "._") == "" {
		return ""
	}
	return cleaned
}

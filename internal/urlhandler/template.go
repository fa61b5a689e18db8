package urlhandler

import (
	"strconv"
	"strings"

	"github.com/aleister1102/mirrorcheck/internal/config"
)

// Targets is the resolved set of URLs for one run
type Targets struct {
	Path     string
	Mirrors  []Endpoint
	Baseline Endpoint
}

// ExpandTemplate substitutes {repo}, {sha} and {path} in tmpl
func ExpandTemplate(tmpl, repo, sha, filePath string) string {
	return strings.NewReplacer("{repo}", repo, "{sha}", sha, "{path}", filePath).Replace(tmpl)
}

// BuildPath renders the file path for the chosen size, e.g. 25 -> "25MB.bin"
func BuildPath(pathTemplate string, sizeMB int) string {
	return strings.ReplaceAll(pathTemplate, "{size}", strconv.Itoa(sizeMB))
}

// BuildTargets renders the mirror list and the baseline for sizeMB.
func BuildTargets(cfg config.MirrorConfig, sizeMB int) (*Targets, error) {
	filePath := BuildPath(cfg.PathTemplate, sizeMB)

	targets := &Targets{
		Path:    filePath,
		Mirrors: make([]Endpoint, 0, len(cfg.MirrorTemplates)),
	}

	for i, tmpl := range cfg.MirrorTemplates {
		endpoint, err := ParseEndpoint(i, ExpandTemplate(tmpl, cfg.Repo, cfg.SHA, filePath))
		if err != nil {
			return nil, WrapError(err, "invalid mirror template "+strconv.Itoa(i))
		}
		targets.Mirrors = append(targets.Mirrors, endpoint)
	}

	baseline, err := ParseEndpoint(BaselineIndex, ExpandTemplate(cfg.BaselineTemplate, cfg.Repo, cfg.SHA, filePath))
	if err != nil {
		return nil, WrapError(err, "invalid baseline template")
	}
	targets.Baseline = baseline

	return targets, nil
}

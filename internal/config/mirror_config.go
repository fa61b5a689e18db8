package config

// MirrorConfig describes the file under test and where its copies live.
// Templates may reference {repo}, {sha} and {path}; PathTemplate may reference {size}.
type MirrorConfig struct {
	Repo             string   `json:"repo,omitempty" yaml:"repo,omitempty" toml:"repo,omitempty" validate:"required"`
	SHA              string   `json:"sha,omitempty" yaml:"sha,omitempty" toml:"sha,omitempty" validate:"required"`
	PathTemplate     string   `json:"path_template,omitempty" yaml:"path_template,omitempty" toml:"path_template,omitempty" validate:"required"`
	MirrorTemplates  []string `json:"mirror_templates,omitempty" yaml:"mirror_templates,omitempty" toml:"mirror_templates,omitempty" validate:"required,min=1,dive,urltemplate"`
	BaselineTemplate string   `json:"baseline_template,omitempty" yaml:"baseline_template,omitempty" toml:"baseline_template,omitempty" validate:"required,urltemplate"`
}

// NewDefaultMirrorConfig creates default mirror configuration
func NewDefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{
		Repo:             DefaultMirrorRepo,
		SHA:              DefaultMirrorSHA,
		PathTemplate:     DefaultMirrorPathTemplate,
		MirrorTemplates:  DefaultMirrorTemplates(),
		BaselineTemplate: DefaultBaselineTemplate,
	}
}

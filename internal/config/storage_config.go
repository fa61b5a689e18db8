package config

// StorageConfig defines where downloaded copies are kept during a run
type StorageConfig struct {
	WorkDir string `json:"work_dir,omitempty" yaml:"work_dir,omitempty" toml:"work_dir,omitempty" validate:"required"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		WorkDir: DefaultStorageWorkDir,
	}
}

package config

// DigestConfig defines how downloaded copies are checksummed
type DigestConfig struct {
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty" toml:"algorithm,omitempty" validate:"omitempty,digestalgo"`
	ChunkSize int    `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" toml:"chunk_size,omitempty" validate:"omitempty,min=64"`
}

// NewDefaultDigestConfig creates default digest configuration
func NewDefaultDigestConfig() DigestConfig {
	return DigestConfig{
		Algorithm: DefaultDigestAlgorithm,
		ChunkSize: DefaultDigestChunkSize,
	}
}

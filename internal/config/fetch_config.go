package config

// FetchConfig defines configuration for downloading mirror copies
type FetchConfig struct {
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent,omitempty"`
	// TimeoutSecs bounds a whole download; 0 disables the limit
	TimeoutSecs        int               `json:"timeout_secs" yaml:"timeout_secs" toml:"timeout_secs" validate:"min=0"`
	ChunkSize          int               `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty" toml:"chunk_size,omitempty" validate:"omitempty,min=512"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" toml:"max_redirects,omitempty" validate:"omitempty,min=0,max=50"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify" toml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2" toml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" toml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty" toml:"custom_headers,omitempty"`
	CheckFreeSpace     bool              `json:"check_free_space" yaml:"check_free_space" toml:"check_free_space"`
	ShowProgress       bool              `json:"show_progress" yaml:"show_progress" toml:"show_progress"`
}

// NewDefaultFetchConfig creates default fetch configuration
func NewDefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent:      DefaultFetchUserAgent,
		TimeoutSecs:    DefaultFetchTimeoutSecs,
		ChunkSize:      DefaultFetchChunkSize,
		MaxRedirects:   DefaultFetchMaxRedirects,
		EnableHTTP2:    true,
		CustomHeaders:  map[string]string{},
		CheckFreeSpace: DefaultFetchCheckFreeSpace,
		ShowProgress:   true,
	}
}

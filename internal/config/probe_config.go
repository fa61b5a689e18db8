package config

// ProbeConfig defines how host reachability is checked before a fetch
type ProbeConfig struct {
	// Method is one of icmp, exec or httpx
	Method      string `json:"method,omitempty" yaml:"method,omitempty" toml:"method,omitempty" validate:"omitempty,probemethod"`
	TimeoutSecs int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" toml:"timeout_secs,omitempty" validate:"omitempty,min=1,max=60"`
	// Privileged forces raw ICMP sockets instead of unprivileged datagram sockets
	Privileged bool `json:"privileged" yaml:"privileged" toml:"privileged"`
	// PingBinary is the executable used by the exec method
	PingBinary string `json:"ping_binary,omitempty" yaml:"ping_binary,omitempty" toml:"ping_binary,omitempty"`
	// HTTPMethod is the request method used by the httpx method
	HTTPMethod string `json:"http_method,omitempty" yaml:"http_method,omitempty" toml:"http_method,omitempty" validate:"omitempty,oneof=HEAD GET"`
}

// NewDefaultProbeConfig creates default probe configuration
func NewDefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Method:      DefaultProbeMethod,
		TimeoutSecs: DefaultProbeTimeoutSecs,
		PingBinary:  "ping",
		HTTPMethod:  DefaultProbeHTTPMethod,
	}
}

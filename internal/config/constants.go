package config

const (
	// Size selector bounds (MB)
	MinSizeMB = 1
	MaxSizeMB = 50

	// Mirror Defaults
	DefaultMirrorRepo         = "muwenyan521/File"
	DefaultMirrorSHA          = "dee3b1cbf7872aef1317a7768625b9c5dd505532"
	DefaultMirrorPathTemplate = "{size}MB.bin"
	DefaultBaselineTemplate   = "https://raw.githubusercontent.com/{repo}/{sha}/{path}"

	// Probe Defaults
	DefaultProbeMethod      = "icmp"
	DefaultProbeTimeoutSecs = 2
	DefaultProbeHTTPMethod  = "HEAD"

	// Fetch Defaults
	DefaultFetchUserAgent      = "mirrorcheck/1.0"
	DefaultFetchTimeoutSecs    = 0 // no timeout, downloads may be large
	DefaultFetchChunkSize      = 32 * 1024
	DefaultFetchMaxRedirects   = 10
	DefaultFetchCheckFreeSpace = true

	// Digest Defaults
	DefaultDigestAlgorithm = "md5"
	DefaultDigestChunkSize = 4096

	// Storage Defaults
	DefaultStorageWorkDir = "."

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Metrics Defaults
	DefaultMetricsNamespace = "mirrorcheck"

	// ConfigPathEnvVar names the environment variable consulted for the config file location
	ConfigPathEnvVar = "MIRRORCHECK_CONFIG_PATH"
)

// DefaultMirrorTemplates reproduces the mirror list the tool was originally built around.
func DefaultMirrorTemplates() []string {
	return []string{
		"https://cdn.jsdmirror.com/gh/{repo}@{sha}/{path}",
		"https://jsd.onmicrosoft.cn/gh/{repo}@{sha}/{path}",
		"https://raw.dgithub.xyz/{repo}/{sha}/{path}",
		"https://raw.githubusercontent.com/{repo}/{sha}/{path}",
		"https://raw.kkgithub.com/{repo}/{sha}/{path}",
		"https://gitdl.cn/https://raw.githubusercontent.com/{repo}/{sha}/{path}",
		"https://ghp.ci/https://raw.githubusercontent.com/{repo}/{sha}/{path}",
		"https://ghproxy.net/https://raw.githubusercontent.com/{repo}/{sha}/{path}",
		"https://fastly.jsdelivr.net/gh/{repo}@{sha}/{path}",
		"https://jsdelivr.pai233.top/gh/{repo}@{sha}/{path}",
		"https://cdn.jsdelivr.net/gh/{repo}@{sha}/{path}",
	}
}

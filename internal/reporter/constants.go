package reporter

const (
	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644

	// DigestDisplayLength is how many hex characters of a digest the summary table shows
	DigestDisplayLength = 12

	// ReportVersion is bumped when the JSON report layout changes
	ReportVersion = 1
)

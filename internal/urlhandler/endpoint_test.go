package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		host     string
		filename string
		wantErr  error
	}{
		{
			name:     "jsdelivr style",
			rawURL:   "https://cdn.jsdelivr.net/gh/muwenyan521/File@dee3b1c/25MB.bin",
			host:     "cdn.jsdelivr.net",
			filename: "25MB.bin",
		},
		{
			name:     "proxy prefix keeps outer host",
			rawURL:   "https://ghproxy.net/https://raw.githubusercontent.com/o/r/sha/25MB.bin",
			host:     "ghproxy.net",
			filename: "25MB.bin",
		},
		{
			name:     "port is stripped and host lowercased",
			rawURL:   "http://Mirror.Example.com:8080/files/a.bin",
			host:     "mirror.example.com",
			filename: "a.bin",
		},
		{
			name:    "empty",
			rawURL:  "   ",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "relative",
			rawURL:  "/files/a.bin",
			wantErr: ErrNoHost,
		},
		{
			name:    "no file segment",
			rawURL:  "https://cdn.example.com/",
			wantErr: ErrNoFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := ParseEndpoint(3, tt.rawURL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, ep.Host)
			assert.Equal(t, tt.filename, ep.Filename)
			assert.Equal(t, 3, ep.Index)
		})
	}
}

func TestEndpoint_LocalNameDistinct(t *testing.T) {
	a, err := ParseEndpoint(0, "https://a.example.com/x/25MB.bin")
	require.NoError(t, err)
	b, err := ParseEndpoint(1, "https://b.example.com/y/25MB.bin")
	require.NoError(t, err)
	base, err := ParseEndpoint(BaselineIndex, "https://origin.example.com/25MB.bin")
	require.NoError(t, err)

	assert.Equal(t, a.Filename, b.Filename)
	assert.Equal(t, "00-25MB.bin", a.LocalName())
	assert.Equal(t, "01-25MB.bin", b.LocalName())
	assert.Equal(t, "baseline-25MB.bin", base.LocalName())
	assert.True(t, base.IsBaseline())
	assert.False(t, a.IsBaseline())
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "25MB.bin", SanitizeFilename("25MB.bin"))
	assert.Equal(t, "a_b.bin", SanitizeFilename("a b.bin"))
	assert.Equal(t, "", SanitizeFilename(".."))
	assert.Equal(t, "", SanitizeFilename("/"))
}

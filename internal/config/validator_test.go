package config

import (
	"testing"

	"github.com/aleister1102/mirrorcheck/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestValidateConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *GlobalConfig)
		rule   string
	}{
		{
			name:   "unknown probe method",
			mutate: func(cfg *GlobalConfig) { cfg.ProbeConfig.Method = "arp" },
			rule:   "probemethod",
		},
		{
			name:   "unknown digest algorithm",
			mutate: func(cfg *GlobalConfig) { cfg.DigestConfig.Algorithm = "crc32" },
			rule:   "digestalgo",
		},
		{
			name:   "bad log level",
			mutate: func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "loud" },
			rule:   "loglevel",
		},
		{
			name:   "mirror template without scheme",
			mutate: func(cfg *GlobalConfig) { cfg.MirrorConfig.MirrorTemplates = []string{"cdn.example.com/{path}"} },
			rule:   "urltemplate",
		},
		{
			name:   "empty mirror list",
			mutate: func(cfg *GlobalConfig) { cfg.MirrorConfig.MirrorTemplates = nil },
			rule:   "required",
		},
		{
			name:   "negative fetch timeout",
			mutate: func(cfg *GlobalConfig) { cfg.FetchConfig.TimeoutSecs = -1 },
			rule:   "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), "rule '"+tt.rule+"'")
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateConfig(nil), common.ErrInvalidConfiguration)
}

func TestValidateSize(t *testing.T) {
	for _, ok := range []int{1, 25, 50} {
		assert.NoError(t, ValidateSize(ok), "size %d", ok)
	}
	for _, bad := range []int{-1, 0, 51, 1000} {
		assert.ErrorIs(t, ValidateSize(bad), common.ErrInvalidInput, "size %d", bad)
	}
}

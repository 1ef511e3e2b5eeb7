package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Tools(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"Zero File Size Fails", func(c *Config) { c.Tools.MaxFileSize = 0 }, "max_file_size"},
		{"Unknown Newline Fails", func(c *Config) { c.Tools.Newline = "\n\n" }, "newline"},
		{"Empty Patch Command Fails", func(c *Config) { c.Tools.PatchCommand = "" }, "patch_command"},
		{"Zero Patch Timeout Fails", func(c *Config) { c.Tools.PatchTimeoutSeconds = 0 }, "patch_timeout_seconds"},
		{"Zero Graceful Shutdown Fails", func(c *Config) { c.Tools.PatchGracefulShutdownMs = 0 }, "patch_graceful_shutdown_ms"},
		{"Zero Output Size Fails", func(c *Config) { c.Tools.MaxPatchOutputSize = 0 }, "max_patch_output_size"},
		{"Negative Tree Depth Fails", func(c *Config) { c.Tools.TreeMaxDepth = -1 }, "tree_max_depth"},
		{"Zero List Results Fails", func(c *Config) { c.Tools.MaxListFilesResults = 0 }, "max_list_files_results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_CRLFNewlineAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tools.Newline = "\r\n"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Log(t *testing.T) {
	t.Run("Unknown Level Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Level = "chatty"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("Empty Level Allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.Level = ""
		assert.NoError(t, cfg.Validate())
	})
}

package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks config values for life correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Tools validation - Files
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	switch c.Tools.Newline {
	case "\n", "\r\n", "\r":
	default:
		errs = append(errs, `tools.newline must be one of "\n", "\r\n", "\r"`)
	}

	// Tools validation - Patch
	if c.Tools.PatchCommand == "" {
		errs = append(errs, "tools.patch_command must not be empty")
	}
	if c.Tools.PatchTimeoutSeconds < 1 {
		errs = append(errs, "tools.patch_timeout_seconds must be >= 1")
	}
	if c.Tools.PatchGracefulShutdownMs < 1 {
		errs = append(errs, "tools.patch_graceful_shutdown_ms must be >= 1")
	}
	if c.Tools.MaxPatchOutputSize < 1 {
		errs = append(errs, "tools.max_patch_output_size must be >= 1")
	}

	// Tools validation - Tree & Listing
	if c.Tools.TreeMaxDepth < 0 {
		errs = append(errs, "tools.tree_max_depth must be >= 0")
	}
	if c.Tools.MaxListFilesResults < 1 {
		errs = append(errs, "tools.max_list_files_results must be >= 1")
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Sprintf("log.level is invalid: %q", c.Log.Level))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

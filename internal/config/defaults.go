package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Tools ToolsConfig `json:"tools"`
	Log   LogConfig   `json:"log"`
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64  `json:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)
	Newline     string `json:"newline"`       // Default: "\n"

	// Patch Application
	PatchCommand            string `json:"patch_command"`              // Default: "patch"
	PatchTimeoutSeconds     int    `json:"patch_timeout_seconds"`      // Default: 60
	PatchGracefulShutdownMs int    `json:"patch_graceful_shutdown_ms"` // Default: 2000
	MaxPatchOutputSize      int64  `json:"max_patch_output_size"`      // Default: 1024 * 1024 (1MB)

	// Tree Rendering & Listing
	TreeMaxDepth         int  `json:"tree_max_depth"`         // Default: 10
	TreeRespectGitignore bool `json:"tree_respect_gitignore"` // Default: false
	MaxListFilesResults  int  `json:"max_list_files_results"` // Default: 10000
}

type LogConfig struct {
	Level string `json:"level"` // Default: "warn"
	File  string `json:"file"`  // Default: "" (stderr)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			MaxFileSize:             20 * 1024 * 1024,
			Newline:                 "\n",
			PatchCommand:            "patch",
			PatchTimeoutSeconds:     60,
			PatchGracefulShutdownMs: 2000,
			MaxPatchOutputSize:      1024 * 1024,
			TreeMaxDepth:            10,
			TreeRespectGitignore:    false,
			MaxListFilesResults:     10000,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Package config provides configuration loading for Project Cortex.
//
// It supports two distinct configuration scopes:
//
// 1. Global Configuration (~/.cortex/config.yml)
//   - Machine-wide vector-store daemon settings
//   - Binary/container location, startup timeout
//   - Shared cache location
//   - Loaded via LoadGlobalConfig()
//   - Controls bootstrap.Orchestrator behavior across all projects
//
// 2. Project Configuration (.cortex/config.yml)
//   - Project-specific settings (existing functionality)
//   - Embedding model, dimensions, endpoint
//   - Path patterns, chunking, vectorstore connection
//   - Loaded via Load() (existing loader)
//   - Isolated per project
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (CORTEX_*)
//  2. Global config (~/.cortex/config.yml)
//  3. Project config (.cortex/config.yml)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: CORTEX_
//   - Nested fields: Use underscores (CORTEX_VECTOR_STORE_DAEMON_STARTUP_TIMEOUT)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
//
// Example usage:
//
//	// Load global daemon config
//	globalCfg, err := config.LoadGlobalConfig()
//	if err != nil {
//	    return err
//	}
//
//	// Use daemon settings
//	timeout := time.Duration(globalCfg.VectorStoreDaemon.StartupTimeout) * time.Second
package config

// GlobalConfig holds machine-wide daemon configuration.
// Loaded from ~/.cortex/config.yml (not project .cortex/config.yml).
//
// This configuration is separate from per-project settings and controls
// bootstrap.Orchestrator behavior across all projects on the machine.
type GlobalConfig struct {
	VectorStoreDaemon VectorStoreDaemonConfig `yaml:"vector_store_daemon" mapstructure:"vector_store_daemon"`
	Cache             GlobalCacheConfig       `yaml:"cache" mapstructure:"cache"`
}

// VectorStoreDaemonConfig holds machine-wide defaults for the spawned/connected
// vector-store process (internal/bootstrap.Orchestrator).
type VectorStoreDaemonConfig struct {
	BinaryPath     string `yaml:"binary_path" mapstructure:"binary_path"`         // process mode: path to the vector-store binary
	ContainerImage string `yaml:"container_image" mapstructure:"container_image"` // container mode: image reference
	StartupTimeout int    `yaml:"startup_timeout" mapstructure:"startup_timeout"` // seconds to wait for readiness
}

// GlobalCacheConfig holds global cache settings.
type GlobalCacheConfig struct {
	BaseDir string `yaml:"base_dir" mapstructure:"base_dir"` // Base directory for cache (~/.cortex/cache)
}

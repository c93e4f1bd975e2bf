package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan: GlobalConfig struct validation
// - Verify struct can be created with all fields
// - Verify zero values are correct type
// - YAML unmarshaling is tested in global_loader_test.go via Viper

func TestGlobalConfig_StructFields(t *testing.T) {
	t.Parallel()

	cfg := GlobalConfig{
		VectorStoreDaemon: VectorStoreDaemonConfig{
			BinaryPath:     "/tmp/qdrant",
			ContainerImage: "qdrant/qdrant:latest",
			StartupTimeout: 30,
		},
		Cache: GlobalCacheConfig{
			BaseDir: "/tmp/cache",
		},
	}

	assert.Equal(t, "/tmp/qdrant", cfg.VectorStoreDaemon.BinaryPath)
	assert.Equal(t, "qdrant/qdrant:latest", cfg.VectorStoreDaemon.ContainerImage)
	assert.Equal(t, 30, cfg.VectorStoreDaemon.StartupTimeout)
	assert.Equal(t, "/tmp/cache", cfg.Cache.BaseDir)
}

func TestGlobalConfig_ZeroValues(t *testing.T) {
	t.Parallel()

	cfg := GlobalConfig{}

	assert.Empty(t, cfg.VectorStoreDaemon.BinaryPath)
	assert.Empty(t, cfg.VectorStoreDaemon.ContainerImage)
	assert.Equal(t, 0, cfg.VectorStoreDaemon.StartupTimeout)
	assert.Empty(t, cfg.Cache.BaseDir)
}

func TestVectorStoreDaemonConfig_StructFields(t *testing.T) {
	t.Parallel()

	cfg := VectorStoreDaemonConfig{
		BinaryPath:     "/tmp/test-bin",
		ContainerImage: "qdrant/qdrant:v1.9",
		StartupTimeout: 60,
	}

	assert.Equal(t, "/tmp/test-bin", cfg.BinaryPath)
	assert.Equal(t, "qdrant/qdrant:v1.9", cfg.ContainerImage)
	assert.Equal(t, 60, cfg.StartupTimeout)
}

func TestGlobalCacheConfig_StructFields(t *testing.T) {
	t.Parallel()

	cfg := GlobalCacheConfig{
		BaseDir: "/var/cache/cortex",
	}

	assert.Equal(t, "/var/cache/cortex", cfg.BaseDir)
}

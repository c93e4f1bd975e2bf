package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .cortex/config.yml when present
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - Environment variables override defaults when no config file exists
// - LoadConfig() returns error for malformed YAML
// - LoadConfig() returns error for invalid configuration values
// - Validate() accepts valid configuration
// - Validate() rejects invalid provider
// - Validate() rejects negative/zero dimensions
// - Validate() rejects empty model
// - Validate() rejects empty endpoint
// - Validate() rejects negative/zero chunk sizes
// - Validate() rejects negative coalesce
// - Validate() rejects invalid vectorstore/cleanup settings
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	// Verify embedding defaults
	assert.Equal(t, "local", cfg.Embedding.Provider)
	assert.Equal(t, "BAAI/bge-small-en-v1.5", cfg.Embedding.Model)
	assert.Equal(t, 384, cfg.Embedding.Dimensions)
	assert.Equal(t, "http://localhost:8121/embed", cfg.Embedding.Endpoint)
	assert.Equal(t, 2048, cfg.Embedding.TargetTokensPerBatch)
	assert.Equal(t, 4, cfg.Embedding.MaxParallelTasks)

	// Verify chunking defaults
	assert.Equal(t, 2000, cfg.Chunking.MaxChars)
	assert.Equal(t, 200, cfg.Chunking.Coalesce)

	// Verify vectorstore defaults
	assert.Equal(t, "localhost", cfg.Vectorstore.Host)
	assert.Equal(t, 6334, cfg.Vectorstore.Port)
	assert.Equal(t, uint64(384), cfg.Vectorstore.VectorSize)

	// Verify cleanup defaults
	assert.Equal(t, 3, cfg.Cleanup.RetentionMinutes)
	assert.Equal(t, 60, cfg.Cleanup.IntervalSeconds)

	// Verify paths have reasonable defaults
	assert.NotEmpty(t, cfg.Paths.Code)
	assert.NotEmpty(t, cfg.Paths.Docs)
	assert.NotEmpty(t, cfg.Paths.Ignore)

	// Verify default config passes validation
	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Embedding.Provider, cfg.Embedding.Provider)
	assert.Equal(t, expected.Embedding.Model, cfg.Embedding.Model)
	assert.Equal(t, expected.Embedding.Dimensions, cfg.Embedding.Dimensions)
	assert.Equal(t, expected.Vectorstore.Host, cfg.Vectorstore.Host)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	configContent := `
embedding:
  provider: openai
  model: text-embedding-3-small
  dimensions: 1536
  endpoint: https://api.openai.com/v1/embeddings

paths:
  code:
    - "**/*.go"
    - "**/*.py"
  docs:
    - "**/*.md"
  ignore:
    - "vendor/**"

chunking:
  max_chars: 3000
  coalesce: 300

vectorstore:
  host: qdrant.internal
  port: 6333
  grpc_port: 6334
  vector_size: 768
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	assert.Equal(t, "https://api.openai.com/v1/embeddings", cfg.Embedding.Endpoint)

	assert.Equal(t, []string{"**/*.go", "**/*.py"}, cfg.Paths.Code)
	assert.Equal(t, []string{"**/*.md"}, cfg.Paths.Docs)
	assert.Equal(t, []string{"vendor/**"}, cfg.Paths.Ignore)

	assert.Equal(t, 3000, cfg.Chunking.MaxChars)
	assert.Equal(t, 300, cfg.Chunking.Coalesce)

	assert.Equal(t, "qdrant.internal", cfg.Vectorstore.Host)
	assert.Equal(t, uint64(768), cfg.Vectorstore.VectorSize)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	// Only override embedding provider, rest should come from defaults
	configContent := `
embedding:
  provider: openai
  model: custom-model
  dimensions: 1536
  endpoint: https://api.openai.com/v1
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "custom-model", cfg.Embedding.Model)

	// Should have default chunking/vectorstore config
	assert.Equal(t, 2000, cfg.Chunking.MaxChars)
	assert.Equal(t, "localhost", cfg.Vectorstore.Host)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	configContent := `
embedding:
  provider: local
  model: file-model
  dimensions: 384
  endpoint: http://localhost:8121/embed
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("CORTEX_EMBEDDING_PROVIDER", "openai")
	t.Setenv("CORTEX_EMBEDDING_MODEL", "env-model")
	t.Setenv("CORTEX_EMBEDDING_DIMENSIONS", "1536")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "env-model", cfg.Embedding.Model)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)

	// Endpoint not overridden, should come from config file
	assert.Equal(t, "http://localhost:8121/embed", cfg.Embedding.Endpoint)
}

func TestLoadConfig_EnvironmentVariablesOverrideDefaults(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	t.Setenv("CORTEX_EMBEDDING_PROVIDER", "openai")
	t.Setenv("CORTEX_EMBEDDING_ENDPOINT", "https://custom.endpoint/embed")
	t.Setenv("CORTEX_CHUNKING_MAX_CHARS", "1500")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "https://custom.endpoint/embed", cfg.Embedding.Endpoint)
	assert.Equal(t, 1500, cfg.Chunking.MaxChars)

	// Non-overridden values should be defaults
	assert.Equal(t, "BAAI/bge-small-en-v1.5", cfg.Embedding.Model)
	assert.Equal(t, 200, cfg.Chunking.Coalesce)
}

func TestLoadConfig_VectorstoreEnvironmentVariablesOverride(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()

	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	t.Setenv("CORTEX_VECTORSTORE_HOST", "remote-qdrant")
	t.Setenv("CORTEX_VECTORSTORE_PORT", "7000")
	t.Setenv("CORTEX_VECTORSTORE_VECTOR_SIZE", "1024")

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)

	assert.Equal(t, "remote-qdrant", cfg.Vectorstore.Host)
	assert.Equal(t, 7000, cfg.Vectorstore.Port)
	assert.Equal(t, uint64(1024), cfg.Vectorstore.VectorSize)
}

func TestLoadConfig_VectorstoreConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	configContent := `
embedding:
  provider: local
  model: test-model
  dimensions: 384
  endpoint: http://localhost:8121/embed

vectorstore:
  host: 10.0.0.5
  port: 6333
  grpc_port: 6334
  vector_size: 512
  schema_version: 2
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "10.0.0.5", cfg.Vectorstore.Host)
	assert.Equal(t, uint64(512), cfg.Vectorstore.VectorSize)
	assert.Equal(t, int64(2), cfg.Vectorstore.SchemaVersion)
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	malformedContent := `
embedding:
  provider: local
  model: "unclosed quote
  dimensions: not-a-number
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(malformedContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	cortexDir := filepath.Join(tempDir, ".cortex")
	require.NoError(t, os.MkdirAll(cortexDir, 0755))

	invalidContent := `
embedding:
  provider: invalid-provider
  model: test-model
  dimensions: -10
  endpoint: http://localhost:8121
`

	configPath := filepath.Join(cortexDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(invalidContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestValidate_AcceptsValidConfiguration(t *testing.T) {
	cfg := &Config{
		Embedding: EmbeddingConfig{
			Provider:   "local",
			Model:      "test-model",
			Dimensions: 384,
			Endpoint:   "http://localhost:8121",
		},
		Paths: PathsConfig{
			Code:   []string{"**/*.go"},
			Docs:   []string{"**/*.md"},
			Ignore: []string{"node_modules/**"},
		},
		Chunking: ChunkingConfig{
			MaxChars: 2000,
			Coalesce: 200,
		},
		Vectorstore: VectorstoreConfig{
			Host:       "localhost",
			Port:       6334,
			GRPCPort:   6334,
			VectorSize: 384,
		},
		Cleanup: CleanupConfig{
			RetentionMinutes: 3,
			IntervalSeconds:  60,
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_RejectsInvalidProvider(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Provider = "unsupported"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProvider)
}

func TestValidate_RejectsNegativeDimensions(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Dimensions = -10

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestValidate_RejectsZeroDimensions(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Dimensions = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestValidate_RejectsEmptyModel(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Model = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func TestValidate_RejectsEmptyEndpoint(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Endpoint = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyEndpoint)
}

func TestValidate_RejectsNegativeMaxChars(t *testing.T) {
	cfg := Default()
	cfg.Chunking.MaxChars = -100

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestValidate_RejectsZeroMaxChars(t *testing.T) {
	cfg := Default()
	cfg.Chunking.MaxChars = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestValidate_RejectsNegativeCoalesce(t *testing.T) {
	cfg := Default()
	cfg.Chunking.Coalesce = -50

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOverlap)
}

func TestValidate_RejectsEmptyVectorstoreHost(t *testing.T) {
	cfg := Default()
	cfg.Vectorstore.Host = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVectorstore)
}

func TestValidate_RejectsZeroVectorSize(t *testing.T) {
	cfg := Default()
	cfg.Vectorstore.VectorSize = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVectorstore)
}

func TestValidate_RejectsNegativeRetentionMinutes(t *testing.T) {
	cfg := Default()
	cfg.Cleanup.RetentionMinutes = -1

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCleanup)
}

func TestValidate_RejectsZeroIntervalSeconds(t *testing.T) {
	cfg := Default()
	cfg.Cleanup.IntervalSeconds = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCleanup)
}

func TestValidate_ReturnsMultipleErrorsForMultipleInvalidFields(t *testing.T) {
	cfg := &Config{
		Embedding: EmbeddingConfig{
			Provider:   "invalid",
			Model:      "",
			Dimensions: -1,
			Endpoint:   "",
		},
		Chunking: ChunkingConfig{
			MaxChars: -100,
			Coalesce: -50,
		},
		Vectorstore: VectorstoreConfig{
			Host: "",
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)

	errMsg := err.Error()
	assert.Contains(t, errMsg, "provider")
	assert.Contains(t, errMsg, "model")
	assert.Contains(t, errMsg, "dimensions")
	assert.Contains(t, errMsg, "endpoint")
	assert.Contains(t, errMsg, "max_chars")
}

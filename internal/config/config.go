package config

import "time"

// Config represents the complete cortex configuration.
// It can be loaded from .cortex/config.yml with environment variable overrides.
type Config struct {
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Chunking    ChunkingConfig    `yaml:"chunking" mapstructure:"chunking"`
	Vectorstore VectorstoreConfig `yaml:"vectorstore" mapstructure:"vectorstore"`
	Cleanup     CleanupConfig     `yaml:"cleanup" mapstructure:"cleanup"`
}

// EmbeddingConfig configures the embedding provider and dispatch client.
type EmbeddingConfig struct {
	Provider             string        `yaml:"provider" mapstructure:"provider"`                             // "local" or "openai"
	Model                string        `yaml:"model" mapstructure:"model"`                                   // e.g., "BAAI/bge-small-en-v1.5"
	Dimensions           int           `yaml:"dimensions" mapstructure:"dimensions"`                         // embedding vector dimensions
	Endpoint             string        `yaml:"endpoint" mapstructure:"endpoint"`                             // e.g., "http://localhost:8121/embed"
	AuthToken            string        `yaml:"auth_token" mapstructure:"auth_token"`                         // bearer token for Endpoint, if required
	TargetTokensPerBatch int           `yaml:"target_tokens_per_batch" mapstructure:"target_tokens_per_batch"`
	MaxParallelTasks     int           `yaml:"max_parallel_tasks" mapstructure:"max_parallel_tasks"`
	InitialBackoff       time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
	MaxBackoff           time.Duration `yaml:"max_backoff" mapstructure:"max_backoff"`
}

// PathsConfig defines which files to index and which to ignore.
type PathsConfig struct {
	Code   []string `yaml:"code" mapstructure:"code"`     // glob patterns for code files
	Docs   []string `yaml:"docs" mapstructure:"docs"`     // glob patterns for documentation
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// ChunkingConfig bounds the chunker's size discipline (internal/chunker.Options).
type ChunkingConfig struct {
	MaxChars int `yaml:"max_chars" mapstructure:"max_chars"` // character budget per chunk
	Coalesce int `yaml:"coalesce" mapstructure:"coalesce"`   // legacy-path merge threshold in non-whitespace bytes
}

// VectorstoreConfig addresses the Qdrant-backed vector store
// (internal/vectorstore.Config).
type VectorstoreConfig struct {
	Host          string `yaml:"host" mapstructure:"host"`
	Port          int    `yaml:"port" mapstructure:"port"`
	GRPCPort      int    `yaml:"grpc_port" mapstructure:"grpc_port"`
	APIKey        string `yaml:"api_key" mapstructure:"api_key"`
	UseTLS        bool   `yaml:"use_tls" mapstructure:"use_tls"`
	VectorSize    uint64 `yaml:"vector_size" mapstructure:"vector_size"`
	SchemaVersion int64  `yaml:"schema_version" mapstructure:"schema_version"`
}

// CleanupConfig bounds the detached retention loop (internal/cleanup).
// RetentionMinutes feeds Manager.MaxAge directly and IntervalSeconds feeds
// Manager.RunDetached's ticker; spec.md §4.8's "3 minutes" is only this
// struct's default, not a hardcoded constant in the cleanup path.
type CleanupConfig struct {
	RetentionMinutes int `yaml:"retention_minutes" mapstructure:"retention_minutes"`
	IntervalSeconds  int `yaml:"interval_seconds" mapstructure:"interval_seconds"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:             "local",
			Model:                "BAAI/bge-small-en-v1.5",
			Dimensions:           384,
			Endpoint:             "http://localhost:8121/embed",
			TargetTokensPerBatch: 2048,
			MaxParallelTasks:     4,
			InitialBackoff:       200 * time.Millisecond,
			MaxBackoff:           30 * time.Second,
		},
		Paths: PathsConfig{
			Code: []string{
				"**/*.go",
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.py",
				"**/*.rs",
				"**/*.c",
				"**/*.cpp",
				"**/*.cc",
				"**/*.h",
				"**/*.hpp",
				"**/*.php",
				"**/*.rb",
				"**/*.java",
			},
			Docs: []string{
				"**/*.md",
				"**/*.rst",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.test",
				"*.pyc",
			},
		},
		Chunking: ChunkingConfig{
			MaxChars: 2000,
			Coalesce: 200,
		},
		Vectorstore: VectorstoreConfig{
			Host:          "localhost",
			Port:          6334,
			GRPCPort:      6334,
			VectorSize:    384,
			SchemaVersion: 1,
		},
		Cleanup: CleanupConfig{
			RetentionMinutes: 3,
			IntervalSeconds:  60,
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProvider indicates an unsupported embedding provider
	ErrInvalidProvider = errors.New("invalid embedding provider")

	// ErrInvalidDimensions indicates invalid embedding dimensions
	ErrInvalidDimensions = errors.New("invalid embedding dimensions")

	// ErrInvalidChunkSize indicates invalid chunk size configuration
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidOverlap indicates invalid overlap configuration
	ErrInvalidOverlap = errors.New("invalid overlap")

	// ErrEmptyEndpoint indicates missing embedding endpoint
	ErrEmptyEndpoint = errors.New("empty embedding endpoint")

	// ErrEmptyModel indicates missing embedding model
	ErrEmptyModel = errors.New("empty embedding model")

	// ErrInvalidVectorstore indicates an invalid vector store address or size
	ErrInvalidVectorstore = errors.New("invalid vectorstore configuration")

	// ErrInvalidCleanup indicates invalid cleanup/retention settings
	ErrInvalidCleanup = errors.New("invalid cleanup settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	// Validate embedding configuration
	if err := validateEmbedding(&cfg.Embedding); err != nil {
		errs = append(errs, err)
	}

	// Validate paths configuration
	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	// Validate chunking configuration
	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}

	// Validate vectorstore configuration
	if err := validateVectorstore(&cfg.Vectorstore); err != nil {
		errs = append(errs, err)
	}

	// Validate cleanup configuration
	if err := validateCleanup(&cfg.Cleanup); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateEmbedding(cfg *EmbeddingConfig) error {
	var errs []error

	// Validate provider
	provider := strings.ToLower(cfg.Provider)
	if provider != "local" && provider != "openai" {
		errs = append(errs, fmt.Errorf("%w: must be 'local' or 'openai', got '%s'", ErrInvalidProvider, cfg.Provider))
	}

	// Validate model
	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, fmt.Errorf("%w: model is required", ErrEmptyModel))
	}

	// Validate dimensions
	if cfg.Dimensions <= 0 {
		errs = append(errs, fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidDimensions, cfg.Dimensions))
	}

	// Validate endpoint
	if strings.TrimSpace(cfg.Endpoint) == "" {
		errs = append(errs, fmt.Errorf("%w: endpoint is required", ErrEmptyEndpoint))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	// Paths can be empty - validation is lenient here, empty patterns are
	// handled gracefully downstream.
	return nil
}

func validateChunking(cfg *ChunkingConfig) error {
	var errs []error

	if cfg.MaxChars <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_chars must be positive, got %d", ErrInvalidChunkSize, cfg.MaxChars))
	}

	if cfg.Coalesce < 0 {
		errs = append(errs, fmt.Errorf("%w: coalesce cannot be negative, got %d", ErrInvalidOverlap, cfg.Coalesce))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateVectorstore(cfg *VectorstoreConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Host) == "" {
		errs = append(errs, fmt.Errorf("%w: host is required", ErrInvalidVectorstore))
	}

	if cfg.Port <= 0 {
		errs = append(errs, fmt.Errorf("%w: port must be positive, got %d", ErrInvalidVectorstore, cfg.Port))
	}

	if cfg.GRPCPort <= 0 {
		errs = append(errs, fmt.Errorf("%w: grpc_port must be positive, got %d", ErrInvalidVectorstore, cfg.GRPCPort))
	}

	if cfg.VectorSize == 0 {
		errs = append(errs, fmt.Errorf("%w: vector_size must be positive, got %d", ErrInvalidVectorstore, cfg.VectorSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCleanup(cfg *CleanupConfig) error {
	var errs []error

	if cfg.RetentionMinutes < 0 {
		errs = append(errs, fmt.Errorf("%w: retention_minutes cannot be negative, got %d", ErrInvalidCleanup, cfg.RetentionMinutes))
	}

	if cfg.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: interval_seconds must be positive, got %d", ErrInvalidCleanup, cfg.IntervalSeconds))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

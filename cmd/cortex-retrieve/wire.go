package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mvp-joe/project-cortex/internal/bootstrap"
	"github.com/mvp-joe/project-cortex/internal/cleanup"
	"github.com/mvp-joe/project-cortex/internal/config"
	"github.com/mvp-joe/project-cortex/internal/embedclient"
	"github.com/mvp-joe/project-cortex/internal/usage"
	"github.com/mvp-joe/project-cortex/internal/vectorstore"
)

// session bundles the open vector store, embedding client, usage clock, and
// cleanup manager one subcommand run needs. A detached cleanup loop runs for
// the session's lifetime (spec.md §4.8/§5 "runs as a background task"),
// excluding whatever chunks a query in this session has currently touched
// (fed by exclusions, which Retrieve populates via its Result). Close stops
// that loop and releases the vector-store connection and any process this
// run spawned.
type session struct {
	cfg        *config.Config
	store      *vectorstore.Store
	embedder   *embedclient.Client
	orch       *bootstrap.Orchestrator
	usage      *usage.Clock
	exclusions *cleanup.ExclusionSet
	cleanupMgr *cleanup.Manager

	stopCleanup context.CancelFunc
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfigFromDir(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	globalCfg, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	storeCfg := vectorstore.Config{
		Host:          cfg.Vectorstore.Host,
		Port:          cfg.Vectorstore.Port,
		GRPCPort:      cfg.Vectorstore.GRPCPort,
		APIKey:        cfg.Vectorstore.APIKey,
		UseTLS:        cfg.Vectorstore.UseTLS,
		VectorSize:    cfg.Vectorstore.VectorSize,
		SchemaVersion: cfg.Vectorstore.SchemaVersion,
	}

	orch := bootstrap.New(bootstrap.Config{
		BinaryPath:     globalCfg.VectorStoreDaemon.BinaryPath,
		ContainerImage: globalCfg.VectorStoreDaemon.ContainerImage,
		HTTPHost:       cfg.Vectorstore.Host,
		HTTPPort:       cfg.Vectorstore.Port,
		SpawnTimeout:   time.Duration(globalCfg.VectorStoreDaemon.StartupTimeout) * time.Second,
		Store:          storeCfg,
	})

	store, err := orch.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("start vector store: %w", err)
	}

	provider := embedclient.NewHTTPProvider(cfg.Embedding.Endpoint, cfg.Embedding.AuthToken, cfg.Embedding.Dimensions)
	embedder := embedclient.New(provider, embedclient.Config{
		TargetTokensPerBatch: cfg.Embedding.TargetTokensPerBatch,
		MaxParallelTasks:     cfg.Embedding.MaxParallelTasks,
		InitialBackoff:       cfg.Embedding.InitialBackoff,
		MaxBackoff:           cfg.Embedding.MaxBackoff,
	})

	usageClock, err := usage.New(store)
	if err != nil {
		return nil, fmt.Errorf("build usage clock: %w", err)
	}

	exclusions := cleanup.NewExclusionSet()
	cleanupMgr := cleanup.New(store)
	cleanupMgr.MaxAge = time.Duration(cfg.Cleanup.RetentionMinutes) * time.Minute

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	interval := time.Duration(cfg.Cleanup.IntervalSeconds) * time.Second
	go cleanupMgr.RunDetached(cleanupCtx, interval, exclusions.Snapshot)

	return &session{
		cfg:         cfg,
		store:       store,
		embedder:    embedder,
		orch:        orch,
		usage:       usageClock,
		exclusions:  exclusions,
		cleanupMgr:  cleanupMgr,
		stopCleanup: stopCleanup,
	}, nil
}

func (s *session) Close() error {
	s.stopCleanup()
	s.usage.Close()
	storeErr := s.store.Close()
	if orchErr := s.orch.Close(); orchErr != nil {
		return orchErr
	}
	return storeErr
}

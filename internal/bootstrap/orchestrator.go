// Package bootstrap is the initialization orchestrator (spec.md §4.10): a
// one-shot prerequisite that spawns or connects to the vector-store
// process, waits for it to report ready, and hands back an open
// internal/vectorstore.Store with schema reconciliation already done.
// Grounded on internal/embed/local.go's startServer/isHealthy/
// waitForHealthy spawn-and-poll dance.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/mvp-joe/project-cortex/internal/vectorstore"
)

// readyPath is spec.md §4.10's fixed readiness endpoint.
const readyPath = "/v1/.well-known/ready"

// Config bounds one orchestrator run.
type Config struct {
	BinaryPath     string // process mode: path to the vector-store binary
	ContainerImage string // container mode: image reference
	HTTPHost       string
	HTTPPort       int
	SpawnTimeout   time.Duration // bound on waitForReady
	Store          vectorstore.Config
}

func DefaultConfig() Config {
	return Config{
		HTTPHost:     "127.0.0.1",
		HTTPPort:     6333,
		SpawnTimeout: 60 * time.Second,
	}
}

// Orchestrator owns the spawned process/container handle, if any.
type Orchestrator struct {
	cfg    Config
	client *http.Client
	cmd    *exec.Cmd
}

func New(cfg Config) *Orchestrator {
	return &Orchestrator{cfg: cfg, client: &http.Client{Timeout: 2 * time.Second}}
}

// Start spawns (or connects to, on port conflict) the vector-store process,
// waits for readiness, and opens the adapter. This performs schema
// reconciliation as a side effect of vectorstore.Open.
func (o *Orchestrator) Start(ctx context.Context) (*vectorstore.Store, error) {
	mode, err := detectRunMode()
	if err != nil {
		return nil, err
	}

	if o.isReady() {
		// Already running (port conflict case): skip spawn and connect.
		return vectorstore.Open(ctx, o.cfg.Store)
	}

	switch mode {
	case runModeProcess:
		if err := o.spawnProcess(ctx); err != nil {
			return nil, fmt.Errorf("bootstrap: spawn vector store process: %w", err)
		}
	case runModeContainer:
		if err := o.spawnContainer(ctx); err != nil {
			return nil, fmt.Errorf("bootstrap: spawn vector store container: %w", err)
		}
	}

	if err := o.waitForReady(ctx, o.cfg.SpawnTimeout); err != nil {
		return nil, fmt.Errorf("bootstrap: vector store failed to become ready: %w", err)
	}

	return vectorstore.Open(ctx, o.cfg.Store)
}

func (o *Orchestrator) spawnProcess(ctx context.Context) error {
	o.cmd = exec.CommandContext(ctx, o.cfg.BinaryPath)
	o.cmd.Stdout = os.Stdout
	o.cmd.Stderr = os.Stderr
	return o.cmd.Start()
}

func (o *Orchestrator) spawnContainer(ctx context.Context) error {
	o.cmd = exec.CommandContext(ctx, "docker", "run", "--rm",
		"-p", fmt.Sprintf("%d:%d", o.cfg.HTTPPort, o.cfg.HTTPPort),
		o.cfg.ContainerImage)
	o.cmd.Stdout = os.Stdout
	o.cmd.Stderr = os.Stderr
	return o.cmd.Start()
}

func (o *Orchestrator) isReady() bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	url := fmt.Sprintf("http://%s:%d%s", o.cfg.HTTPHost, o.cfg.HTTPPort, readyPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (o *Orchestrator) waitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for readiness at %s", readyPath)
		case <-ticker.C:
			if o.isReady() {
				return nil
			}
		}
	}
}

// Close stops a spawned process, preferring graceful shutdown (SIGTERM) with
// a SIGKILL fallback, matching localProvider.Close. A no-op when nothing was
// spawned (connect-only startup).
func (o *Orchestrator) Close() error {
	if o.cmd == nil || o.cmd.Process == nil {
		return nil
	}

	if err := o.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- o.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return o.cmd.Process.Kill()
	}
}

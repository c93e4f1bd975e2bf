package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverConfig(t *testing.T, server *httptest.Server) Config {
	t.Helper()
	host, portStr, err := splitHostPort(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return Config{HTTPHost: host, HTTPPort: port}
}

func splitHostPort(url string) (string, string, error) {
	trimmed := strings.TrimPrefix(url, "http://")
	idx := strings.LastIndex(trimmed, ":")
	return trimmed[:idx], trimmed[idx+1:], nil
}

func TestIsReady_TrueWhenReadyEndpointReturns200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, readyPath, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o := New(serverConfig(t, server))
	assert.True(t, o.isReady())
}

func TestIsReady_FalseOnNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	o := New(serverConfig(t, server))
	assert.False(t, o.isReady())
}

func TestIsReady_FalseWhenNothingListening(t *testing.T) {
	o := New(Config{HTTPHost: "127.0.0.1", HTTPPort: 1})
	assert.False(t, o.isReady())
}

func TestWaitForReady_ReturnsOnceServerBecomesReady(t *testing.T) {
	ready := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	o := New(serverConfig(t, server))
	go func() {
		time.Sleep(600 * time.Millisecond)
		ready = true
	}()

	err := o.waitForReady(context.Background(), 3*time.Second)
	assert.NoError(t, err)
}

func TestWaitForReady_TimesOutWhenNeverReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	o := New(serverConfig(t, server))
	err := o.waitForReady(context.Background(), 700*time.Millisecond)
	assert.Error(t, err)
}

func TestClose_NoOpWhenNothingSpawned(t *testing.T) {
	o := New(DefaultConfig())
	assert.NoError(t, o.Close())
}

func TestDetectRunMode_OverridableForTests(t *testing.T) {
	original := detectRunMode
	defer func() { detectRunMode = original }()

	detectRunMode = func() (runMode, error) { return runModeContainer, nil }
	mode, err := detectRunMode()
	require.NoError(t, err)
	assert.Equal(t, runModeContainer, mode)
}

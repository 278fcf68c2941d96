package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "split.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_files: 3\nmax_size: 500 kB\nmax_size_time: 2s\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint(3), cfg.MaxFiles)
	require.Equal(t, 2*time.Second, cfg.MaxSizeTime)
	require.Equal(t, "mpegts", cfg.Format)

	size, err := cfg.MaxSizeBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(500000), size)

	cfg.MaxSize = "lots"
	_, err = cfg.MaxSizeBytes()
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

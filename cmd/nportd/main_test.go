package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/ChipDale729/nport-viewer/cmd/nportd"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cli.Addr)
	assert.Equal(t, 30*time.Second, cli.Timeout)
	assert.Equal(t, 30*time.Minute, cli.CacheTTL)
	assert.Equal(t, 128, cli.CacheSize)
	assert.Empty(t, cli.CacheDB)
	assert.Equal(t, 30, cli.HealthLimit)
	assert.Equal(t, 10, cli.HoldingsLimit)
}

func TestConfigLoader(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "nportd.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	parse := func(t *testing.T, args []string) *main.CLI {
		t.Helper()
		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Exit(func(int) {}),
			kong.Configuration(main.ConfigLoader),
		)
		require.NoError(t, err)
		_, err = parser.Parse(args)
		require.NoError(t, err)
		return cli
	}

	t.Run("config values seed flag defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "addr: 127.0.0.1:9000\ncache-ttl: 1h\n")
		cli := parse(t, []string{"--config", path})

		assert.Equal(t, "127.0.0.1:9000", cli.Addr)
		assert.Equal(t, time.Hour, cli.CacheTTL)
		// Untouched flags keep their defaults.
		assert.Equal(t, 128, cli.CacheSize)
	})

	t.Run("explicit flags beat config values", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "addr: 127.0.0.1:9000\ncache-ttl: 1h\n")
		cli := parse(t, []string{"--config", path, "--addr", ":8080"})

		assert.Equal(t, ":8080", cli.Addr)
		assert.Equal(t, time.Hour, cli.CacheTTL)
	})

	t.Run("accepts underscore keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "holdings_limit: 5\nhealth_limit: 15\n")
		cli := parse(t, []string{"--config", path})

		assert.Equal(t, 5, cli.HoldingsLimit)
		assert.Equal(t, 15, cli.HealthLimit)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "addr: [\n")

		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Exit(func(int) {}),
			kong.Configuration(main.ConfigLoader),
		)
		require.NoError(t, err)

		_, err = parser.Parse([]string{"--config", path})
		require.Error(t, err)
	})
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows flags", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage: nportd")
		assert.Contains(t, stdout.String(), "--addr")
		assert.Contains(t, stdout.String(), "--cache-db")
		assert.Contains(t, stdout.String(), "--config")
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--nonsense"}, stdout, stderr)

		require.Error(t, err)
	})

	t.Run("shuts down cleanly on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(ctx, []string{"--addr", "127.0.0.1:0"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "listening")
	})

	t.Run("opens the sqlite cache when configured", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dbPath := filepath.Join(t.TempDir(), "cache.db")

		m := main.NewMain()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(ctx, []string{"--addr", "127.0.0.1:0", "--cache-db", dbPath}, stdout, stderr)

		require.NoError(t, err)
		_, statErr := os.Stat(dbPath)
		require.NoError(t, statErr, "cache database file should be created")
	})
}

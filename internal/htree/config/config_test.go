package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	// Keep a real ~/.htree.yaml out of the test.
	t.Setenv("HOME", t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "htree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	fs := newFlagSet(t)

	c, err := Load(fs, "")

	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), c.Threads)
	assert.Equal(t, int64(4096), c.BlockSize)
	assert.False(t, c.CoverRemainder)
	assert.Zero(t, c.MaxTasks)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.False(t, c.Verbose)
	assert.False(t, c.Metrics)
}

func TestLoadPrecedence(t *testing.T) {
	cfgFile := writeConfig(t, "threads: 3\nblock-size: 512\ncover-remainder: true\nmax-tasks: 9\n")

	t.Run("file over defaults", func(t *testing.T) {
		fs := newFlagSet(t)

		c, err := Load(fs, cfgFile)

		require.NoError(t, err)
		assert.Equal(t, 3, c.Threads)
		assert.Equal(t, int64(512), c.BlockSize)
		assert.True(t, c.CoverRemainder)
		assert.Equal(t, 9, c.MaxTasks)
	})

	t.Run("env over file", func(t *testing.T) {
		fs := newFlagSet(t)
		t.Setenv("HTREE_THREADS", "5")
		t.Setenv("HTREE_BLOCK_SIZE", "1024")

		c, err := Load(fs, cfgFile)

		require.NoError(t, err)
		assert.Equal(t, 5, c.Threads)
		assert.Equal(t, int64(1024), c.BlockSize)
	})

	t.Run("flag over env", func(t *testing.T) {
		fs := newFlagSet(t, "--threads", "7", "-v")
		t.Setenv("HTREE_THREADS", "5")

		c, err := Load(fs, cfgFile)

		require.NoError(t, err)
		assert.Equal(t, 7, c.Threads)
		assert.True(t, c.Verbose)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		fs := newFlagSet(t)

		_, err := Load(fs, filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		testCases := []struct {
			name string
			args []string
		}{
			{"zero threads", []string{"--threads", "0"}},
			{"negative block size", []string{"--block-size", "-1"}},
			{"negative max tasks", []string{"--max-tasks", "-2"}},
			{"zero workers", []string{"--workers", "0"}},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				fs := newFlagSet(t, tc.args...)

				_, err := Load(fs, "")

				assert.Error(t, err)
			})
		}
	})
}

func TestLoadMetricsFromEnv(t *testing.T) {
	fs := newFlagSet(t)
	t.Setenv("HTREE_METRICS", "true")

	c, err := Load(fs, "")

	require.NoError(t, err)
	assert.True(t, c.Metrics)
}

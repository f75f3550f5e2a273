package lib

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupIgnoreTest creates a temp dir holding an ignore file with the given
// content. The canonical path is returned because IsPathIgnored resolves
// symlinks (macOS /var -> /private/var).
func setupIgnoreTest(t *testing.T, ignoreContent string) string {
	tmpDir := t.TempDir()
	canonicalTmpDir, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err, "Failed to resolve symlinks for temp dir")

	err = os.WriteFile(filepath.Join(canonicalTmpDir, IgnoreFilename), []byte(ignoreContent), 0644)
	require.NoError(t, err, "Failed to create ignore file")

	ResetIgnoreState()
	return canonicalTmpDir
}

func TestIsPathIgnored(t *testing.T) {
	testCases := []struct {
		name            string
		ignoreContent   string
		pathToCheck     string
		shouldBeIgnored bool
	}{
		{"Default .git directory ignore", "", ".git/config", true},
		{"Default ignore file ignore", "", IgnoreFilename, true},
		{"Specific file match", "big.iso", "big.iso", true},
		{"Glob pattern match", "*.log", "system.log", true},
		{"Glob pattern in subdir", "*.log", "logs/system.log", true},
		{"Directory pattern match", "build/", "build/asset.bin", true},
		{"Negation pattern", "*.log\n!important.log", "important.log", false},
		{"Negation does not affect other matches", "*.log\n!important.log", "other.log", true},
		{"Comments and blank lines", "# comment\n\n  \n*.tmp", "some.tmp", true},
		{"Path not in ignore list", "*.log", "data/disk.img", false},
		{"Windows separators in pattern", "dist\\image.bin", "dist/image.bin", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			testDir := setupIgnoreTest(t, tc.ignoreContent)
			fullPath := filepath.Join(testDir, filepath.FromSlash(tc.pathToCheck))
			require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
			require.NoError(t, os.WriteFile(fullPath, []byte("test"), 0644))

			// Act
			isIgnored := IsPathIgnored(testDir, fullPath)

			// Assert
			assert.Equal(t, tc.shouldBeIgnored, isIgnored, "Path '%s' with ignore content:\n---\n%s\n---", tc.pathToCheck, tc.ignoreContent)
		})
	}
}

func TestIgnoreCaching(t *testing.T) {
	testDir := setupIgnoreTest(t, "cache-test.bin")
	pathToTest := filepath.Join(testDir, "cache-test.bin")
	require.NoError(t, os.WriteFile(pathToTest, []byte("test"), 0644))

	require.True(t, IsPathIgnored(testDir, pathToTest))

	// Rules are cached, so removing the file does not change the answer.
	require.NoError(t, os.Remove(filepath.Join(testDir, IgnoreFilename)))

	assert.True(t, IsPathIgnored(testDir, pathToTest), "cache was not used")
}

func TestIgnoreConcurrency(t *testing.T) {
	testDir := setupIgnoreTest(t, "*.log")
	logFilePath := filepath.Join(testDir, "test.log")
	binFilePath := filepath.Join(testDir, "test.bin")
	require.NoError(t, os.WriteFile(logFilePath, []byte("log"), 0644))
	require.NoError(t, os.WriteFile(binFilePath, []byte("bin"), 0644))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, IsPathIgnored(testDir, logFilePath))
			assert.False(t, IsPathIgnored(testDir, binFilePath))
		}()
	}
	wg.Wait()
}

package lib

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/denormal/go-gitignore"
)

// IgnoreFilename holds gitignore-style patterns for files a directory walk
// should skip.
const IgnoreFilename = ".htreeignore"

// defaultIgnorePatterns are always applied.
var defaultIgnorePatterns = []string{
	".git/**",
	IgnoreFilename,
}

var (
	// ignoreCache holds compiled matchers keyed by the canonical path of
	// the walked directory.
	ignoreCache = make(map[string]gitignore.GitIgnore)
	cacheMutex  = &sync.Mutex{}
)

// IsPathIgnored reports whether path, somewhere below baseDir, matches the
// ignore rules of baseDir.
func IsPathIgnored(baseDir, path string) bool {
	// The gitignore matcher is not safe for concurrent use, so every lookup
	// is serialized.
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Both sides of filepath.Rel must be canonical or macOS temp dirs
	// (/var -> /private/var) produce "../" paths.
	canonicalBaseDir, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		canonicalBaseDir = baseDir
	}

	matcher, found := ignoreCache[canonicalBaseDir]
	if !found {
		matcher = loadIgnoreMatcher(canonicalBaseDir)
		ignoreCache[canonicalBaseDir] = matcher
	}

	canonicalPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonicalPath = path
	}

	relativePath, err := filepath.Rel(canonicalBaseDir, canonicalPath)
	if err != nil {
		return false
	}

	match := matcher.Match(filepath.ToSlash(relativePath))
	if match == nil {
		match = matcher.Match(canonicalPath)
	}
	if match == nil {
		return false
	}
	return match.Ignore()
}

func loadIgnoreMatcher(baseDir string) gitignore.GitIgnore {
	rawPatterns := make([]string, len(defaultIgnorePatterns))
	copy(rawPatterns, defaultIgnorePatterns)

	if content, err := os.ReadFile(filepath.Join(baseDir, IgnoreFilename)); err == nil {
		rawPatterns = append(rawPatterns, strings.Split(string(content), "\n")...)
	}

	var patterns []string
	for _, p := range rawPatterns {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "\\", "/")
		// "dir/" only matches the directory itself in the library; extend
		// it to everything below.
		if strings.HasSuffix(trimmed, "/") && !strings.HasSuffix(trimmed, "**/") {
			trimmed += "**"
		}
		patterns = append(patterns, trimmed)
	}

	matcher := gitignore.New(
		strings.NewReader(strings.Join(patterns, "\n")),
		baseDir,
		func(err gitignore.Error) bool { return false },
	)
	if matcher == nil {
		return gitignore.New(strings.NewReader(""), "", nil)
	}
	return matcher
}

// ResetIgnoreState clears the matcher cache. Used by tests.
func ResetIgnoreState() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]gitignore.GitIgnore)
}

package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

// CreateFile writes content to path, creating parent directories.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateFiles writes every path => content pair
func CreateFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		CreateFile(t, fs, path, content)
	}
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// FileExists reports whether path exists and is not a directory
func FileExists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return !info.IsDir()
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fs afero.Fs, path, expected string) {
	t.Helper()

	if !FileExists(t, fs, path) {
		t.Fatalf("File %s does not exist", path)
	}
	actual := ReadFile(t, fs, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if _, err := fs.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

// ListFiles returns every regular file below root, sorted
func ListFiles(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()

	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}

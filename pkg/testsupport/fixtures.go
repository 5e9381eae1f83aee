package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFixture writes content to name inside a temporary directory and
// returns the full path.
func WriteFixture(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenHelper compares generated output with files under goldenDir.
// Setting UPDATE_GOLDEN=true rewrites the golden files instead.
type GoldenHelper struct {
	t          *testing.T
	goldenDir  string
	updateMode bool
}

// NewGoldenHelper creates a new golden file helper.
func NewGoldenHelper(t *testing.T, goldenDir string) *GoldenHelper {
	t.Helper()

	return &GoldenHelper{
		t:          t,
		goldenDir:  goldenDir,
		updateMode: os.Getenv("UPDATE_GOLDEN") == "true",
	}
}

// GoldenPath returns the full path to a golden file.
func (g *GoldenHelper) GoldenPath(name string) string {
	return filepath.Join(g.goldenDir, name)
}

// readOrUpdate returns the golden content, or writes actual and reports
// false in update mode.
func (g *GoldenHelper) readOrUpdate(name string, actual []byte) ([]byte, bool) {
	g.t.Helper()

	goldenPath := g.GoldenPath(name)
	if g.updateMode {
		require.NoError(g.t, os.MkdirAll(filepath.Dir(goldenPath), 0o755), "failed to create golden file directory")
		require.NoError(g.t, os.WriteFile(goldenPath, actual, 0o644), "failed to update golden file")
		g.t.Logf("Updated golden file: %s", goldenPath)
		return nil, false
	}

	golden, err := os.ReadFile(goldenPath)
	require.NoError(g.t, err, "failed to read golden file %s", goldenPath)
	return golden, true
}

// AssertGoldenString compares actual with the golden file byte for byte.
func (g *GoldenHelper) AssertGoldenString(name, actual string) {
	g.t.Helper()

	if golden, ok := g.readOrUpdate(name, []byte(actual)); ok {
		assert.Equal(g.t, string(golden), actual, "content does not match golden file %s", name)
	}
}

// AssertGoldenJSON compares JSON content, ignoring formatting differences.
func (g *GoldenHelper) AssertGoldenJSON(name string, actual []byte) {
	g.t.Helper()

	if golden, ok := g.readOrUpdate(name, actual); ok {
		assert.JSONEq(g.t, string(golden), string(actual), "JSON content does not match golden file %s", name)
	}
}

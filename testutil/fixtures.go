package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/chat-session/internal/api"
)

// WriteContextsFixture writes contexts in the devserver's YAML format and
// returns the file path
func WriteContextsFixture(t *testing.T, dir string, contexts []api.UserContext) string {
	t.Helper()
	data, err := yaml.Marshal(map[string][]api.UserContext{"contexts": contexts})
	if err != nil {
		t.Fatalf("Failed to marshal contexts: %v", err)
	}
	path := filepath.Join(dir, "contexts.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
	return path
}

// SampleContexts returns two contexts distinct from the devserver defaults
func SampleContexts() []api.UserContext {
	return []api.UserContext{
		{ID: "k1", Name: "Kenji Mori", CompanyID: "C100", CompanyName: "Mori Logistics", ResourceCount: 12},
		{ID: "k2", Name: "Aiko Ito", CompanyID: "C200", CompanyName: "Ito Farms", ResourceCount: 0},
	}
}

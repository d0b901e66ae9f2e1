package devserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/chat-session/internal/api"
)

type contextsFile struct {
	Contexts []api.UserContext `yaml:"contexts"`
}

// DefaultContexts returns the contexts served when no file is given
func DefaultContexts() []api.UserContext {
	return []api.UserContext{
		{ID: "u1", Name: "Taro Yamada", CompanyID: "C001", CompanyName: "ABC Construction", ResourceCount: 3},
		{ID: "u2", Name: "Hanako Suzuki", CompanyID: "C002", CompanyName: "Yokohama Civil Works", ResourceCount: 1},
		{ID: "u3", Name: "Jiro Tanaka", CompanyID: "C003", CompanyName: "Saitama Heavy Industries", ResourceCount: 0},
	}
}

// LoadContexts reads contexts from a YAML file of the form
//
//	contexts:
//	  - user_id: u1
//	    user_name: Taro Yamada
//	    company_id: C001
//	    company_name: ABC Construction
//	    machine_count: 3
func LoadContexts(path string) ([]api.UserContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f contextsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse contexts file: %w", err)
	}
	for i, uc := range f.Contexts {
		if uc.ID == "" {
			return nil, fmt.Errorf("context %d has no user_id", i)
		}
	}
	if f.Contexts == nil {
		return []api.UserContext{}, nil
	}
	return f.Contexts, nil
}

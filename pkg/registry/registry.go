// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activity registry: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry and rejects duplicate or empty task types.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode activity registry: %w", err)
	}

	seen := make(map[string]bool, len(reg.Activities))
	for i, a := range reg.Activities {
		if a.TaskType == "" {
			return nil, fmt.Errorf("activity %d (%s) has no taskType", i, a.ID)
		}
		if seen[a.TaskType] {
			return nil, fmt.Errorf("duplicate taskType %q", a.TaskType)
		}
		seen[a.TaskType] = true
	}
	return &reg, nil
}

func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

func (r *ActivityRegistry) TaskTypes() []string {
	types := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		types = append(types, a.TaskType)
	}
	sort.Strings(types)
	return types
}

// InputSchemas maps each task type to its input schema, skipping activities
// without one.
func (r *ActivityRegistry) InputSchemas() map[string]map[string]interface{} {
	schemas := make(map[string]map[string]interface{}, len(r.Activities))
	for _, a := range r.Activities {
		if len(a.InputSchema) > 0 {
			schemas[a.TaskType] = a.InputSchema
		}
	}
	return schemas
}

package tools

import (
	"encoding/json"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	wire := Catalog()

	if len(wire) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(wire))
	}

	want := []string{ToolCreateExercise, ToolUpdateExercise, ToolDeleteExercise}
	for i, name := range want {
		if wire[i].Name != name {
			t.Errorf("tool %d = %q, want %q", i, wire[i].Name, name)
		}
		if wire[i].Description == "" {
			t.Errorf("tool %q has no description", name)
		}
	}
}

func TestCatalogSchemas(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{ToolCreateExercise, []string{"name", "muscleGroups", "exerciseType"}},
		{ToolUpdateExercise, []string{"name"}},
		{ToolDeleteExercise, []string{"name"}},
	}

	byName := make(map[string]json.RawMessage)
	for _, tool := range Catalog() {
		byName[tool.Name] = tool.InputSchema
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			var schema struct {
				Type       string                     `json:"type"`
				Properties map[string]json.RawMessage `json:"properties"`
				Required   []string                   `json:"required"`
			}
			if err := json.Unmarshal(byName[tt.tool], &schema); err != nil {
				t.Fatalf("schema does not parse: %v", err)
			}
			if schema.Type != "object" {
				t.Errorf("schema type = %q, want object", schema.Type)
			}

			required := make(map[string]bool)
			for _, r := range schema.Required {
				required[r] = true
			}
			for _, field := range tt.required {
				if !required[field] {
					t.Errorf("field %q should be required", field)
				}
				if _, ok := schema.Properties[field]; !ok {
					t.Errorf("field %q missing from properties", field)
				}
			}
		})
	}
}

// Package tools defines the exercise-management tools advertised to the
// model and executes the calls it makes.
package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"trainai/anthropic"
)

// Tool names exposed to the model.
const (
	ToolCreateExercise = "create_exercise"
	ToolUpdateExercise = "update_exercise"
	ToolDeleteExercise = "delete_exercise"
)

// catalog is the static, immutable tool list. Definitions use MCP tool
// schemas; Catalog converts them to the Messages API wire shape.
var catalog = []mcp.Tool{
	mcp.NewTool(ToolCreateExercise,
		mcp.WithDescription("Create a new custom exercise in the user's exercise library."),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Exercise name, e.g. 'Cossack Squat'")),
		mcp.WithString("muscleGroups", mcp.Required(),
			mcp.Description("Comma-separated muscle groups, e.g. 'quads, glutes'")),
		mcp.WithString("exerciseType", mcp.Required(),
			mcp.Description("One of: strength, cardio, mobility, flexibility")),
		mcp.WithString("equipment",
			mcp.Description("Equipment needed, e.g. 'barbell' (defaults to 'bodyweight')")),
		mcp.WithString("instructions",
			mcp.Description("Short instructions for performing the exercise")),
		mcp.WithString("difficulty",
			mcp.Description("One of: beginner, intermediate, advanced (defaults to 'beginner')")),
		mcp.WithString("notes",
			mcp.Description("Free-text notes")),
	),
	mcp.NewTool(ToolUpdateExercise,
		mcp.WithDescription("Update a custom exercise in the library. Only the fields provided are changed. Built-in exercises cannot be modified."),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Exact name of the exercise to update")),
		mcp.WithString("newName",
			mcp.Description("New name, if renaming")),
		mcp.WithString("muscleGroups",
			mcp.Description("Comma-separated muscle groups")),
		mcp.WithString("exerciseType",
			mcp.Description("One of: strength, cardio, mobility, flexibility")),
		mcp.WithString("equipment",
			mcp.Description("Equipment needed")),
		mcp.WithString("instructions",
			mcp.Description("Short instructions for performing the exercise")),
		mcp.WithString("difficulty",
			mcp.Description("One of: beginner, intermediate, advanced")),
		mcp.WithString("notes",
			mcp.Description("Free-text notes")),
	),
	mcp.NewTool(ToolDeleteExercise,
		mcp.WithDescription("Delete a custom exercise from the library. Built-in exercises cannot be deleted."),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Exact name of the exercise to delete")),
	),
}

// Catalog returns the tool definitions in the Messages API wire format.
func Catalog() []anthropic.Tool {
	wire := make([]anthropic.Tool, 0, len(catalog))
	for _, t := range catalog {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			continue
		}
		wire = append(wire, anthropic.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return wire
}

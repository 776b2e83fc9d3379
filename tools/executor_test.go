package tools

import (
	"strings"
	"testing"

	"trainai/model"
	"trainai/storage"
)

func testExecutor(t *testing.T) (*Executor, *storage.Store) {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewExecutor(store), store
}

func seedBuiltIn(t *testing.T, store *storage.Store, name string) {
	t.Helper()
	ex := model.NewExercise(name)
	ex.IsCustom = false
	if err := store.CreateExercise(ex); err != nil {
		t.Fatalf("failed to seed exercise: %v", err)
	}
}

func TestExecuteCreateExercise(t *testing.T) {
	exec, store := testExecutor(t)

	result := exec.Execute(ToolCreateExercise,
		`{"name":"Cossack Squat","muscleGroups":"quads, glutes","exerciseType":"mobility","difficulty":"intermediate"}`)
	if result != "Exercise 'Cossack Squat' added to the library." {
		t.Errorf("result = %q", result)
	}

	ex, err := store.ExerciseByName("Cossack Squat")
	if err != nil {
		t.Fatalf("created exercise not found: %v", err)
	}
	if ex.MuscleGroups != "quads, glutes" || ex.ExerciseType != "mobility" || ex.Difficulty != "intermediate" {
		t.Errorf("stored exercise = %+v", ex)
	}
	if !ex.IsCustom {
		t.Error("tool-created exercises must be custom")
	}
	if ex.Equipment != model.DefaultEquipment {
		t.Errorf("equipment default = %q, want %q", ex.Equipment, model.DefaultEquipment)
	}
}

func TestExecuteCreateExerciseValidation(t *testing.T) {
	exec, _ := testExecutor(t)

	tests := []struct {
		name string
		args string
		want string
	}{
		{"missing name", `{"muscleGroups":"quads"}`, "Cannot create an exercise without a name."},
		{"blank name", `{"name":"   "}`, "Cannot create an exercise without a name."},
		{"invalid JSON", `{"name": "Squ`, "The tool arguments could not be parsed as JSON. Please retry the tool call with valid arguments."},
		{"empty arguments", "", "Cannot create an exercise without a name."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exec.Execute(ToolCreateExercise, tt.args); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteCreateDuplicateName(t *testing.T) {
	exec, _ := testExecutor(t)

	exec.Execute(ToolCreateExercise, `{"name":"Box Jump"}`)
	result := exec.Execute(ToolCreateExercise, `{"name":"Box Jump"}`)
	if !strings.Contains(result, "may already exist") {
		t.Errorf("duplicate create result = %q", result)
	}
}

func TestExecuteUpdateExercise(t *testing.T) {
	exec, store := testExecutor(t)
	exec.Execute(ToolCreateExercise, `{"name":"Box Jump","muscleGroups":"quads","exerciseType":"strength"}`)

	// Partial update: untouched fields survive, provided fields change.
	result := exec.Execute(ToolUpdateExercise, `{"name":"Box Jump","newName":"Depth Jump","difficulty":"advanced"}`)
	if result != "Exercise 'Depth Jump' updated." {
		t.Errorf("result = %q", result)
	}

	ex, err := store.ExerciseByName("Depth Jump")
	if err != nil {
		t.Fatalf("renamed exercise not found: %v", err)
	}
	if ex.Difficulty != "advanced" {
		t.Errorf("difficulty = %q, want advanced", ex.Difficulty)
	}
	if ex.MuscleGroups != "quads" {
		t.Errorf("untouched muscleGroups = %q, want quads", ex.MuscleGroups)
	}

	if _, err := store.ExerciseByName("Box Jump"); err != storage.ErrExerciseNotFound {
		t.Error("old name should no longer resolve after rename")
	}
}

func TestExecuteUpdateGuards(t *testing.T) {
	exec, store := testExecutor(t)
	seedBuiltIn(t, store, "Back Squat")

	tests := []struct {
		name string
		args string
		want string
	}{
		{"built-in", `{"name":"Back Squat","difficulty":"advanced"}`,
			"'Back Squat' is a built-in exercise and cannot be modified."},
		{"not found", `{"name":"Nope"}`,
			"No exercise named 'Nope' was found in the library."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exec.Execute(ToolUpdateExercise, tt.args); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecuteDeleteExercise(t *testing.T) {
	exec, store := testExecutor(t)
	exec.Execute(ToolCreateExercise, `{"name":"Box Jump"}`)

	result := exec.Execute(ToolDeleteExercise, `{"name":"Box Jump"}`)
	if result != "Exercise 'Box Jump' deleted from the library." {
		t.Errorf("result = %q", result)
	}
	if _, err := store.ExerciseByName("Box Jump"); err != storage.ErrExerciseNotFound {
		t.Error("exercise should be gone after delete")
	}
}

func TestExecuteDeleteGuards(t *testing.T) {
	exec, store := testExecutor(t)
	seedBuiltIn(t, store, "Deadlift")

	if got := exec.Execute(ToolDeleteExercise, `{"name":"Deadlift"}`); got != "'Deadlift' is a built-in exercise and cannot be deleted." {
		t.Errorf("built-in delete result = %q", got)
	}
	if _, err := store.ExerciseByName("Deadlift"); err != nil {
		t.Error("built-in exercise must survive a delete attempt")
	}

	if got := exec.Execute(ToolDeleteExercise, `{"name":"Ghost"}`); got != "No exercise named 'Ghost' was found in the library." {
		t.Errorf("missing delete result = %q", got)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	exec, _ := testExecutor(t)
	if got := exec.Execute("summon_gains", `{}`); got != "Unknown tool 'summon_gains'." {
		t.Errorf("result = %q", got)
	}
}

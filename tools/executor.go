package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"trainai/model"
	"trainai/storage"
)

// Executor runs tool calls against the exercise library. Every outcome,
// including failures, is a human-readable string: the text is relayed
// verbatim to the model as the tool result, so the model can react to
// "not found" the same way it reacts to success.
type Executor struct {
	store *storage.Store
}

func NewExecutor(store *storage.Store) *Executor {
	return &Executor{store: store}
}

// exerciseArgs covers the argument shapes of all three tools. Pointers keep
// "field absent" distinguishable from "field empty" for partial updates.
type exerciseArgs struct {
	Name         string  `json:"name"`
	NewName      *string `json:"newName"`
	MuscleGroups *string `json:"muscleGroups"`
	Equipment    *string `json:"equipment"`
	Instructions *string `json:"instructions"`
	Difficulty   *string `json:"difficulty"`
	ExerciseType *string `json:"exerciseType"`
	Notes        *string `json:"notes"`
}

// Execute runs the named tool with the raw argument JSON accumulated from
// the stream. Unparseable arguments produce an explicit error result so the
// model can correct itself and retry rather than silently stalling the turn.
func (e *Executor) Execute(toolName, argumentsJSON string) string {
	// A stream can close a tool block without any partial_json fragments;
	// that is a call with no arguments, not malformed JSON.
	if strings.TrimSpace(argumentsJSON) == "" {
		argumentsJSON = "{}"
	}

	var args exerciseArgs
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return "The tool arguments could not be parsed as JSON. Please retry the tool call with valid arguments."
	}

	switch toolName {
	case ToolCreateExercise:
		return e.createExercise(args)
	case ToolUpdateExercise:
		return e.updateExercise(args)
	case ToolDeleteExercise:
		return e.deleteExercise(args)
	default:
		return fmt.Sprintf("Unknown tool '%s'.", toolName)
	}
}

func (e *Executor) createExercise(args exerciseArgs) string {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return "Cannot create an exercise without a name."
	}

	ex := model.NewExercise(name)
	if args.MuscleGroups != nil {
		ex.MuscleGroups = *args.MuscleGroups
	}
	if args.Equipment != nil && *args.Equipment != "" {
		ex.Equipment = *args.Equipment
	}
	if args.Instructions != nil {
		ex.Instructions = *args.Instructions
	}
	if args.Difficulty != nil && *args.Difficulty != "" {
		ex.Difficulty = *args.Difficulty
	}
	if args.ExerciseType != nil && *args.ExerciseType != "" {
		ex.ExerciseType = *args.ExerciseType
	}
	if args.Notes != nil {
		ex.Notes = *args.Notes
	}

	if err := e.store.CreateExercise(ex); err != nil {
		return fmt.Sprintf("Could not create exercise '%s': it may already exist.", name)
	}

	return fmt.Sprintf("Exercise '%s' added to the library.", name)
}

func (e *Executor) updateExercise(args exerciseArgs) string {
	ex, err := e.store.ExerciseByName(args.Name)
	if errors.Is(err, storage.ErrExerciseNotFound) {
		return fmt.Sprintf("No exercise named '%s' was found in the library.", args.Name)
	}
	if err != nil {
		return fmt.Sprintf("Could not look up exercise '%s'.", args.Name)
	}
	if !ex.IsCustom {
		return fmt.Sprintf("'%s' is a built-in exercise and cannot be modified.", ex.Name)
	}

	// Partial update: only fields present in the arguments change.
	if args.NewName != nil && strings.TrimSpace(*args.NewName) != "" {
		ex.Name = strings.TrimSpace(*args.NewName)
	}
	if args.MuscleGroups != nil {
		ex.MuscleGroups = *args.MuscleGroups
	}
	if args.Equipment != nil {
		ex.Equipment = *args.Equipment
	}
	if args.Instructions != nil {
		ex.Instructions = *args.Instructions
	}
	if args.Difficulty != nil {
		ex.Difficulty = *args.Difficulty
	}
	if args.ExerciseType != nil {
		ex.ExerciseType = *args.ExerciseType
	}
	if args.Notes != nil {
		ex.Notes = *args.Notes
	}

	if err := e.store.UpdateExercise(*ex); err != nil {
		return fmt.Sprintf("Could not update exercise '%s'.", args.Name)
	}

	return fmt.Sprintf("Exercise '%s' updated.", ex.Name)
}

func (e *Executor) deleteExercise(args exerciseArgs) string {
	ex, err := e.store.ExerciseByName(args.Name)
	if errors.Is(err, storage.ErrExerciseNotFound) {
		return fmt.Sprintf("No exercise named '%s' was found in the library.", args.Name)
	}
	if err != nil {
		return fmt.Sprintf("Could not look up exercise '%s'.", args.Name)
	}
	if !ex.IsCustom {
		return fmt.Sprintf("'%s' is a built-in exercise and cannot be deleted.", ex.Name)
	}

	if err := e.store.DeleteExercise(ex.ID); err != nil {
		return fmt.Sprintf("Could not delete exercise '%s'.", args.Name)
	}

	return fmt.Sprintf("Exercise '%s' deleted from the library.", ex.Name)
}

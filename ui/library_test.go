package ui

import (
	"testing"

	"trainai/model"
)

func setField(fields []exerciseField, label, value string) {
	for i := range fields {
		if fields[i].label == label {
			fields[i].value = value
			return
		}
	}
}

func TestExerciseFormRoundTrip(t *testing.T) {
	ex := model.NewExercise("Cossack Squat")
	ex.MuscleGroups = "quads, glutes, adductors"
	ex.ExerciseType = "mobility"
	ex.Difficulty = "intermediate"
	ex.Instructions = "Shift side to side over one bent knee."
	ex.Notes = "Hold a counterweight if balance is hard."

	got, err := exerciseFromForm(exerciseFormFields(ex), ex)
	if err != nil {
		t.Fatalf("exerciseFromForm: %v", err)
	}
	if got != ex {
		t.Errorf("round trip changed the record:\n got %+v\nwant %+v", got, ex)
	}
}

func TestExerciseFormRequiresName(t *testing.T) {
	fields := exerciseFormFields(model.Exercise{})
	setField(fields, "Name", "   ")

	if _, err := exerciseFromForm(fields, model.NewExercise("")); err == nil {
		t.Error("blank name should be rejected")
	}
}

func TestExerciseFormAppliesDefaults(t *testing.T) {
	fields := exerciseFormFields(model.Exercise{})
	setField(fields, "Name", "Bear Crawl")

	got, err := exerciseFromForm(fields, model.NewExercise(""))
	if err != nil {
		t.Fatalf("exerciseFromForm: %v", err)
	}
	if got.Equipment != model.DefaultEquipment {
		t.Errorf("Equipment = %q, want %q", got.Equipment, model.DefaultEquipment)
	}
	if got.ExerciseType != model.DefaultExerciseType {
		t.Errorf("ExerciseType = %q, want %q", got.ExerciseType, model.DefaultExerciseType)
	}
	if got.Difficulty != model.DefaultDifficulty {
		t.Errorf("Difficulty = %q, want %q", got.Difficulty, model.DefaultDifficulty)
	}
	if !got.IsCustom {
		t.Error("manually added exercises must be custom")
	}
}

func TestExerciseFormEditKeepsIdentity(t *testing.T) {
	ex := model.NewExercise("Box Jump")
	ex.MuscleGroups = "quads"

	fields := exerciseFormFields(ex)
	setField(fields, "Name", "Depth Jump")
	setField(fields, "Difficulty", "advanced")

	got, err := exerciseFromForm(fields, ex)
	if err != nil {
		t.Fatalf("exerciseFromForm: %v", err)
	}
	if got.ID != ex.ID {
		t.Errorf("edit changed the record ID: %q -> %q", ex.ID, got.ID)
	}
	if got.CreatedAt != ex.CreatedAt {
		t.Error("edit changed CreatedAt")
	}
	if got.Name != "Depth Jump" || got.Difficulty != "advanced" {
		t.Errorf("edited fields not applied: %+v", got)
	}
	if got.MuscleGroups != "quads" {
		t.Errorf("untouched field changed: MuscleGroups = %q", got.MuscleGroups)
	}
}

package storage

import (
	"errors"
	"testing"

	"trainai/model"
)

func TestExerciseCRUD(t *testing.T) {
	s := testStore(t)

	ex := model.NewExercise("Cossack Squat")
	ex.MuscleGroups = "quads, glutes, adductors"
	ex.ExerciseType = "mobility"
	if err := s.CreateExercise(ex); err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}

	got, err := s.ExerciseByName("Cossack Squat")
	if err != nil {
		t.Fatalf("ExerciseByName: %v", err)
	}
	if got.ID != ex.ID || got.MuscleGroups != ex.MuscleGroups || !got.IsCustom {
		t.Errorf("loaded exercise = %+v", got)
	}

	got.Difficulty = "advanced"
	if err := s.UpdateExercise(*got); err != nil {
		t.Fatalf("UpdateExercise: %v", err)
	}
	updated, _ := s.ExerciseByName("Cossack Squat")
	if updated.Difficulty != "advanced" {
		t.Errorf("difficulty after update = %q", updated.Difficulty)
	}

	if err := s.DeleteExercise(ex.ID); err != nil {
		t.Fatalf("DeleteExercise: %v", err)
	}
	if _, err := s.ExerciseByName("Cossack Squat"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("lookup after delete = %v, want ErrExerciseNotFound", err)
	}
}

func TestCreateExerciseDuplicateName(t *testing.T) {
	s := testStore(t)

	if err := s.CreateExercise(model.NewExercise("Plank")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := s.CreateExercise(model.NewExercise("Plank")); err == nil {
		t.Error("duplicate name should violate the unique constraint")
	}
}

func TestListExercisesOrderedByName(t *testing.T) {
	s := testStore(t)

	for _, name := range []string{"Zercher Squat", "Arnold Press", "Monster Walk"} {
		if err := s.CreateExercise(model.NewExercise(name)); err != nil {
			t.Fatalf("CreateExercise(%q): %v", name, err)
		}
	}

	list, err := s.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	want := []string{"Arnold Press", "Monster Walk", "Zercher Squat"}
	if len(list) != len(want) {
		t.Fatalf("listed %d exercises, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestSeedExercisesIfNeeded(t *testing.T) {
	s := testStore(t)

	if err := s.SeedExercisesIfNeeded(); err != nil {
		t.Fatalf("SeedExercisesIfNeeded: %v", err)
	}
	seeded, err := s.ListExercises()
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatal("seed produced an empty library")
	}
	for _, ex := range seeded {
		if ex.IsCustom {
			t.Errorf("seeded exercise %q should not be custom", ex.Name)
		}
	}

	// Second run is a no-op.
	if err := s.SeedExercisesIfNeeded(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	again, _ := s.ListExercises()
	if len(again) != len(seeded) {
		t.Errorf("reseed changed library size: %d -> %d", len(seeded), len(again))
	}
}

func TestSeedSkippedWhenLibraryNonEmpty(t *testing.T) {
	s := testStore(t)

	if err := s.CreateExercise(model.NewExercise("My Move")); err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}
	if err := s.SeedExercisesIfNeeded(); err != nil {
		t.Fatalf("SeedExercisesIfNeeded: %v", err)
	}

	list, _ := s.ListExercises()
	if len(list) != 1 {
		t.Errorf("seed should not run on a non-empty library, got %d entries", len(list))
	}
}

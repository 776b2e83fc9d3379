package model

import (
	"time"

	"github.com/google/uuid"
)

// Exercise equipment/difficulty defaults applied when the model creates a
// record without specifying them.
const (
	DefaultEquipment    = "bodyweight"
	DefaultDifficulty   = "beginner"
	DefaultExerciseType = "strength"
)

// ExerciseTypes lists the known categories in display order.
var ExerciseTypes = []string{"strength", "cardio", "mobility", "flexibility"}

// Exercise is a library entry. Pre-seeded records (IsCustom == false) ship
// with the app and may not be modified or deleted through tools.
type Exercise struct {
	ID           string
	Name         string
	MuscleGroups string // comma-separated, e.g. "quads, glutes"
	Equipment    string // "barbell" | "dumbbell" | "bodyweight" | ...
	Instructions string
	Difficulty   string // "beginner" | "intermediate" | "advanced"
	ExerciseType string // "strength" | "cardio" | "mobility" | "flexibility"
	Notes        string
	IsCustom     bool
	CreatedAt    time.Time
}

// NewExercise creates a custom (mutable) exercise with defaults filled in.
func NewExercise(name string) Exercise {
	return Exercise{
		ID:           uuid.New().String(),
		Name:         name,
		Equipment:    DefaultEquipment,
		Difficulty:   DefaultDifficulty,
		ExerciseType: DefaultExerciseType,
		IsCustom:     true,
		CreatedAt:    time.Now(),
	}
}

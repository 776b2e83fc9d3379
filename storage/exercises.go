package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"trainai/model"
)

// ErrExerciseNotFound is returned when a name/id lookup finds nothing.
var ErrExerciseNotFound = errors.New("exercise not found")

// CreateExercise inserts a new library entry.
func (s *Store) CreateExercise(ex model.Exercise) error {
	_, err := s.db.Exec(
		`INSERT INTO exercises (id, name, muscle_groups, equipment, instructions, difficulty, exercise_type, notes, is_custom, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, ex.MuscleGroups, ex.Equipment, ex.Instructions,
		ex.Difficulty, ex.ExerciseType, ex.Notes, ex.IsCustom, ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// UpdateExercise persists all mutable fields of ex, keyed by ID.
func (s *Store) UpdateExercise(ex model.Exercise) error {
	_, err := s.db.Exec(
		`UPDATE exercises SET name = ?, muscle_groups = ?, equipment = ?, instructions = ?,
		 difficulty = ?, exercise_type = ?, notes = ? WHERE id = ?`,
		ex.Name, ex.MuscleGroups, ex.Equipment, ex.Instructions,
		ex.Difficulty, ex.ExerciseType, ex.Notes, ex.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise by ID.
func (s *Store) DeleteExercise(id string) error {
	if _, err := s.db.Exec(`DELETE FROM exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}

// ExerciseByName looks up an exercise by its exact name.
func (s *Store) ExerciseByName(name string) (*model.Exercise, error) {
	row := s.db.QueryRow(
		`SELECT id, name, muscle_groups, equipment, instructions, difficulty, exercise_type, notes, is_custom, created_at
		 FROM exercises WHERE name = ?`, name,
	)
	return scanExercise(row)
}

// ListExercises returns the whole library ordered by name.
func (s *Store) ListExercises() ([]model.Exercise, error) {
	rows, err := s.db.Query(
		`SELECT id, name, muscle_groups, equipment, instructions, difficulty, exercise_type, notes, is_custom, created_at
		 FROM exercises ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		var ex model.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.MuscleGroups, &ex.Equipment, &ex.Instructions,
			&ex.Difficulty, &ex.ExerciseType, &ex.Notes, &ex.IsCustom, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}

	return exercises, rows.Err()
}

func scanExercise(row *sql.Row) (*model.Exercise, error) {
	var ex model.Exercise
	err := row.Scan(&ex.ID, &ex.Name, &ex.MuscleGroups, &ex.Equipment, &ex.Instructions,
		&ex.Difficulty, &ex.ExerciseType, &ex.Notes, &ex.IsCustom, &ex.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan exercise: %w", err)
	}
	return &ex, nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trainai/model"
)

// LoadProfile returns the stored profile, or nil when none has been saved.
func (s *Store) LoadProfile() (*model.UserProfile, error) {
	row := s.db.QueryRow(`
		SELECT name, nickname, birth_year, gender, height_cm, start_weight_kg,
		       current_weight_kg, goal_weight_kg, body_fat_percent, primary_goal,
		       goal_deadline, motivation_note, experience_level, medical_conditions,
		       current_injuries, medications, activity_level, sleep_hours_per_night,
		       stress_level, dietary_preferences, food_allergies, training_location,
		       preferred_days_per_week, preferred_session_minutes, preferred_time_of_day
		FROM profile WHERE id = 1`)

	var (
		p            model.UserProfile
		birthYear    sql.NullInt64
		gender       sql.NullString
		heightCm     sql.NullFloat64
		startWeight  sql.NullFloat64
		currWeight   sql.NullFloat64
		goalWeight   sql.NullFloat64
		bodyFat      sql.NullFloat64
		primaryGoal  sql.NullString
		goalDeadline sql.NullTime
		motivation   sql.NullString
		experience   sql.NullString
		medical      sql.NullString
		injuries     sql.NullString
		medications  sql.NullString
		activity     sql.NullString
		sleep        sql.NullFloat64
		stress       sql.NullInt64
		dietary      sql.NullString
		allergies    sql.NullString
		location     sql.NullString
		daysPerWeek  sql.NullInt64
		sessionMins  sql.NullInt64
		timeOfDay    sql.NullString
	)

	err := row.Scan(&p.Name, &p.Nickname, &birthYear, &gender, &heightCm, &startWeight,
		&currWeight, &goalWeight, &bodyFat, &primaryGoal, &goalDeadline, &motivation,
		&experience, &medical, &injuries, &medications, &activity, &sleep,
		&stress, &dietary, &allergies, &location, &daysPerWeek, &sessionMins, &timeOfDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p.BirthYear = nullInt(birthYear)
	p.Gender = nullString(gender)
	p.HeightCm = nullFloat(heightCm)
	p.StartWeightKg = nullFloat(startWeight)
	p.CurrentWeightKg = nullFloat(currWeight)
	p.GoalWeightKg = nullFloat(goalWeight)
	p.BodyFatPercent = nullFloat(bodyFat)
	p.PrimaryGoal = nullString(primaryGoal)
	p.GoalDeadline = nullTime(goalDeadline)
	p.MotivationNote = nullString(motivation)
	p.ExperienceLevel = nullString(experience)
	p.MedicalConditions = nullString(medical)
	p.CurrentInjuries = nullString(injuries)
	p.Medications = nullString(medications)
	p.ActivityLevel = nullString(activity)
	p.SleepHoursPerNight = nullFloat(sleep)
	p.StressLevel = nullInt(stress)
	p.DietaryPreferences = nullString(dietary)
	p.FoodAllergies = nullString(allergies)
	p.TrainingLocation = nullString(location)
	p.PreferredDaysPerWeek = nullInt(daysPerWeek)
	p.PreferredSessionMinutes = nullInt(sessionMins)
	p.PreferredTimeOfDay = nullString(timeOfDay)

	return &p, nil
}

// SaveProfile upserts the single profile row.
func (s *Store) SaveProfile(p *model.UserProfile) error {
	_, err := s.db.Exec(`
		INSERT INTO profile (id, name, nickname, birth_year, gender, height_cm,
			start_weight_kg, current_weight_kg, goal_weight_kg, body_fat_percent,
			primary_goal, goal_deadline, motivation_note, experience_level,
			medical_conditions, current_injuries, medications, activity_level,
			sleep_hours_per_night, stress_level, dietary_preferences, food_allergies,
			training_location, preferred_days_per_week, preferred_session_minutes,
			preferred_time_of_day)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			nickname = excluded.nickname,
			birth_year = excluded.birth_year,
			gender = excluded.gender,
			height_cm = excluded.height_cm,
			start_weight_kg = excluded.start_weight_kg,
			current_weight_kg = excluded.current_weight_kg,
			goal_weight_kg = excluded.goal_weight_kg,
			body_fat_percent = excluded.body_fat_percent,
			primary_goal = excluded.primary_goal,
			goal_deadline = excluded.goal_deadline,
			motivation_note = excluded.motivation_note,
			experience_level = excluded.experience_level,
			medical_conditions = excluded.medical_conditions,
			current_injuries = excluded.current_injuries,
			medications = excluded.medications,
			activity_level = excluded.activity_level,
			sleep_hours_per_night = excluded.sleep_hours_per_night,
			stress_level = excluded.stress_level,
			dietary_preferences = excluded.dietary_preferences,
			food_allergies = excluded.food_allergies,
			training_location = excluded.training_location,
			preferred_days_per_week = excluded.preferred_days_per_week,
			preferred_session_minutes = excluded.preferred_session_minutes,
			preferred_time_of_day = excluded.preferred_time_of_day`,
		p.Name, p.Nickname, ptrInt(p.BirthYear), ptrString(p.Gender), ptrFloat(p.HeightCm),
		ptrFloat(p.StartWeightKg), ptrFloat(p.CurrentWeightKg), ptrFloat(p.GoalWeightKg),
		ptrFloat(p.BodyFatPercent), ptrString(p.PrimaryGoal), ptrTime(p.GoalDeadline),
		ptrString(p.MotivationNote), ptrString(p.ExperienceLevel), ptrString(p.MedicalConditions),
		ptrString(p.CurrentInjuries), ptrString(p.Medications), ptrString(p.ActivityLevel),
		ptrFloat(p.SleepHoursPerNight), ptrInt(p.StressLevel), ptrString(p.DietaryPreferences),
		ptrString(p.FoodAllergies), ptrString(p.TrainingLocation), ptrInt(p.PreferredDaysPerWeek),
		ptrInt(p.PreferredSessionMinutes), ptrString(p.PreferredTimeOfDay),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func ptrString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func ptrFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func ptrInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func ptrTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

package model

import "time"

// Unit systems accepted for display formatting. Stored measurements are
// always metric.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// UserProfile holds the fitness profile that feeds the system prompt.
// Optional fields are pointers so "unset" and "zero" stay distinguishable;
// unset fields are omitted from the prompt entirely.
type UserProfile struct {
	Name     string
	Nickname string

	// Body stats (canonical metric)
	BirthYear       *int
	Gender          *string // "male" | "female" | "non-binary" | "prefer_not_to_say"
	HeightCm        *float64
	StartWeightKg   *float64
	CurrentWeightKg *float64
	GoalWeightKg    *float64
	BodyFatPercent  *float64

	// Goals
	PrimaryGoal    *string // comma-joined tags, e.g. "lose_weight,build_muscle"
	GoalDeadline   *time.Time
	MotivationNote *string

	// Health history
	ExperienceLevel   *string // "beginner" | "intermediate" | "advanced"
	MedicalConditions *string
	CurrentInjuries   *string
	Medications       *string

	// Lifestyle
	ActivityLevel      *string
	SleepHoursPerNight *float64
	StressLevel        *int // 1-10
	DietaryPreferences *string
	FoodAllergies      *string

	// Training preferences
	TrainingLocation        *string // "home" | "gym" | "outdoors" | "mix"
	PreferredDaysPerWeek    *int
	PreferredSessionMinutes *int
	PreferredTimeOfDay      *string
}

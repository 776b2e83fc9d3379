package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"trainai/model"
)

// seedExercise is one pre-seeded library entry. All seeds are immutable
// through tools (IsCustom stays false).
type seedExercise struct {
	name         string
	muscleGroups string
	equipment    string
	instructions string
	difficulty   string
	exerciseType string
}

var exerciseSeeds = []seedExercise{
	{"Back Squat", "quads, glutes, hamstrings", "barbell",
		"Bar across upper back, feet shoulder-width. Descend until thighs parallel, drive through heels.",
		"intermediate", "strength"},
	{"Deadlift", "hamstrings, glutes, lower back, traps", "barbell",
		"Bar over mid-foot, hinge and grip. Brace core, drive hips forward to stand.",
		"intermediate", "strength"},
	{"Push-Up", "chest, triceps, front delts", "bodyweight",
		"High plank, elbows 45°. Lower chest to floor, press to full extension.",
		"beginner", "strength"},
	{"Pull-Up", "lats, biceps, rear delts", "bodyweight",
		"Overhand grip, shoulder-width. Pull chest to bar driving elbows down.",
		"intermediate", "strength"},
	{"Bench Press", "chest, triceps, front delts", "barbell",
		"Grip slightly wider than shoulders. Lower bar to mid-chest, press to lockout.",
		"intermediate", "strength"},
	{"Overhead Press", "front delts, triceps, upper chest", "barbell",
		"Bar at shoulder height. Press overhead to full arm extension.",
		"intermediate", "strength"},
	{"Romanian Deadlift", "hamstrings, glutes", "barbell",
		"Hinge forward with slight knee bend until hamstrings fully stretched. Drive hips forward.",
		"intermediate", "strength"},
	{"Barbell Row", "lats, rhomboids, biceps", "barbell",
		"Hinge to horizontal torso. Pull bar to lower chest, elbows back.",
		"intermediate", "strength"},
	{"Dumbbell Lunges", "quads, glutes, hamstrings", "dumbbell",
		"Hold dumbbells at sides. Step forward, lower back knee, drive front foot to return.",
		"beginner", "strength"},
	{"Plank", "core, shoulders", "bodyweight",
		"Forearms on floor, body straight head to heels. Brace abs.",
		"beginner", "strength"},
	{"Dips", "triceps, chest, front delts", "bodyweight",
		"Support on parallel bars. Lower until upper arms parallel to floor, press to lockout.",
		"intermediate", "strength"},
	{"Cable Row", "lats, rhomboids, biceps", "cable",
		"Feet on platform. Pull handle to abdomen, squeeze shoulder blades.",
		"beginner", "strength"},
	{"Lat Pulldown", "lats, biceps", "cable",
		"Wide grip, sit tall. Pull bar to upper chest driving elbows down.",
		"beginner", "strength"},
	{"Leg Press", "quads, glutes", "machine",
		"Feet hip-width on plate. Lower to 90° knee angle, press to near lockout.",
		"beginner", "strength"},
	{"Kettlebell Swing", "glutes, hamstrings, core", "kettlebell",
		"Hinge at hips, swing bell back between legs. Drive hips forward to swing to chest height.",
		"intermediate", "strength"},
	{"Burpee", "full body", "bodyweight",
		"From standing: hands down, jump back to plank, push-up, jump forward, jump up arms overhead.",
		"intermediate", "cardio"},
	{"Jump Rope", "calves, shoulders, core", "none",
		"Rotate rope with wrists, jump with both feet slightly off ground as rope passes.",
		"beginner", "cardio"},
	{"Cat-Cow", "spine, core", "bodyweight",
		"On hands and knees, alternate arching spine (cat) and dropping belly (cow). Move with breath.",
		"beginner", "mobility"},
	{"World's Greatest Stretch", "hip flexors, thoracic spine, hamstrings", "bodyweight",
		"Step into lunge, same-side hand inside foot. Rotate opposite arm to ceiling. Repeat each side.",
		"beginner", "mobility"},
	{"Hip Flexor Stretch", "hip flexors", "bodyweight",
		"Kneel on one knee. Shift hips forward until stretch at front of back hip. Hold 30–45s each side.",
		"beginner", "flexibility"},
}

// SeedExercisesIfNeeded inserts the pre-seeded exercise library on first run.
// A non-empty library (seeded or user-built) is left untouched.
func (s *Store) SeedExercisesIfNeeded() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, seed := range exerciseSeeds {
		ex := model.Exercise{
			ID:           uuid.New().String(),
			Name:         seed.name,
			MuscleGroups: seed.muscleGroups,
			Equipment:    seed.equipment,
			Instructions: seed.instructions,
			Difficulty:   seed.difficulty,
			ExerciseType: seed.exerciseType,
			IsCustom:     false,
			CreatedAt:    time.Now(),
		}
		if err := s.CreateExercise(ex); err != nil {
			return fmt.Errorf("failed to seed exercise %q: %w", seed.name, err)
		}
	}

	return nil
}

package prompt

import (
	"fmt"
	"strings"
	"time"

	"trainai/model"
)

// goalTags lists the recognized goal tags in display order.
var goalTags = []string{
	"lose_weight", "build_muscle", "endurance",
	"flexibility", "general_health", "sport_specific",
}

// goalLabels maps goal tags to human-readable labels. Unknown tags pass
// through verbatim.
var goalLabels = map[string]string{
	"lose_weight":    "Lose Weight",
	"build_muscle":   "Build Muscle",
	"endurance":      "Endurance",
	"flexibility":    "Flexibility",
	"general_health": "General Health",
	"sport_specific": "Sport Specific",
}

// GoalTags returns the goal tags the profile block renders with friendly
// labels; editing surfaces offer these to the user.
func GoalTags() []string {
	return append([]string(nil), goalTags...)
}

// Build renders the full system prompt: the fixed coaching preamble, an
// optional profile block and an optional exercise library block. Deterministic
// for identical inputs; no error conditions.
func Build(profile *model.UserProfile, units string, exercises []model.Exercise) string {
	var b strings.Builder
	b.WriteString(CoachingPreamble)
	if profile != nil {
		b.WriteString(profileBlock(profile, units))
	}
	if len(exercises) > 0 {
		b.WriteString(exerciseBlock(exercises))
	}
	return b.String()
}

func profileBlock(p *model.UserProfile, units string) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n## User Profile\n")

	if p.Nickname != "" {
		fmt.Fprintf(&b, "- Nickname: %s\n", sanitize(p.Nickname))
	}
	if p.BirthYear != nil {
		fmt.Fprintf(&b, "- Age: ~%d\n", time.Now().Year()-*p.BirthYear)
	}
	if p.Gender != nil && *p.Gender != "" && *p.Gender != "prefer_not_to_say" {
		fmt.Fprintf(&b, "- Gender: %s\n", strings.ReplaceAll(*p.Gender, "_", "-"))
	}
	if p.HeightCm != nil {
		fmt.Fprintf(&b, "- Height: %s\n", formatHeight(*p.HeightCm, units))
	}
	if p.CurrentWeightKg != nil {
		fmt.Fprintf(&b, "- Current Weight: %s\n", formatWeight(*p.CurrentWeightKg, units))
	}
	if p.StartWeightKg != nil {
		fmt.Fprintf(&b, "- Start Weight: %s\n", formatWeight(*p.StartWeightKg, units))
	}
	if p.GoalWeightKg != nil {
		fmt.Fprintf(&b, "- Goal Weight: %s\n", formatWeight(*p.GoalWeightKg, units))
	}
	if p.BodyFatPercent != nil {
		fmt.Fprintf(&b, "- Body Fat: %d%%\n", int(*p.BodyFatPercent))
	}

	if p.PrimaryGoal != nil && *p.PrimaryGoal != "" {
		tags := strings.Split(*p.PrimaryGoal, ",")
		readable := make([]string, 0, len(tags))
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if label, ok := goalLabels[tag]; ok {
				readable = append(readable, label)
			} else {
				readable = append(readable, tag)
			}
		}
		fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(readable, ", "))
	}
	if p.GoalDeadline != nil {
		fmt.Fprintf(&b, "- Goal Deadline: %s\n", p.GoalDeadline.Format("Jan 2, 2006"))
	}
	if p.MotivationNote != nil && *p.MotivationNote != "" {
		fmt.Fprintf(&b, "- Motivation: %s\n", sanitize(*p.MotivationNote))
	}

	if p.ExperienceLevel != nil && *p.ExperienceLevel != "" {
		fmt.Fprintf(&b, "- Experience Level: %s\n", capitalize(*p.ExperienceLevel))
	}
	if p.ActivityLevel != nil && *p.ActivityLevel != "" {
		fmt.Fprintf(&b, "- Activity Level: %s\n", capitalizeWords(strings.ReplaceAll(*p.ActivityLevel, "_", " ")))
	}

	if p.MedicalConditions != nil && *p.MedicalConditions != "" {
		fmt.Fprintf(&b, "- Medical Conditions: %s\n", sanitize(*p.MedicalConditions))
	}
	if p.CurrentInjuries != nil && *p.CurrentInjuries != "" {
		fmt.Fprintf(&b, "- Current Injuries: %s\n", sanitize(*p.CurrentInjuries))
	}
	if p.Medications != nil && *p.Medications != "" {
		fmt.Fprintf(&b, "- Medications: %s\n", sanitize(*p.Medications))
	}

	if p.SleepHoursPerNight != nil {
		fmt.Fprintf(&b, "- Sleep: %.1fh/night\n", *p.SleepHoursPerNight)
	}
	if p.StressLevel != nil {
		fmt.Fprintf(&b, "- Stress Level: %d/10\n", *p.StressLevel)
	}
	if p.DietaryPreferences != nil && *p.DietaryPreferences != "" {
		fmt.Fprintf(&b, "- Dietary Preferences: %s\n", sanitize(*p.DietaryPreferences))
	}
	if p.FoodAllergies != nil && *p.FoodAllergies != "" {
		fmt.Fprintf(&b, "- Food Allergies: %s\n", sanitize(*p.FoodAllergies))
	}

	if p.TrainingLocation != nil && *p.TrainingLocation != "" {
		fmt.Fprintf(&b, "- Training Location: %s\n", capitalize(*p.TrainingLocation))
	}
	if p.PreferredDaysPerWeek != nil {
		fmt.Fprintf(&b, "- Preferred Days/Week: %d\n", *p.PreferredDaysPerWeek)
	}
	if p.PreferredSessionMinutes != nil {
		fmt.Fprintf(&b, "- Preferred Session Length: %d min\n", *p.PreferredSessionMinutes)
	}
	if p.PreferredTimeOfDay != nil && *p.PreferredTimeOfDay != "" {
		fmt.Fprintf(&b, "- Preferred Time of Day: %s\n", capitalize(*p.PreferredTimeOfDay))
	}

	return b.String()
}

// exerciseBlock lists the library grouped by category so the model prefers
// known exercises and knows it can manage custom ones through tools.
func exerciseBlock(exercises []model.Exercise) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n## Exercise Library\n")
	b.WriteString("Prefer these exercises when building plans. You have tools available to create, update, and delete custom exercises in this library.\n")

	for _, category := range model.ExerciseTypes {
		var entries []string
		for _, ex := range exercises {
			if ex.ExerciseType == category {
				entry := sanitize(ex.Name)
				if ex.MuscleGroups != "" {
					entry += " (" + sanitize(ex.MuscleGroups) + ")"
				}
				entries = append(entries, entry)
			}
		}
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", capitalize(category), strings.Join(entries, "; "))
	}

	return b.String()
}

// sanitize collapses embedded line breaks in user-supplied free text before
// it is interpolated into the prompt, preventing multi-line prompt injection.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

func formatWeight(kg float64, units string) string {
	if units == model.UnitsImperial {
		return fmt.Sprintf("%d lbs", int(kg*2.20462))
	}
	return fmt.Sprintf("%d kg", int(kg))
}

func formatHeight(cm float64, units string) string {
	if units == model.UnitsImperial {
		inches := int(cm / 2.54)
		return fmt.Sprintf("%d'%d\"", inches/12, inches%12)
	}
	return fmt.Sprintf("%d cm", int(cm))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

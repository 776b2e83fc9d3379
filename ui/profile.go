package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainai/config"
	"trainai/model"
	"trainai/prompt"
)

type profileFieldKind int

const (
	profileText profileFieldKind = iota
	profileInt
	profileFloat
	profileMonth // YYYY-MM
)

type profileField struct {
	label string
	value string
	kind  profileFieldKind
	hint  string
}

// openProfileForm loads the stored profile into an editable field list.
// Every field is optional; blank means "not shared with the coach".
func (a *AppView) openProfileForm() {
	profile, err := a.store.LoadProfile()
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[ui] load profile failed: %v", err)
	}
	if profile == nil {
		profile = &model.UserProfile{}
	}

	a.profileFields = []profileField{
		{label: "Name", value: profile.Name, kind: profileText},
		{label: "Nickname", value: profile.Nickname, kind: profileText},
		{label: "Birth year", value: fmtIntPtr(profile.BirthYear), kind: profileInt},
		{label: "Gender", value: strPtr(profile.Gender), kind: profileText, hint: "male / female / other / prefer_not_to_say"},
		{label: "Height (cm)", value: fmtFloatPtr(profile.HeightCm), kind: profileFloat},
		{label: "Start weight (kg)", value: fmtFloatPtr(profile.StartWeightKg), kind: profileFloat},
		{label: "Current weight (kg)", value: fmtFloatPtr(profile.CurrentWeightKg), kind: profileFloat},
		{label: "Goal weight (kg)", value: fmtFloatPtr(profile.GoalWeightKg), kind: profileFloat},
		{label: "Body fat (%)", value: fmtFloatPtr(profile.BodyFatPercent), kind: profileFloat},
		{label: "Primary goal", value: strPtr(profile.PrimaryGoal), kind: profileText, hint: strings.Join(prompt.GoalTags(), " / ") + " (comma-join multiple)"},
		{label: "Goal deadline", value: fmtMonthPtr(profile.GoalDeadline), kind: profileMonth, hint: "YYYY-MM"},
		{label: "Motivation", value: strPtr(profile.MotivationNote), kind: profileText},
		{label: "Experience level", value: strPtr(profile.ExperienceLevel), kind: profileText, hint: "beginner / intermediate / advanced"},
		{label: "Medical conditions", value: strPtr(profile.MedicalConditions), kind: profileText},
		{label: "Current injuries", value: strPtr(profile.CurrentInjuries), kind: profileText},
		{label: "Medications", value: strPtr(profile.Medications), kind: profileText},
		{label: "Activity level", value: strPtr(profile.ActivityLevel), kind: profileText, hint: "sedentary / lightly_active / moderately_active / very_active"},
		{label: "Sleep (hours/night)", value: fmtFloatPtr(profile.SleepHoursPerNight), kind: profileFloat},
		{label: "Stress level (1-10)", value: fmtIntPtr(profile.StressLevel), kind: profileInt},
		{label: "Dietary preferences", value: strPtr(profile.DietaryPreferences), kind: profileText},
		{label: "Food allergies", value: strPtr(profile.FoodAllergies), kind: profileText},
		{label: "Training location", value: strPtr(profile.TrainingLocation), kind: profileText, hint: "gym / home / outdoors / mix"},
		{label: "Days per week", value: fmtIntPtr(profile.PreferredDaysPerWeek), kind: profileInt},
		{label: "Session length (min)", value: fmtIntPtr(profile.PreferredSessionMinutes), kind: profileInt},
		{label: "Preferred time of day", value: strPtr(profile.PreferredTimeOfDay), kind: profileText, hint: "morning / afternoon / evening"},
	}
	a.profileSelected = 0
	a.profileEditMode = false
	a.profileStatus = ""
	a.activeOverlay = overlayProfile
}

func (a AppView) updateProfileForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.profileEditMode {
		switch msg.String() {
		case "enter":
			a.profileFields[a.profileSelected].value = strings.TrimSpace(a.profileEdit.Value())
			a.profileEditMode = false
			a.profileStatus = ""
		case "esc":
			a.profileEditMode = false
		default:
			var cmd tea.Cmd
			a.profileEdit, cmd = a.profileEdit.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "ctrl+u":
		a.activeOverlay = overlayNone

	case "up", "k":
		if a.profileSelected > 0 {
			a.profileSelected--
		}

	case "down", "j":
		if a.profileSelected < len(a.profileFields)-1 {
			a.profileSelected++
		}

	case "enter":
		field := a.profileFields[a.profileSelected]
		ti := textinput.New()
		ti.SetValue(field.value)
		ti.CharLimit = 200
		ti.Width = 40
		ti.Focus()
		a.profileEdit = ti
		a.profileEditMode = true

	case "ctrl+s":
		if err := a.saveProfile(); err != nil {
			a.profileStatus = ErrorStyle.Render(err.Error())
		} else {
			a.profileStatus = SelectedStyle.Render("Profile saved")
		}
	}

	return a, nil
}

// saveProfile parses the field list back into a profile and persists it.
func (a *AppView) saveProfile() error {
	p := &model.UserProfile{}
	assign := []func(string) error{
		func(v string) error { p.Name = v; return nil },
		func(v string) error { p.Nickname = v; return nil },
		func(v string) error { return parseIntPtr(v, &p.BirthYear) },
		func(v string) error { p.Gender = optStr(v); return nil },
		func(v string) error { return parseFloatPtr(v, &p.HeightCm) },
		func(v string) error { return parseFloatPtr(v, &p.StartWeightKg) },
		func(v string) error { return parseFloatPtr(v, &p.CurrentWeightKg) },
		func(v string) error { return parseFloatPtr(v, &p.GoalWeightKg) },
		func(v string) error { return parseFloatPtr(v, &p.BodyFatPercent) },
		func(v string) error { p.PrimaryGoal = optStr(v); return nil },
		func(v string) error { return parseMonthPtr(v, &p.GoalDeadline) },
		func(v string) error { p.MotivationNote = optStr(v); return nil },
		func(v string) error { p.ExperienceLevel = optStr(v); return nil },
		func(v string) error { p.MedicalConditions = optStr(v); return nil },
		func(v string) error { p.CurrentInjuries = optStr(v); return nil },
		func(v string) error { p.Medications = optStr(v); return nil },
		func(v string) error { p.ActivityLevel = optStr(v); return nil },
		func(v string) error { return parseFloatPtr(v, &p.SleepHoursPerNight) },
		func(v string) error { return parseIntPtr(v, &p.StressLevel) },
		func(v string) error { p.DietaryPreferences = optStr(v); return nil },
		func(v string) error { p.FoodAllergies = optStr(v); return nil },
		func(v string) error { p.TrainingLocation = optStr(v); return nil },
		func(v string) error { return parseIntPtr(v, &p.PreferredDaysPerWeek) },
		func(v string) error { return parseIntPtr(v, &p.PreferredSessionMinutes) },
		func(v string) error { p.PreferredTimeOfDay = optStr(v); return nil },
	}

	for i, field := range a.profileFields {
		if err := assign[i](strings.TrimSpace(field.value)); err != nil {
			return fmt.Errorf("%s: %w", field.label, err)
		}
	}

	return a.store.SaveProfile(p)
}

func (a AppView) renderProfileForm() string {
	modalWidth := a.width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}
	modalHeight := a.height - 6

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Your Profile")

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("The coach tailors plans to whatever you share here")

	maxLines := modalHeight - 10
	if maxLines < 1 {
		maxLines = 1
	}
	start, end := scrollWindow(len(a.profileFields), a.profileSelected, maxLines)

	var lines []string
	for i := start; i < end; i++ {
		field := a.profileFields[i]

		indicator := "  "
		if i == a.profileSelected {
			indicator = "▶ "
		}

		label := fmt.Sprintf("%-22s", field.label)
		if i == a.profileSelected {
			label = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(label)
		}

		value := field.value
		if a.profileEditMode && i == a.profileSelected {
			value = a.profileEdit.View()
		} else if value == "" {
			value = DimStyle.Render("—")
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", indicator, label, value))
	}

	listSection := strings.Join(lines, "\n")

	var statusLine string
	if a.profileEditMode {
		hint := a.profileFields[a.profileSelected].hint
		if hint != "" {
			statusLine = DimStyle.Render(hint)
		}
	} else {
		statusLine = a.profileStatus
	}

	var footer string
	if a.profileEditMode {
		footer = FormatFooter("Enter", "Apply", "Esc", "Cancel")
	} else {
		footer = FormatFooter("j/k", "Navigate", "Enter", "Edit", "ctrl+s", "Save", "Esc", "Close")
	}
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	sections := []string{titleSection, headerSection, listSection}
	if statusLine != "" {
		sections = append(sections, lipgloss.NewStyle().Align(lipgloss.Center).Width(modalWidth).Render(statusLine))
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func strPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fmtMonthPtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01")
}

func optStr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseIntPtr(v string, dst **int) error {
	if v == "" {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("not a whole number")
	}
	*dst = &n
	return nil
}

func parseFloatPtr(v string, dst **float64) error {
	if v == "" {
		*dst = nil
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	*dst = &f
	return nil
}

func parseMonthPtr(v string, dst **time.Time) error {
	if v == "" {
		*dst = nil
		return nil
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return fmt.Errorf("use YYYY-MM")
	}
	*dst = &t
	return nil
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainai/model"
)

type exerciseField struct {
	label string
	value string
	hint  string
}

// exerciseFormFields lays out the editable fields for one library record.
func exerciseFormFields(ex model.Exercise) []exerciseField {
	return []exerciseField{
		{label: "Name", value: ex.Name},
		{label: "Muscle groups", value: ex.MuscleGroups, hint: "comma-separated, e.g. quads, glutes"},
		{label: "Equipment", value: ex.Equipment},
		{label: "Type", value: ex.ExerciseType, hint: strings.Join(model.ExerciseTypes, " / ")},
		{label: "Difficulty", value: ex.Difficulty, hint: "beginner / intermediate / advanced"},
		{label: "Instructions", value: ex.Instructions},
		{label: "Notes", value: ex.Notes},
	}
}

// exerciseFromForm folds the edited fields back onto base, which carries the
// record identity (ID, IsCustom, CreatedAt). Blank equipment, type and
// difficulty fall back to the same defaults tool-created records get.
func exerciseFromForm(fields []exerciseField, base model.Exercise) (model.Exercise, error) {
	get := func(i int) string { return strings.TrimSpace(fields[i].value) }

	name := get(0)
	if name == "" {
		return model.Exercise{}, fmt.Errorf("name is required")
	}

	base.Name = name
	base.MuscleGroups = get(1)
	base.Equipment = get(2)
	base.ExerciseType = get(3)
	base.Difficulty = get(4)
	base.Instructions = get(5)
	base.Notes = get(6)

	if base.Equipment == "" {
		base.Equipment = model.DefaultEquipment
	}
	if base.ExerciseType == "" {
		base.ExerciseType = model.DefaultExerciseType
	}
	if base.Difficulty == "" {
		base.Difficulty = model.DefaultDifficulty
	}

	return base, nil
}

// openExerciseForm opens the form over the library, blank for a new custom
// record or pre-filled when editing an existing one.
func (a *AppView) openExerciseForm(existing *model.Exercise) {
	if existing != nil {
		ex := *existing
		a.exFormEditing = &ex
		a.exFormFields = exerciseFormFields(ex)
	} else {
		a.exFormEditing = nil
		a.exFormFields = exerciseFormFields(model.Exercise{})
	}
	a.exFormActive = true
	a.exFormSelected = 0
	a.exFormEditMode = false
	a.exFormStatus = ""
}

func (a AppView) updateExerciseForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.exFormEditMode {
		switch msg.String() {
		case "enter":
			a.exFormFields[a.exFormSelected].value = strings.TrimSpace(a.exFormEdit.Value())
			a.exFormEditMode = false
			a.exFormStatus = ""
		case "esc":
			a.exFormEditMode = false
		default:
			var cmd tea.Cmd
			a.exFormEdit, cmd = a.exFormEdit.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	switch msg.String() {
	case "esc":
		a.exFormActive = false

	case "up", "k":
		if a.exFormSelected > 0 {
			a.exFormSelected--
		}

	case "down", "j":
		if a.exFormSelected < len(a.exFormFields)-1 {
			a.exFormSelected++
		}

	case "enter":
		field := a.exFormFields[a.exFormSelected]
		ti := textinput.New()
		ti.SetValue(field.value)
		ti.CharLimit = 300
		ti.Width = 48
		ti.Focus()
		a.exFormEdit = ti
		a.exFormEditMode = true

	case "ctrl+s":
		return a, a.saveExerciseForm()
	}

	return a, nil
}

// saveExerciseForm persists the form and reloads the library list. Validation
// failures keep the form open with a status message.
func (a *AppView) saveExerciseForm() tea.Cmd {
	base := model.NewExercise("")
	if a.exFormEditing != nil {
		base = *a.exFormEditing
	}

	ex, err := exerciseFromForm(a.exFormFields, base)
	if err != nil {
		a.exFormStatus = ErrorStyle.Render(err.Error())
		return nil
	}

	store := a.store
	creating := a.exFormEditing == nil
	a.exFormActive = false

	return func() tea.Msg {
		var saveErr error
		if creating {
			saveErr = store.CreateExercise(ex)
		} else {
			saveErr = store.UpdateExercise(ex)
		}
		if saveErr != nil {
			return exercisesLoadedMsg{err: saveErr}
		}
		exercises, listErr := store.ListExercises()
		return exercisesLoadedMsg{exercises: exercises, err: listErr}
	}
}

func (a AppView) renderExerciseForm() string {
	modalWidth := a.width - 10
	if modalWidth > 80 {
		modalWidth = 80
	}

	title := "Add Exercise"
	if a.exFormEditing != nil {
		title = "Edit Exercise"
	}
	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(title)

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Custom exercises join the library the coach plans from")

	var lines []string
	for i, field := range a.exFormFields {
		indicator := "  "
		if i == a.exFormSelected {
			indicator = "▶ "
		}

		label := fmt.Sprintf("%-16s", field.label)
		if i == a.exFormSelected {
			label = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(label)
		}

		value := field.value
		if a.exFormEditMode && i == a.exFormSelected {
			value = a.exFormEdit.View()
		} else if value == "" {
			value = DimStyle.Render("—")
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", indicator, label, value))
	}

	listSection := strings.Join(lines, "\n")

	var statusLine string
	if a.exFormEditMode {
		if hint := a.exFormFields[a.exFormSelected].hint; hint != "" {
			statusLine = DimStyle.Render(hint)
		}
	} else {
		statusLine = a.exFormStatus
	}

	var footer string
	if a.exFormEditMode {
		footer = FormatFooter("Enter", "Apply", "Esc", "Cancel")
	} else {
		footer = FormatFooter("j/k", "Navigate", "Enter", "Edit", "ctrl+s", "Save", "Esc", "Back")
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

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"trainai/model"
)

func (a AppView) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.exFormActive {
		return a.updateExerciseForm(msg)
	}

	if a.confirmDeleteEx != nil {
		switch msg.String() {
		case "y", "Y":
			ex := *a.confirmDeleteEx
			a.confirmDeleteEx = nil
			return a, a.deleteExerciseCmd(ex)
		case "n", "N", "esc":
			a.confirmDeleteEx = nil
		}
		return a, nil
	}

	if a.exFilterMode {
		switch msg.String() {
		case "esc":
			a.exFilterMode = false
			a.exFilterInput.Reset()
			a.exSelected = 0
			return a, nil
		case "enter", "up", "down":
			// Fall through to list navigation below
		default:
			var cmd tea.Cmd
			a.exFilterInput, cmd = a.exFilterInput.Update(msg)
			a.exFiltered = filterExercises(a.exList, a.exFilterInput.Value())
			a.exSelected = 0
			return a, cmd
		}
	}

	list := a.currentExercises()

	switch msg.String() {
	case "esc", "ctrl+e":
		a.activeOverlay = overlayNone

	case "up", "k":
		if a.exSelected > 0 {
			a.exSelected--
		}

	case "down", "j":
		if a.exSelected < len(list)-1 {
			a.exSelected++
		}

	case "a":
		a.openExerciseForm(nil)

	case "e":
		// Built-in exercises are immutable; only customs can be edited here
		if a.exSelected < len(list) && list[a.exSelected].IsCustom {
			ex := list[a.exSelected]
			a.openExerciseForm(&ex)
		}

	case "d":
		// Built-in exercises are immutable; only customs can be removed here
		if a.exSelected < len(list) && list[a.exSelected].IsCustom {
			ex := list[a.exSelected]
			a.confirmDeleteEx = &ex
		}

	case "/":
		a.exFilterMode = true
		a.exFilterInput.Reset()
		a.exFilterInput.Focus()
		a.exFiltered = nil
	}

	return a, nil
}

func (a AppView) deleteExerciseCmd(ex model.Exercise) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		if err := store.DeleteExercise(ex.ID); err != nil {
			return exercisesLoadedMsg{err: err}
		}
		exercises, err := store.ListExercises()
		return exercisesLoadedMsg{exercises: exercises, err: err}
	}
}

func filterExercises(exercises []model.Exercise, pattern string) []model.Exercise {
	if pattern == "" {
		return exercises
	}
	// Match against name and muscle groups so "quads" finds squats
	haystack := make([]string, len(exercises))
	for i, ex := range exercises {
		haystack[i] = ex.Name + " " + ex.MuscleGroups
	}
	matches := fuzzy.Find(pattern, haystack)
	filtered := make([]model.Exercise, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, exercises[m.Index])
	}
	return filtered
}

func (a AppView) renderLibrary() string {
	if a.exFormActive {
		return a.renderExerciseForm()
	}

	modalWidth := a.width - 10
	if modalWidth > 90 {
		modalWidth = 90
	}
	modalHeight := a.height - 6

	if a.confirmDeleteEx != nil {
		warningText := lipgloss.NewStyle().Foreground(dangerColor).Render("This action cannot be undone.")
		return RenderConfirmationModal(ConfirmationState{
			Active:  true,
			Title:   "⚠ Delete Exercise",
			Message: fmt.Sprintf("Are you sure you want to delete:\n\n\"%s\"\n\n%s", a.confirmDeleteEx.Name, warningText),
		}, a.width, a.height)
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Exercise Library")

	var header string
	if a.exFilterMode {
		header = a.exFilterInput.View()
	} else {
		custom := 0
		for _, ex := range a.exList {
			if ex.IsCustom {
				custom++
			}
		}
		header = fmt.Sprintf("%d exercises (%d custom)", len(a.exList), custom)
	}

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	list := a.currentExercises()

	// Reserve 6 rows for the detail pane of the selected exercise
	maxLines := modalHeight - 14
	if maxLines < 1 {
		maxLines = 1
	}

	var lines []string
	if len(list) == 0 {
		emptyMsg := "No exercises in the library."
		if a.exFilterMode {
			emptyMsg = "No matches found"
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		start, end := scrollWindow(len(list), a.exSelected, maxLines)
		for i := start; i < end; i++ {
			ex := list[i]

			indicator := "  "
			if i == a.exSelected {
				indicator = "▶ "
			}

			name := ex.Name
			nameStyled := name
			if i == a.exSelected {
				nameStyled = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(name)
			}

			tag := ex.ExerciseType
			if ex.IsCustom {
				tag += " · custom"
			}

			spacing := modalWidth - 4 - len(indicator) - len(name) - len(tag)
			if spacing < 2 {
				spacing = 2
			}

			lines = append(lines, fmt.Sprintf("%s%s%s%s",
				indicator, nameStyled, strings.Repeat(" ", spacing), DimStyle.Render(tag)))
		}
	}

	listSection := strings.Join(lines, "\n")

	detailSection := lipgloss.NewStyle().
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(a.renderExerciseDetail(list, modalWidth))

	footer := FormatFooter("j/k", "Navigate", "a", "Add", "e", "Edit custom", "d", "Delete custom", "/", "Filter", "Esc", "Close")
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, headerSection, listSection, detailSection, footerSection}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a AppView) renderExerciseDetail(list []model.Exercise, width int) string {
	if a.exSelected >= len(list) {
		return ""
	}
	ex := list[a.exSelected]

	label := lipgloss.NewStyle().Foreground(accentColor)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Muscles:"), ex.MuscleGroups))
	b.WriteString(fmt.Sprintf("%s %s    %s %s\n",
		label.Render("Equipment:"), ex.Equipment,
		label.Render("Difficulty:"), ex.Difficulty))
	if ex.Instructions != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render("How:"), truncate(ex.Instructions, width-8)))
	}
	if ex.Notes != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", label.Render("Notes:"), truncate(ex.Notes, width-10)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if max < 4 {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainai/anthropic"
	"trainai/config"
	"trainai/model"
)

type settingKind int

const (
	settingAPIKey settingKind = iota
	settingModel
	settingUnits
	settingReadOnly
)

type settingField struct {
	label string
	value string
	kind  settingKind
}

func (a *AppView) openSettings() {
	a.settingsFields = []settingField{
		{label: "Anthropic API key", value: a.creds.APIKey(), kind: settingAPIKey},
		{label: "Model", value: a.client.Model(), kind: settingModel},
		{label: "Units", value: a.cfg.Units, kind: settingUnits},
		{label: "Data directory", value: a.cfg.DataDirectory, kind: settingReadOnly},
		{label: "Key storage", value: string(a.cfg.SecurityMethod), kind: settingReadOnly},
	}
	a.settingsSelected = 0
	a.settingsEditMode = false
	a.settingsStatus = ""
	a.activeOverlay = overlaySettings
}

func (a AppView) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.settingsEditMode {
		switch msg.String() {
		case "enter":
			a.settingsFields[a.settingsSelected].value = strings.TrimSpace(a.settingsEdit.Value())
			a.settingsEditMode = false
			a.settingsStatus = ""
		case "esc":
			a.settingsEditMode = false
		default:
			var cmd tea.Cmd
			a.settingsEdit, cmd = a.settingsEdit.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	switch msg.String() {
	case "esc", "ctrl+o":
		a.activeOverlay = overlayNone

	case "up", "k":
		if a.settingsSelected > 0 {
			a.settingsSelected--
		}

	case "down", "j":
		if a.settingsSelected < len(a.settingsFields)-1 {
			a.settingsSelected++
		}

	case "enter":
		field := &a.settingsFields[a.settingsSelected]
		switch field.kind {
		case settingAPIKey:
			ti := textinput.New()
			ti.Placeholder = "sk-ant-..."
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
			ti.CharLimit = 200
			ti.Width = 40
			ti.Focus()
			a.settingsEdit = ti
			a.settingsEditMode = true
		case settingModel:
			field.value = nextModel(field.value)
		case settingUnits:
			if field.value == model.UnitsMetric {
				field.value = model.UnitsImperial
			} else {
				field.value = model.UnitsMetric
			}
		}

	case "ctrl+s":
		if err := a.saveSettings(); err != nil {
			a.settingsStatus = ErrorStyle.Render(err.Error())
		} else {
			a.settingsStatus = SelectedStyle.Render("Settings saved")
		}
	}

	return a, nil
}

// saveSettings applies the edited fields to the running session and persists
// them: the key to the credential store, the rest to the user config file.
func (a *AppView) saveSettings() error {
	var apiKey, modelID, units string
	for _, field := range a.settingsFields {
		switch field.kind {
		case settingAPIKey:
			apiKey = field.value
		case settingModel:
			modelID = field.value
		case settingUnits:
			units = field.value
		}
	}

	if apiKey == "" {
		a.creds.DeleteAPIKey()
	} else {
		a.creds.SetAPIKey(apiKey)
	}
	if err := a.creds.Save(a.cfg.DataDir()); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	a.cfg.DefaultModel = modelID
	a.cfg.Units = units
	userCfg := &config.UserConfig{
		Anthropic: config.AnthropicConfig{
			BaseURL:      a.cfg.BaseURL,
			DefaultModel: modelID,
		},
		Units: units,
		Security: config.SecurityConfig{
			Method:     string(a.cfg.SecurityMethod),
			SSHKeyPath: a.cfg.SSHKeyPath,
		},
	}
	if err := config.SaveUserConfig(userCfg, a.cfg.DataDir()); err != nil {
		return err
	}

	a.client.SetModel(modelID)
	a.session.SetUnits(units)
	return nil
}

func nextModel(current string) string {
	for i, m := range anthropic.KnownModels {
		if m == current {
			return anthropic.KnownModels[(i+1)%len(anthropic.KnownModels)]
		}
	}
	return anthropic.KnownModels[0]
}

func (a AppView) renderSettings() string {
	modalWidth := a.width - 10
	if modalWidth > 76 {
		modalWidth = 76
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Settings")

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Enter edits or toggles a field; ctrl+s applies")

	var lines []string
	for i, field := range a.settingsFields {
		indicator := "  "
		if i == a.settingsSelected {
			indicator = "▶ "
		}

		label := fmt.Sprintf("%-20s", field.label)
		if i == a.settingsSelected {
			label = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(label)
		}

		value := field.value
		switch {
		case a.settingsEditMode && i == a.settingsSelected:
			value = a.settingsEdit.View()
		case field.kind == settingAPIKey:
			value = maskKey(field.value)
		case field.kind == settingReadOnly:
			value = DimStyle.Render(value)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", indicator, label, value))
	}

	listSection := strings.Join(lines, "\n")

	var footer string
	if a.settingsEditMode {
		footer = FormatFooter("Enter", "Apply", "Esc", "Cancel")
	} else {
		footer = FormatFooter("j/k", "Navigate", "Enter", "Edit/Toggle", "ctrl+s", "Save", "Esc", "Close")
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
	if a.settingsStatus != "" {
		sections = append(sections, lipgloss.NewStyle().Align(lipgloss.Center).Width(modalWidth).Render(a.settingsStatus))
	}
	sections = append(sections, footerSection)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func maskKey(key string) string {
	if key == "" {
		return DimStyle.Render("not set")
	}
	if len(key) <= 12 {
		return strings.Repeat("•", len(key))
	}
	return key[:7] + strings.Repeat("•", 8) + key[len(key)-4:]
}

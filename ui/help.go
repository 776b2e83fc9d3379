package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("TrainAI - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		"• ctrl+n        New chat",
		"• ctrl+s        Conversations",
		"• ctrl+e        Exercise library",
		"• ctrl+u        Your profile",
		"• ctrl+o        Settings",
		"• ctrl+g        Toggle this help",
		"• ctrl+c        Quit",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat"),
		"• Enter         Send message",
		"• ctrl+y        Copy last reply",
		"• PgUp/PgDn     Scroll transcript",
		"• Home/End      Jump to top/bottom",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Ask the coach to add exercises - it manages the library for you",
		"• Fill in your profile so plans match your goals and gear",
		"• j/k and / work in every list",
	)

	column1 := lipgloss.JoinVertical(lipgloss.Left, globalActions)
	column2 := lipgloss.JoinVertical(lipgloss.Left, chatActions)

	columnStyle := lipgloss.NewStyle().Width(38).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("Press ctrl+g or Esc to close this help")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		tips,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(86)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}

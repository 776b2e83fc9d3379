package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"trainai/storage"
)

func (a AppView) updateConversationManager(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Delete confirmation takes priority
	if a.confirmDeleteConv != nil {
		switch msg.String() {
		case "y", "Y":
			conv := *a.confirmDeleteConv
			a.confirmDeleteConv = nil
			return a, a.deleteConversationCmd(conv)
		case "n", "N", "esc":
			a.confirmDeleteConv = nil
		}
		return a, nil
	}

	if a.convFilterMode {
		switch msg.String() {
		case "esc":
			a.convFilterMode = false
			a.convFilterInput.Reset()
			a.convSelected = 0
			return a, nil
		case "enter", "up", "down":
			// Fall through to list navigation below
		default:
			var cmd tea.Cmd
			a.convFilterInput, cmd = a.convFilterInput.Update(msg)
			a.convFiltered = filterConversations(a.convList, a.convFilterInput.Value())
			a.convSelected = 0
			return a, cmd
		}
	}

	list := a.currentConversations()

	switch msg.String() {
	case "esc", "ctrl+s":
		a.activeOverlay = overlayNone
		return a, nil

	case "up", "k":
		if a.convSelected > 0 {
			a.convSelected--
		}

	case "down", "j":
		if a.convSelected < len(list)-1 {
			a.convSelected++
		}

	case "enter":
		if a.convSelected < len(list) {
			if err := a.session.LoadConversation(list[a.convSelected]); err == nil {
				a.snap = a.session.Snapshot()
				a.activeOverlay = overlayNone
				a.updateViewportContent(true)
			}
		}

	case "n":
		a.session.StartNewChat()
		a.activeOverlay = overlayNone

	case "d":
		if a.convSelected < len(list) {
			conv := list[a.convSelected]
			a.confirmDeleteConv = &conv
		}

	case "/":
		a.convFilterMode = true
		a.convFilterInput.Reset()
		a.convFilterInput.Focus()
		a.convFiltered = nil
	}

	return a, nil
}

func (a AppView) deleteConversationCmd(conv storage.Conversation) tea.Cmd {
	store := a.store
	session := a.session
	currentID := a.snap.ConversationID
	return func() tea.Msg {
		if err := store.DeleteConversation(conv.ID); err != nil {
			return conversationsLoadedMsg{err: err}
		}
		if conv.ID == currentID {
			session.StartNewChat()
		}
		convs, err := store.ListConversations()
		return conversationsLoadedMsg{conversations: convs, err: err}
	}
}

func filterConversations(convs []storage.Conversation, pattern string) []storage.Conversation {
	if pattern == "" {
		return convs
	}
	titles := make([]string, len(convs))
	for i, c := range convs {
		titles[i] = c.Title
	}
	matches := fuzzy.Find(pattern, titles)
	filtered := make([]storage.Conversation, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, convs[m.Index])
	}
	return filtered
}

func (a AppView) renderConversationManager() string {
	modalWidth := a.width - 10
	if modalWidth > 90 {
		modalWidth = 90
	}
	modalHeight := a.height - 6

	if a.confirmDeleteConv != nil {
		warningText := lipgloss.NewStyle().Foreground(dangerColor).Render("This action cannot be undone.")
		return RenderConfirmationModal(ConfirmationState{
			Active:  true,
			Title:   "⚠ Delete Conversation",
			Message: fmt.Sprintf("Are you sure you want to delete:\n\n\"%s\"\n\n%s", a.confirmDeleteConv.Title, warningText),
		}, a.width, a.height)
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Conversations")

	var header string
	if a.convFilterMode {
		header = a.convFilterInput.View()
	} else {
		header = fmt.Sprintf("%d conversations", len(a.convList))
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

	list := a.currentConversations()
	maxLines := modalHeight - 8
	if maxLines < 1 {
		maxLines = 1
	}

	var lines []string
	if len(list) == 0 {
		emptyMsg := "No conversations yet. Start chatting to create one!"
		if a.convFilterMode {
			emptyMsg = "No matches found"
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))
	} else {
		start, end := scrollWindow(len(list), a.convSelected, maxLines)
		for i := start; i < end; i++ {
			conv := list[i]

			indicator := "  "
			if i == a.convSelected {
				indicator = "▶ "
			}

			title := truncate(conv.Title, modalWidth-24)

			titleStyled := title
			if i == a.convSelected {
				titleStyled = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(title)
			} else if conv.ID == a.snap.ConversationID {
				titleStyled = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(title)
			}

			timeAgo := formatTimeAgo(conv.UpdatedAt)
			spacing := modalWidth - 4 - len(indicator) - len(title) - len(timeAgo)
			if spacing < 2 {
				spacing = 2
			}

			lines = append(lines, fmt.Sprintf("%s%s%s%s",
				indicator, titleStyled, strings.Repeat(" ", spacing), DimStyle.Render(timeAgo)))
		}
	}

	listSection := strings.Join(lines, "\n")

	footer := FormatFooter("j/k", "Navigate", "Enter", "Open", "n", "New", "d", "Delete", "/", "Filter", "Esc", "Close")
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, headerSection, listSection, footerSection}, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// scrollWindow keeps the selected row visible inside a maxLines viewport.
func scrollWindow(total, selected, maxLines int) (start, end int) {
	if total <= maxLines {
		return 0, total
	}
	switch {
	case selected < maxLines/2:
		return 0, maxLines
	case selected >= total-maxLines/2:
		return total - maxLines, total
	default:
		start = selected - maxLines/2
		return start, start + maxLines
	}
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

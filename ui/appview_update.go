package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		if a.snap.Loading {
			a.updateViewportContent(true)
		}
		return a, cmd

	case sessionUpdateMsg:
		a.snap = a.session.Snapshot()
		a.updateViewportContent(true)
		return a, waitForSession(a.session)

	case conversationsLoadedMsg:
		if msg.err == nil {
			a.convList = msg.conversations
			if a.convSelected >= len(a.convList) {
				a.convSelected = 0
			}
		}
		return a, nil

	case exercisesLoadedMsg:
		if msg.err == nil {
			a.exList = msg.exercises
			if a.exSelected >= len(a.exList) {
				a.exSelected = 0
			}
		}
		return a, nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			a.flash = "Copy failed"
		} else {
			a.flash = "Copied!"
		}
		return a, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return flashClearMsg{} })

	case flashClearMsg:
		a.flash = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture all keys while open
	switch a.activeOverlay {
	case overlayHelp:
		switch msg.String() {
		case "esc", "ctrl+g", "q":
			a.activeOverlay = overlayNone
		}
		return a, nil
	case overlayConversations:
		return a.updateConversationManager(msg)
	case overlayLibrary:
		return a.updateLibrary(msg)
	case overlayProfile:
		return a.updateProfileForm(msg)
	case overlaySettings:
		return a.updateSettings(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "ctrl+g":
		a.activeOverlay = overlayHelp
		return a, nil

	case "ctrl+n":
		a.session.StartNewChat()
		return a, nil

	case "ctrl+s":
		a.activeOverlay = overlayConversations
		a.convSelected = 0
		a.convFilterMode = false
		a.convFilterInput.Reset()
		a.confirmDeleteConv = nil
		return a, a.loadConversationsCmd()

	case "ctrl+e":
		a.activeOverlay = overlayLibrary
		a.exSelected = 0
		a.exFilterMode = false
		a.exFilterInput.Reset()
		a.confirmDeleteEx = nil
		return a, a.loadExercisesCmd()

	case "ctrl+u":
		a.openProfileForm()
		return a, nil

	case "ctrl+o":
		a.openSettings()
		return a, nil

	case "ctrl+y":
		if reply := a.lastCoachReply(); reply != "" {
			return a, copyToClipboard(reply)
		}
		return a, nil

	case "enter":
		a.sendMessage()
		return a, nil

	case "pgup", "pgdown", "home", "end", "ctrl+up", "ctrl+down":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// sendMessage submits the textarea content as a user turn. Empty input and
// in-flight turns are no-ops.
func (a *AppView) sendMessage() {
	text := strings.TrimSpace(a.textarea.Value())
	if text == "" || a.snap.Loading {
		return
	}
	a.textarea.Reset()
	a.session.Send(text)
}

func (a AppView) loadConversationsCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		convs, err := store.ListConversations()
		return conversationsLoadedMsg{conversations: convs, err: err}
	}
}

func (a AppView) loadExercisesCmd() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		exercises, err := store.ListExercises()
		return exercisesLoadedMsg{exercises: exercises, err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}

// Package ui is the terminal front-end: one chat screen plus overlay
// modals for conversations, the exercise library, the profile form,
// settings and help.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trainai/anthropic"
	"trainai/chat"
	"trainai/config"
	"trainai/model"
	"trainai/storage"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayConversations
	overlayLibrary
	overlayProfile
	overlaySettings
)

type AppView struct {
	cfg     *config.Config
	creds   *config.CredentialStore
	client  *anthropic.Client
	session *chat.Service
	store   *storage.Store
	version string

	// UI components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// Last observed session state plus a per-message markdown cache.
	// The cache is keyed by message ID and dropped on resize.
	snap          chat.Snapshot
	rendered      map[string]string
	renderedWidth int

	activeOverlay overlay

	// Conversation manager
	convList          []storage.Conversation
	convFiltered      []storage.Conversation
	convSelected      int
	convFilterMode    bool
	convFilterInput   textinput.Model
	confirmDeleteConv *storage.Conversation

	// Exercise library
	exList          []model.Exercise
	exFiltered      []model.Exercise
	exSelected      int
	exFilterMode    bool
	exFilterInput   textinput.Model
	confirmDeleteEx *model.Exercise

	// Exercise add/edit form (over the library overlay)
	exFormActive   bool
	exFormFields   []exerciseField
	exFormSelected int
	exFormEditMode bool
	exFormEdit     textinput.Model
	exFormStatus   string
	exFormEditing  *model.Exercise // nil while creating

	// Profile form
	profileFields   []profileField
	profileSelected int
	profileEditMode bool
	profileEdit     textinput.Model
	profileStatus   string

	// Settings
	settingsFields   []settingField
	settingsSelected int
	settingsEditMode bool
	settingsEdit     textinput.Model
	settingsStatus   string

	// Transient status bar note (e.g. "Copied!")
	flash string
}

func NewAppView(cfg *config.Config, creds *config.CredentialStore, client *anthropic.Client, session *chat.Service, store *storage.Store, version string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask your coach anything..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	filter := textinput.New()
	filter.Placeholder = "Type to filter..."
	filter.CharLimit = 100

	return AppView{
		cfg:             cfg,
		creds:           creds,
		client:          client,
		session:         session,
		store:           store,
		version:         version,
		textarea:        ta,
		loadingSpinner:  sp,
		rendered:        make(map[string]string),
		convFilterInput: filter,
		exFilterInput:   filter,
		snap:            session.Snapshot(),
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.loadingSpinner.Tick, waitForSession(a.session))
}

// waitForSession blocks until the chat session signals a change, then wakes
// the event loop. Re-issued after every sessionUpdateMsg.
func waitForSession(s *chat.Service) tea.Cmd {
	return func() tea.Msg {
		<-s.Updates()
		return sessionUpdateMsg{}
	}
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}

	switch a.activeOverlay {
	case overlayHelp:
		return a.renderHelpModal(a.width, a.height)
	case overlayConversations:
		return a.renderConversationManager()
	case overlayLibrary:
		return a.renderLibrary()
	case overlayProfile:
		return a.renderProfileForm()
	case overlaySettings:
		return a.renderSettings()
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		a.renderTitleBar(),
		a.viewport.View(),
		a.textarea.View(),
		a.renderStatusBar(),
	)
}

func (a AppView) renderTitleBar() string {
	title := TitleStyle.Render("TrainAI Coach")
	conv := a.conversationLabel()
	line := title + DimStyle.Render("  ·  "+conv)

	pad := a.width - lipgloss.Width(line) - lipgloss.Width(a.version) - 1
	if pad < 1 {
		pad = 1
	}
	return line + strings.Repeat(" ", pad) + DimStyle.Render(a.version)
}

func (a AppView) conversationLabel() string {
	if a.snap.ConversationID == "" {
		return "New Chat"
	}
	for _, c := range a.convList {
		if c.ID == a.snap.ConversationID {
			return c.Title
		}
	}
	return "Chat"
}

func (a AppView) renderStatusBar() string {
	var left string
	switch {
	case a.snap.Error != "":
		left = ErrorStyle.Render(a.snap.Error)
	case a.snap.State == chat.StateExecutingTool:
		left = a.loadingSpinner.View() + StatusStyle.Render(" Updating exercise library...")
	case a.snap.Loading:
		left = a.loadingSpinner.View() + StatusStyle.Render(" Thinking...")
	case a.flash != "":
		left = SelectedStyle.Render(a.flash)
	default:
		left = StatusStyle.Render(fmt.Sprintf("%s · %s units", a.client.Model(), a.cfg.Units))
	}

	right := StatusStyle.Render("ctrl+g help")
	pad := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// lastCoachReply returns the content of the most recent non-empty assistant
// message, or "" when there is none.
func (a AppView) lastCoachReply() string {
	for i := len(a.snap.Messages) - 1; i >= 0; i-- {
		m := a.snap.Messages[i]
		if m.Role == model.RoleAssistant && m.Content != "" {
			return m.Content
		}
	}
	return ""
}

func (a *AppView) resize(width, height int) {
	a.width = width
	a.height = height

	// 1 title + 3 textarea + 1 status + 2 spacing
	chatHeight := height - 7
	if chatHeight < 1 {
		chatHeight = 1
	}

	if !a.ready {
		a.viewport = viewport.New(width, chatHeight)
		a.ready = true
	} else {
		a.viewport.Width = width
		a.viewport.Height = chatHeight
	}
	a.textarea.SetWidth(width)

	// Cached renders are width-dependent
	if a.renderedWidth != width {
		a.rendered = make(map[string]string)
		a.renderedWidth = width
	}
	a.updateViewportContent(true)
}

func (a AppView) currentConversations() []storage.Conversation {
	if a.convFilterMode && a.convFilterInput.Value() != "" {
		return a.convFiltered
	}
	return a.convList
}

func (a AppView) currentExercises() []model.Exercise {
	if a.exFilterMode && a.exFilterInput.Value() != "" {
		return a.exFiltered
	}
	return a.exList
}

// Package chat drives a streaming conversation with the coaching model:
// send → stream → optional tool round-trip → stream resumption → persist.
package chat

import (
	"context"
	"errors"
	"sync"

	"trainai/anthropic"
	"trainai/config"
	"trainai/model"
	"trainai/prompt"
	"trainai/storage"
)

// State is the session's position in the turn lifecycle. Every turn starts
// and ends at StateIdle, whether it succeeds or fails.
type State int

const (
	StateIdle State = iota
	StateAwaitingFirstStream
	StateExecutingTool
	StateAwaitingResumedStream
)

// ErrorKind classifies session errors so callers can distinguish a missing
// key from a dropped connection without parsing the message text.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrMissingCredential
	ErrRequestEncoding
	ErrHTTP
	ErrConnectivity
	ErrPostToolConnectivity
)

// Streamer issues one streaming model turn. *anthropic.Client implements it;
// tests substitute their own.
type Streamer interface {
	Stream(ctx context.Context, apiKey string, req anthropic.Request, emit func(anthropic.Event) error) error
}

// ToolRunner executes a tool call, returning the result text relayed back to
// the model.
type ToolRunner interface {
	Execute(toolName, argumentsJSON string) string
}

// Service owns the in-memory transcript of one conversation and orchestrates
// the network round-trips. All state mutations happen under one mutex and
// every mutation from a stream goroutine is epoch-checked, so a session that
// was reset mid-stream never sees stale partial results.
type Service struct {
	client  Streamer
	tools   ToolRunner
	store   *storage.Store
	apiKey  func() string
	catalog []anthropic.Tool

	mu           sync.Mutex
	messages     []model.Message
	loading      bool
	errMsg       string
	errKind      ErrorKind
	state        State
	current      *storage.Conversation
	systemPrompt string
	units        string
	epoch        uint64
	cancel       context.CancelFunc

	updates chan struct{}
}

// NewService wires the orchestrator. apiKey is consulted at every send so
// key changes take effect without restarting the session. catalog is the
// static tool list advertised on every request.
func NewService(client Streamer, tools ToolRunner, store *storage.Store, apiKey func() string, catalog []anthropic.Tool) *Service {
	return &Service{
		client:  client,
		tools:   tools,
		store:   store,
		apiKey:  apiKey,
		catalog: catalog,
		units:   model.UnitsMetric,
		updates: make(chan struct{}, 1),
	}
}

// Updates delivers a (coalesced) signal whenever session state changes.
// Consumers read the new state via Snapshot.
func (s *Service) Updates() <-chan struct{} {
	return s.updates
}

// Snapshot is a consistent copy of the observable session state.
type Snapshot struct {
	Messages       []model.Message
	Loading        bool
	Error          string
	ErrorKind      ErrorKind
	State          State
	ConversationID string
	SystemPrompt   string
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Messages:     append([]model.Message(nil), s.messages...),
		Loading:      s.loading,
		Error:        s.errMsg,
		ErrorKind:    s.errKind,
		State:        s.state,
		SystemPrompt: s.systemPrompt,
	}
	if s.current != nil {
		snap.ConversationID = s.current.ID
	}
	return snap
}

// SetUnits changes the unit system used when the system prompt is rebuilt.
func (s *Service) SetUnits(units string) {
	s.mu.Lock()
	s.units = units
	s.mu.Unlock()
}

// Send submits one user turn. With no usable API key it records the error
// and touches nothing else. Otherwise it appends the user message and an
// empty assistant placeholder, saves a snapshot, and streams the reply in
// the background. Calling Send while a turn is in flight is a caller bug
// (watch Loading); it is dropped here rather than racing.
func (s *Service) Send(userText string) {
	s.mu.Lock()

	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}

	key := s.apiKey()
	if key == "" {
		s.errMsg = "No API key found. Add your Anthropic key in Settings."
		s.errKind = ErrMissingCredential
		s.mu.Unlock()
		s.notify()
		return
	}

	s.errMsg = ""
	s.errKind = ErrNone
	s.rebuildSystemPromptLocked()

	s.messages = append(s.messages, model.NewMessage(model.RoleUser, userText))

	// Request payload is the transcript up to here; the placeholder below is
	// a UI streaming target only and never goes on the wire.
	req := anthropic.Request{
		Messages: toParams(s.messages),
		System:   s.systemPrompt,
		Tools:    s.catalog,
	}

	s.messages = append(s.messages, model.NewMessage(model.RoleAssistant, ""))
	s.loading = true
	s.state = StateAwaitingFirstStream
	s.epoch++
	epoch := s.epoch

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.saveLocked()
	s.mu.Unlock()
	s.notify()

	go s.runTurn(ctx, epoch, key, req)
}

// runTurn drives the first stream and, when the model stops for a tool, the
// execution and resumed stream.
func (s *Service) runTurn(ctx context.Context, epoch uint64, key string, req anthropic.Request) {
	var pending *anthropic.ToolCallReady

	err := s.client.Stream(ctx, key, req, func(ev anthropic.Event) error {
		switch ev := ev.(type) {
		case anthropic.TextDelta:
			s.applyDelta(epoch, ev.Text)
		case anthropic.ToolCallReady:
			if pending == nil {
				call := ev
				pending = &call
			}
		}
		return nil
	})

	if err != nil {
		s.failTurn(epoch, err, false)
		return
	}

	if pending == nil {
		s.finishTurn(epoch)
		return
	}

	// Tool round-trip: execute, then resume the conversation with a
	// synthetic assistant turn (pre-tool text + the tool_use block) and a
	// synthetic user turn carrying the result.
	s.setState(epoch, StateExecutingTool)
	result := s.tools.Execute(pending.Name, pending.Arguments)
	if config.DebugLog != nil {
		config.DebugLog.Printf("[chat] tool %s -> %s", pending.Name, result)
	}

	resumed, ok := s.resumptionRequest(epoch, req, *pending, result)
	if !ok {
		return
	}
	s.setState(epoch, StateAwaitingResumedStream)

	err = s.client.Stream(ctx, key, resumed, func(ev anthropic.Event) error {
		// A second tool call on the resumed stream is outside the contract
		// (one tool call per turn); only text is applied.
		if delta, isText := ev.(anthropic.TextDelta); isText {
			s.applyDelta(epoch, delta.Text)
		}
		return nil
	})
	if err != nil {
		s.failTurn(epoch, err, true)
		return
	}

	s.finishTurn(epoch)
}

// resumptionRequest folds the tool exchange into a follow-up request.
func (s *Service) resumptionRequest(epoch uint64, prior anthropic.Request, call anthropic.ToolCallReady, result string) (anthropic.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return anthropic.Request{}, false
	}

	assistantBlocks := []anthropic.ContentBlock{}
	if call.Text != "" {
		assistantBlocks = append(assistantBlocks, anthropic.NewTextBlock(call.Text))
	}
	assistantBlocks = append(assistantBlocks, anthropic.NewToolUseBlock(call.ID, call.Name, call.Arguments))

	messages := append([]anthropic.MessageParam(nil), prior.Messages...)
	messages = append(messages,
		anthropic.MessageParam{Role: "assistant", Content: assistantBlocks},
		anthropic.NewUserBlocks(anthropic.NewToolResultBlock(call.ID, result)),
	)

	return anthropic.Request{
		Messages: messages,
		System:   prior.System,
		Tools:    prior.Tools,
	}, true
}

// applyDelta appends streamed text to the open assistant message, in arrival
// order. The open message is always the last one (the placeholder).
func (s *Service) applyDelta(epoch uint64, text string) {
	s.mu.Lock()
	if epoch != s.epoch || len(s.messages) == 0 {
		s.mu.Unlock()
		return
	}
	s.messages[len(s.messages)-1].Content += text
	s.mu.Unlock()
	s.notify()
}

func (s *Service) setState(epoch uint64, state State) {
	s.mu.Lock()
	if epoch == s.epoch {
		s.state = state
	}
	s.mu.Unlock()
	s.notify()
}

// finishTurn closes out a successful turn: stop loading, save, back to idle.
func (s *Service) finishTurn(epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.loading = false
	s.state = StateIdle
	s.cancel = nil
	s.saveLocked()
	s.mu.Unlock()
	s.notify()
}

// failTurn records the error taxonomy for a failed round-trip. A non-200
// response discards the placeholder so no empty bubble lingers; transport
// failures keep whatever text already streamed.
func (s *Service) failTurn(epoch uint64, err error, postTool bool) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}

	var apiErr *anthropic.APIError
	var encErr *anthropic.EncodingError
	switch {
	case errors.As(err, &apiErr):
		s.discardPlaceholderLocked()
		s.saveLocked()
		s.errMsg = apiErr.Error()
		s.errKind = ErrHTTP
	case errors.As(err, &encErr):
		s.discardPlaceholderLocked()
		s.saveLocked()
		s.errMsg = "Failed to prepare message. Please try again."
		s.errKind = ErrRequestEncoding
	case postTool:
		s.errMsg = "Connection error while finishing the reply. Check your internet and try again."
		s.errKind = ErrPostToolConnectivity
	default:
		s.errMsg = "Connection error. Check your internet and try again."
		s.errKind = ErrConnectivity
	}

	s.loading = false
	s.state = StateIdle
	s.cancel = nil
	s.mu.Unlock()
	s.notify()
}

// discardPlaceholderLocked removes the trailing assistant placeholder if it
// is still empty.
func (s *Service) discardPlaceholderLocked() {
	n := len(s.messages)
	if n > 0 && s.messages[n-1].Role == model.RoleAssistant && s.messages[n-1].Content == "" {
		s.messages = s.messages[:n-1]
	}
}

// LoadConversation replaces the in-memory transcript with a persisted one.
// Only valid while idle.
func (s *Service) LoadConversation(conv storage.Conversation) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return errors.New("cannot load a conversation while a turn is in flight")
	}

	messages, err := s.store.ConversationMessages(conv.ID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	c := conv
	s.current = &c
	s.messages = messages
	s.errMsg = ""
	s.errKind = ErrNone
	s.mu.Unlock()
	s.notify()
	return nil
}

// StartNewChat clears the transcript and detaches from the persisted
// conversation. Only valid while idle.
func (s *Service) StartNewChat() {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.messages = nil
	s.errMsg = ""
	s.errKind = ErrNone
	s.mu.Unlock()
	s.notify()
}

// Shutdown abandons any in-flight stream. Later results from it are dropped
// by the epoch check.
func (s *Service) Shutdown() {
	s.mu.Lock()
	s.epoch++
	cancel := s.cancel
	s.cancel = nil
	s.loading = false
	s.state = StateIdle
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// saveLocked persists the conversation snapshot, creating the record on the
// first save. Persistence failures are logged, not surfaced: the transcript
// in memory is the source of truth for the ongoing turn.
func (s *Service) saveLocked() {
	if s.store == nil {
		return
	}
	if s.current == nil {
		conv, err := s.store.CreateConversation()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[chat] create conversation failed: %v", err)
			}
			return
		}
		s.current = conv
	}
	if err := s.store.ReplaceMessages(s.current, s.messages); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[chat] save conversation failed: %v", err)
		}
	}
}

// rebuildSystemPromptLocked reassembles the system prompt from the stored
// profile and exercise library so every turn sees their latest state.
func (s *Service) rebuildSystemPromptLocked() {
	if s.store == nil {
		s.systemPrompt = prompt.Build(nil, s.units, nil)
		return
	}
	profile, err := s.store.LoadProfile()
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[chat] load profile failed: %v", err)
	}
	exercises, err := s.store.ListExercises()
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[chat] list exercises failed: %v", err)
	}
	s.systemPrompt = prompt.Build(profile, s.units, exercises)
}

// notify coalesces change signals: a pending tick already covers this change.
func (s *Service) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func toParams(messages []model.Message) []anthropic.MessageParam {
	params := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		params = append(params, anthropic.MessageParam{Role: m.Role, Content: m.Content})
	}
	return params
}

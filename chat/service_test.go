package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"trainai/anthropic"
	"trainai/model"
	"trainai/storage"
)

// stubStreamer plays a scripted response per Stream call and records every
// request it sees.
type stubStreamer struct {
	mu       sync.Mutex
	requests []anthropic.Request
	scripts  []func(emit func(anthropic.Event) error) error
}

func (s *stubStreamer) Stream(_ context.Context, _ string, req anthropic.Request, emit func(anthropic.Event) error) error {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	idx := len(s.requests) - 1
	s.mu.Unlock()

	if idx < len(s.scripts) {
		return s.scripts[idx](emit)
	}
	return nil
}

func (s *stubStreamer) recorded() []anthropic.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]anthropic.Request(nil), s.requests...)
}

type stubToolRunner struct {
	mu     sync.Mutex
	names  []string
	args   []string
	result string
}

func (r *stubToolRunner) Execute(toolName, argumentsJSON string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, toolName)
	r.args = append(r.args, argumentsJSON)
	return r.result
}

func emitText(parts ...string) func(emit func(anthropic.Event) error) error {
	return func(emit func(anthropic.Event) error) error {
		for _, p := range parts {
			if err := emit(anthropic.TextDelta{Text: p}); err != nil {
				return err
			}
		}
		return nil
	}
}

func waitIdle(t *testing.T, s *Service) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := s.Snapshot()
		if !snap.Loading && snap.State == StateIdle {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("service did not return to idle in time")
	return Snapshot{}
}

func withKey() func() string {
	return func() string { return "sk-test" }
}

func TestSendStreamsTextInOrder(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		emitText("Let's ", "start ", "with squats."),
	}}
	s := NewService(streamer, &stubToolRunner{}, nil, withKey(), nil)

	s.Send("What should I train today?")
	snap := waitIdle(t, s)

	if len(snap.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.Messages))
	}
	if snap.Messages[0].Role != model.RoleUser {
		t.Errorf("first message role = %q", snap.Messages[0].Role)
	}
	got := snap.Messages[1]
	if got.Role != model.RoleAssistant {
		t.Errorf("second message role = %q", got.Role)
	}
	if got.Content != "Let's start with squats." {
		t.Errorf("assistant content = %q", got.Content)
	}
	if snap.Error != "" {
		t.Errorf("unexpected error: %q", snap.Error)
	}
}

func TestSendWithoutAPIKey(t *testing.T) {
	streamer := &stubStreamer{}
	s := NewService(streamer, &stubToolRunner{}, nil, func() string { return "" }, nil)

	s.Send("hello")
	snap := s.Snapshot()

	if snap.ErrorKind != ErrMissingCredential {
		t.Errorf("ErrorKind = %v, want ErrMissingCredential", snap.ErrorKind)
	}
	if snap.Error == "" {
		t.Error("expected an error message")
	}
	if len(snap.Messages) != 0 {
		t.Errorf("no messages should be appended, got %d", len(snap.Messages))
	}
	if len(streamer.recorded()) != 0 {
		t.Error("no request should be issued without a key")
	}
}

func TestToolRoundTrip(t *testing.T) {
	argsJSON := `{"name":"Cossack Squat","muscleGroups":"quads","exerciseType":"strength"}`
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			if err := emit(anthropic.TextDelta{Text: "Adding it. "}); err != nil {
				return err
			}
			return emit(anthropic.ToolCallReady{
				ID:        "toolu_01",
				Name:      "create_exercise",
				Arguments: argsJSON,
				Text:      "Adding it. ",
			})
		},
		emitText("Done! It's in your library."),
	}}
	runner := &stubToolRunner{result: "Exercise 'Cossack Squat' added to the library."}
	s := NewService(streamer, runner, nil, withKey(), nil)

	s.Send("Add cossack squats please")
	snap := waitIdle(t, s)

	if got := snap.Messages[len(snap.Messages)-1].Content; got != "Adding it. Done! It's in your library." {
		t.Errorf("final assistant content = %q", got)
	}

	if len(runner.names) != 1 || runner.names[0] != "create_exercise" {
		t.Fatalf("executor calls = %v", runner.names)
	}
	if runner.args[0] != argsJSON {
		t.Errorf("executor args = %q", runner.args[0])
	}

	requests := streamer.recorded()
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}

	resumed := requests[1]
	n := len(resumed.Messages)
	if n != len(requests[0].Messages)+2 {
		t.Fatalf("resumed request should add 2 messages, got %d vs %d", n, len(requests[0].Messages))
	}

	assistant := resumed.Messages[n-2]
	if assistant.Role != "assistant" {
		t.Errorf("synthetic assistant role = %q", assistant.Role)
	}
	blocks, ok := assistant.Content.([]anthropic.ContentBlock)
	if !ok {
		t.Fatalf("assistant content is %T, want []ContentBlock", assistant.Content)
	}
	if len(blocks) != 2 || blocks[0].Type != "text" || blocks[1].Type != "tool_use" {
		t.Fatalf("assistant blocks = %#v", blocks)
	}
	if blocks[1].ID != "toolu_01" || blocks[1].Name != "create_exercise" {
		t.Errorf("tool_use block = %#v", blocks[1])
	}

	user := resumed.Messages[n-1]
	if user.Role != "user" {
		t.Errorf("tool result role = %q", user.Role)
	}
	resultBlocks, ok := user.Content.([]anthropic.ContentBlock)
	if !ok || len(resultBlocks) != 1 {
		t.Fatalf("tool result content = %#v", user.Content)
	}
	if resultBlocks[0].Type != "tool_result" || resultBlocks[0].ToolUseID != "toolu_01" {
		t.Errorf("tool_result block = %#v", resultBlocks[0])
	}
	if resultBlocks[0].Content != runner.result {
		t.Errorf("tool_result content = %q", resultBlocks[0].Content)
	}
}

func TestToolRoundTripOmitsTextBlockWhenNoPreText(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			return emit(anthropic.ToolCallReady{ID: "t1", Name: "delete_exercise", Arguments: `{"name":"Plank"}`})
		},
		emitText("Removed."),
	}}
	s := NewService(streamer, &stubToolRunner{result: "Exercise 'Plank' deleted from the library."}, nil, withKey(), nil)

	s.Send("delete plank")
	waitIdle(t, s)

	requests := streamer.recorded()
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	assistant := requests[1].Messages[len(requests[1].Messages)-2]
	blocks := assistant.Content.([]anthropic.ContentBlock)
	if len(blocks) != 1 || blocks[0].Type != "tool_use" {
		t.Errorf("expected a lone tool_use block, got %#v", blocks)
	}
}

func TestAPIErrorDiscardsPlaceholder(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			return &anthropic.APIError{Status: 529}
		},
	}}
	s := NewService(streamer, &stubToolRunner{}, nil, withKey(), nil)

	s.Send("hi")
	snap := waitIdle(t, s)

	if snap.ErrorKind != ErrHTTP {
		t.Errorf("ErrorKind = %v, want ErrHTTP", snap.ErrorKind)
	}
	if len(snap.Messages) != 1 {
		t.Fatalf("placeholder should be discarded, got %d messages", len(snap.Messages))
	}
	if snap.Messages[0].Role != model.RoleUser {
		t.Errorf("remaining message role = %q", snap.Messages[0].Role)
	}
}

func TestAPIErrorPersistsPlaceholderRemoval(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			return &anthropic.APIError{Status: 500}
		},
	}}
	s := NewService(streamer, &stubToolRunner{}, store, withKey(), nil)

	s.Send("hi")
	snap := waitIdle(t, s)

	saved, err := store.ConversationMessages(snap.ConversationID)
	if err != nil {
		t.Fatalf("ConversationMessages: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("persisted %d messages, want only the user turn", len(saved))
	}
	if saved[0].Role != model.RoleUser {
		t.Errorf("persisted role = %q, want user", saved[0].Role)
	}
}

func TestConnectivityErrorKeepsPartialText(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			if err := emit(anthropic.TextDelta{Text: "partial"}); err != nil {
				return err
			}
			return errors.New("connection reset")
		},
	}}
	s := NewService(streamer, &stubToolRunner{}, nil, withKey(), nil)

	s.Send("hi")
	snap := waitIdle(t, s)

	if snap.ErrorKind != ErrConnectivity {
		t.Errorf("ErrorKind = %v, want ErrConnectivity", snap.ErrorKind)
	}
	if len(snap.Messages) != 2 {
		t.Fatalf("partial reply should survive, got %d messages", len(snap.Messages))
	}
	if snap.Messages[1].Content != "partial" {
		t.Errorf("partial content = %q", snap.Messages[1].Content)
	}
}

func TestPostToolConnectivityError(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			return emit(anthropic.ToolCallReady{ID: "t1", Name: "create_exercise", Arguments: "{}"})
		},
		func(emit func(anthropic.Event) error) error {
			return errors.New("connection reset")
		},
	}}
	s := NewService(streamer, &stubToolRunner{result: "ok"}, nil, withKey(), nil)

	s.Send("hi")
	snap := waitIdle(t, s)

	if snap.ErrorKind != ErrPostToolConnectivity {
		t.Errorf("ErrorKind = %v, want ErrPostToolConnectivity", snap.ErrorKind)
	}
}

func TestSendWhileBusyIsDropped(t *testing.T) {
	release := make(chan struct{})
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			<-release
			return emitText("ok")(emit)
		},
	}}
	s := NewService(streamer, &stubToolRunner{}, nil, withKey(), nil)

	s.Send("first")
	s.Send("second")
	close(release)
	snap := waitIdle(t, s)

	userCount := 0
	for _, m := range snap.Messages {
		if m.Role == model.RoleUser {
			userCount++
		}
	}
	if userCount != 1 {
		t.Errorf("second Send should be dropped, got %d user messages", userCount)
	}
}

func TestShutdownDiscardsLateResults(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			close(started)
			<-release
			return emit(anthropic.TextDelta{Text: "stale"})
		},
	}}
	s := NewService(streamer, &stubToolRunner{}, nil, withKey(), nil)

	s.Send("hi")
	<-started
	s.Shutdown()
	close(release)

	time.Sleep(50 * time.Millisecond)
	snap := s.Snapshot()
	if got := snap.Messages[len(snap.Messages)-1].Content; got != "" {
		t.Errorf("stale delta applied after shutdown: %q", got)
	}
}

func TestSecondToolCallOnResumedStreamIgnored(t *testing.T) {
	streamer := &stubStreamer{scripts: []func(func(anthropic.Event) error) error{
		func(emit func(anthropic.Event) error) error {
			return emit(anthropic.ToolCallReady{ID: "t1", Name: "create_exercise", Arguments: "{}"})
		},
		func(emit func(anthropic.Event) error) error {
			if err := emit(anthropic.ToolCallReady{ID: "t2", Name: "create_exercise", Arguments: "{}"}); err != nil {
				return err
			}
			return emit(anthropic.TextDelta{Text: "all set"})
		},
	}}
	runner := &stubToolRunner{result: "ok"}
	s := NewService(streamer, runner, nil, withKey(), nil)

	s.Send("hi")
	snap := waitIdle(t, s)

	if len(runner.names) != 1 {
		t.Errorf("executor should run once per turn, ran %d times", len(runner.names))
	}
	if got := snap.Messages[len(snap.Messages)-1].Content; got != "all set" {
		t.Errorf("final content = %q", got)
	}
	if len(streamer.recorded()) != 2 {
		t.Errorf("no third stream should be issued, got %d", len(streamer.recorded()))
	}
}

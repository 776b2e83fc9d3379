package anthropic

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// Event is a typed protocol event decoded from the response stream.
type Event interface {
	streamEvent()
}

// TextDelta is a fragment of assistant text.
type TextDelta struct {
	Text string
}

// ToolCallReady signals that the model stopped to call a tool. Arguments is
// the accumulated raw JSON text, unvalidated until execution. Text is all
// assistant text streamed earlier in the same turn.
type ToolCallReady struct {
	ID        string
	Name      string
	Arguments string
	Text      string
}

func (TextDelta) streamEvent()     {}
func (ToolCallReady) streamEvent() {}

// ssePayload mirrors the subset of the wire event shapes we consume.
type ssePayload struct {
	Type         string `json:"type"`
	ContentBlock struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"content_block"`
	Delta struct {
		Type        string `json:"type"`
		Text        string `json:"text"`
		PartialJSON string `json:"partial_json"`
		StopReason  string `json:"stop_reason"`
	} `json:"delta"`
}

// pendingToolCall accumulates a tool_use block across delta fragments. Its
// argument buffer is not valid JSON until the stream signals the stop reason.
type pendingToolCall struct {
	id   string
	name string
	args strings.Builder
}

// DecodeStream consumes newline-delimited server-sent events from r in a
// single pass, calling emit for each decoded event in arrival order. Lines
// without the data marker, unrecognized event types and malformed payloads
// are skipped so one corrupt line never aborts an otherwise good stream.
// The [DONE] sentinel ends the stream cleanly. An error returned by emit
// stops decoding and is returned as-is.
func DecodeStream(r io.Reader, emit func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending *pendingToolCall
	var turnText strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := strings.TrimPrefix(line, dataPrefix)
		if payload == doneSentinel {
			return nil
		}

		var ev ssePayload
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			continue
		}

		switch ev.Type {
		case "content_block_start":
			if ev.ContentBlock.Type == "tool_use" {
				pending = &pendingToolCall{id: ev.ContentBlock.ID, name: ev.ContentBlock.Name}
			}

		case "content_block_delta":
			switch {
			case ev.Delta.Text != "":
				turnText.WriteString(ev.Delta.Text)
				if err := emit(TextDelta{Text: ev.Delta.Text}); err != nil {
					return err
				}
			case ev.Delta.PartialJSON != "":
				if pending != nil {
					pending.args.WriteString(ev.Delta.PartialJSON)
				}
			}

		case "message_delta":
			if ev.Delta.StopReason == "tool_use" && pending != nil {
				ready := ToolCallReady{
					ID:        pending.id,
					Name:      pending.name,
					Arguments: pending.args.String(),
					Text:      turnText.String(),
				}
				pending = nil
				if err := emit(ready); err != nil {
					return err
				}
			}
		}
	}

	return scanner.Err()
}

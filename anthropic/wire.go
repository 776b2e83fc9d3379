package anthropic

import "encoding/json"

// messagesRequest is the JSON body for POST /v1/messages.
type messagesRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	Stream    bool           `json:"stream"`
	Messages  []MessageParam `json:"messages"`
	System    string         `json:"system,omitempty"`
	Tools     []Tool         `json:"tools,omitempty"`
}

// MessageParam is one entry of the outbound messages array. Content is either
// a plain string or a []ContentBlock (tool round-trips need block arrays).
type MessageParam struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentBlock is a single typed block inside a block-array message.
type ContentBlock struct {
	Type string `json:"type"` // "text" | "tool_use" | "tool_result"

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Tool is a callable tool definition advertised to the model.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// NewUserMessage builds a plain-text user turn.
func NewUserMessage(content string) MessageParam {
	return MessageParam{Role: "user", Content: content}
}

// NewUserBlocks builds a user turn from content blocks.
func NewUserBlocks(blocks ...ContentBlock) MessageParam {
	return MessageParam{Role: "user", Content: blocks}
}

// NewTextBlock builds a text content block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// NewToolUseBlock echoes a tool call back to the API in the resumed request.
// input must be valid JSON; invalid argument text is replaced by an empty
// object so the resumption request stays well-formed.
func NewToolUseBlock(id, name, input string) ContentBlock {
	raw := json.RawMessage(input)
	if !json.Valid(raw) {
		raw = json.RawMessage("{}")
	}
	return ContentBlock{Type: "tool_use", ID: id, Name: name, Input: raw}
}

// NewToolResultBlock carries a tool's result string back to the model.
func NewToolResultBlock(toolUseID, result string) ContentBlock {
	return ContentBlock{Type: "tool_result", ToolUseID: toolUseID, Content: result}
}

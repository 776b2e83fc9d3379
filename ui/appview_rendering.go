package ui

import (
	"fmt"
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"trainai/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

// updateViewportContent rebuilds the transcript view. The last message is
// treated as live while a turn streams: rendered raw with a cursor so
// partial markdown doesn't flicker through the renderer.
func (a *AppView) updateViewportContent(gotoBottom bool) {
	if !a.ready {
		return
	}
	if len(a.snap.Messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("No messages yet. Tell your coach what you're training for!"))
		return
	}

	var content strings.Builder

	for i, msg := range a.snap.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))
		streaming := a.snap.Loading && i == len(a.snap.Messages)-1

		switch msg.Role {
		case model.RoleUser:
			role := UserStyle.Render("You")
			content.WriteString(formatUserMessage(timestamp, role, msg.Content))

		default:
			role := CoachStyle.Render("Coach")
			var body string
			if streaming {
				body = msg.Content + "▋"
				if msg.Content == "" {
					body = a.loadingSpinner.View()
				}
			} else {
				body = a.renderMarkdown(msg)
			}
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, body))
		}
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderMarkdown renders a completed coach message, caching by message ID.
func (a *AppView) renderMarkdown(msg model.Message) string {
	if cached, ok := a.rendered[msg.ID]; ok {
		return cached
	}

	// Strip markdown link syntax [text](url) → url, then render with
	// autolink disabled so terminal emulators handle URL detection
	content := mdLinkRegex.ReplaceAllString(msg.Content, "$2")

	defaultExt := markdown.Extensions()
	customExt := defaultExt &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(a.width-4, 0)
	doc := p.Parse([]byte(content))
	rendered := string(gomarkdown.Render(doc, r))

	rendered = fixInlineCode(rendered)
	rendered = colorPlainURLs(rendered)
	rendered = strings.TrimRight(rendered, "\n")

	a.rendered[msg.ID] = rendered
	return rendered
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")

	return result.String()
}

func fixInlineCode(s string) string {
	// Replace: \x1b[44;3m...text...\x1b[0m (Blue BG + Italic)
	// With:    \x1b[31m...text...\x1b[0m (Red text)
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func colorPlainURLs(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
	}
	return strings.Join(lines, "\n")
}

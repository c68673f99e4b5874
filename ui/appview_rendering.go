package ui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	"infosetu/i18n"
	appmodel "infosetu/model"
)

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return vp
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if !a.ready {
		return
	}

	tbl := a.dataModel.Strings()
	var content strings.Builder

	for _, msg := range a.dataModel.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[03:04 PM]"))

		var role string
		if msg.IsUser {
			role = UserStyle.Render("You")
		} else {
			role = AssistantStyle.Render("InfoSetu")
		}

		body := msg.Rendered
		if body == "" {
			body = wordWrap(msg.Text, a.width-4)
		}

		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", role, timestamp, body))
	}

	// Busy indicator rendered as a pseudo-turn at the bottom
	switch a.dataModel.Busy {
	case appmodel.AwaitingResponse:
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render(tbl.Thinking)))
	case appmodel.ListeningForVoice:
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), HighlightStyle.Render(tbl.Listening)))
	case appmodel.ProcessingDocument:
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render(tbl.ProcessingDoc)))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderPendingMarkdown starts async renders for assistant messages that
// have no cached rendering yet.
func (a *AppView) renderPendingMarkdown() []tea.Cmd {
	if !a.ready {
		return nil
	}

	var cmds []tea.Cmd
	for i, msg := range a.dataModel.Messages {
		if !msg.IsUser && msg.Rendered == "" && msg.Text != "" {
			cmds = append(cmds, a.renderMarkdownAsync(i, msg.Text))
		}
	}
	return cmds
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		// Disable autolink so plain URLs stay plain; terminals handle
		// link detection themselves
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		return appmodel.MarkdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     strings.TrimRight(string(rendered), "\n"),
		}
	}
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}
	if a.dataModel.Quitting {
		return ""
	}

	tbl := a.dataModel.Strings()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(tbl.Title))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(tbl.Subtitle))
	b.WriteString("\n")
	b.WriteString(BorderStyle.Render(strings.Repeat("─", a.width)))
	b.WriteString("\n")

	switch {
	case a.docPickerActive:
		b.WriteString(a.renderDocPicker())
	case a.showQuickHelp:
		b.WriteString(a.renderQuickHelp())
	default:
		b.WriteString(a.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(a.textinput.View())

	return b.String()
}

func (a AppView) renderStatusBar() string {
	tbl := a.dataModel.Strings()

	if a.dataModel.Warning != "" {
		// Truncate before styling; ANSI codes have no display width
		return WarningStyle.Render(runewidth.Truncate(a.dataModel.Warning, a.width, "…"))
	}

	var parts []string
	parts = append(parts, HighlightStyle.Render(tbl.LanguageName))

	if a.dataModel.SpeechEnabled {
		parts = append(parts, tbl.SpeechOn)
	} else {
		parts = append(parts, tbl.SpeechOff)
	}
	if !a.dataModel.VoiceAvailable() {
		parts = append(parts, tbl.VoiceOff)
	}

	if a.showHelp {
		parts = append(parts, FormatFooter(
			"enter", "Send",
			"^R", "Voice",
			"^O", "Upload",
			"^Q", tbl.QuickHelpTitle,
			"^L", "भाषा/Lang",
			"^T", "Speech",
			"^Y", "Copy",
			"^C", "Quit",
		))
	} else {
		parts = append(parts, HelpStyle.Render("^H help"))
	}

	return StatusStyle.Render(strings.Join(parts, "  │  "))
}

func (a AppView) renderQuickHelp() string {
	tbl := a.dataModel.Strings()
	lang := a.language()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(tbl.QuickHelpTitle))
	b.WriteString("\n\n")

	for i, svc := range i18n.Services {
		label := svc.Label[lang]
		if label == "" {
			label = svc.Label[i18n.English]
		}
		if i == a.quickHelpIdx {
			b.WriteString(SelectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatFooter("j/k", "Navigate", "enter", "Ask", "esc", "Close"))

	return padToHeight(b.String(), a.viewport.Height)
}

func (a AppView) renderDocPicker() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Upload a document image"))
	b.WriteString("\n\n")
	b.WriteString(a.docPicker.View())
	b.WriteString("\n")
	b.WriteString(FormatFooter("enter", "Select", "esc", "Cancel"))

	return padToHeight(b.String(), a.viewport.Height)
}

// padToHeight pads content with blank lines so overlays keep the layout
// stable.
func padToHeight(content string, height int) string {
	lines := strings.Count(content, "\n") + 1
	if lines < height {
		content += strings.Repeat("\n", height-lines)
	}
	return content
}

// wordWrap soft-wraps plain text for the viewport.
func wordWrap(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(maxWidth).Render(text)
}

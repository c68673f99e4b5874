package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"infosetu/config"
	"infosetu/i18n"
	appmodel "infosetu/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Animate the spinner whenever the orchestrator is busy. The busy
	// indicator lives inside the viewport content, so each tick redraws it.
	if a.dataModel.Busy != appmodel.Idle {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(spinner.TickMsg); ok {
			a.updateViewportContent(false)
		}
	}

	// Forward non-key messages to the file picker while it is open
	// (KeyMsg is handled in handleDocPickerKey to check DidSelectFile first)
	if a.docPickerActive {
		switch msg.(type) {
		case tea.KeyMsg:
		default:
			a.docPicker, cmd = a.docPicker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title (2 lines), separator, status bar, input line
		viewportHeight := a.height - 6
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		if !a.ready {
			a.viewport = newViewport(a.width, viewportHeight)
			a.ready = true
		} else {
			a.viewport.Width = a.width
			a.viewport.Height = viewportHeight
		}
		a.textinput.Width = a.width - 4

		// Cached renders are width-dependent
		for i := range a.dataModel.Messages {
			a.dataModel.Messages[i].Rendered = ""
		}
		a.updateViewportContent(true)

		if a.dataModel.NeedsInitialRender {
			a.dataModel.NeedsInitialRender = false
		}
		cmds = append(cmds, a.renderPendingMarkdown()...)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case appmodel.AnswerMsg:
		cmds = append(cmds, a.dataModel.ApplyAnswer(msg))
		a.updateViewportContent(true)
		cmds = append(cmds, a.renderPendingMarkdown()...)

	case appmodel.VoiceResultMsg:
		cmds = append(cmds, a.dataModel.ApplyVoiceResult(msg))
		a.updateViewportContent(true)

	case appmodel.ExtractionMsg:
		cmds = append(cmds, a.dataModel.ApplyExtraction(msg))
		if a.dataModel.PendingInput != "" {
			a.textinput.SetValue(a.dataModel.PendingInput)
			a.textinput.CursorEnd()
		}
		a.updateViewportContent(true)
		cmds = append(cmds, a.renderPendingMarkdown()...)

	case appmodel.SessionSavedMsg:
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] session save failed: %v", msg.Err)
		}

	case appmodel.MarkdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(false)
		}
	}

	// Route remaining events (blink ticks etc.) to the input field
	if !a.docPickerActive && !a.showQuickHelp {
		a.textinput, cmd = a.textinput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.docPickerActive {
		return a.handleDocPickerKey(msg)
	}
	if a.showQuickHelp {
		return a.handleQuickHelpKey(msg)
	}

	var cmds []tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		a.dataModel.Quitting = true
		return a, tea.Quit

	case "esc":
		switch {
		case a.dataModel.Busy == appmodel.ListeningForVoice:
			a.dataModel.StopListening()
		case a.dataModel.Warning != "":
			a.dataModel.Warning = ""
		case a.showHelp:
			a.showHelp = false
		}
		return a, nil

	case "ctrl+l":
		a.dataModel.ToggleLanguage()
		a.textinput.Placeholder = a.dataModel.Strings().InputPlaceholder
		a.updateViewportContent(false)
		cmds = append(cmds, a.renderPendingMarkdown()...)
		return a, tea.Batch(cmds...)

	case "ctrl+r":
		// One key runs the whole capture session: press to listen,
		// press again to finish and transcribe
		if a.dataModel.Busy == appmodel.ListeningForVoice {
			a.dataModel.FinishListening()
			return a, nil
		}
		if cmd := a.dataModel.StartListening(); cmd != nil {
			a.updateViewportContent(true)
			cmds = append(cmds, cmd, a.loadingSpinner.Tick)
		}
		return a, tea.Batch(cmds...)

	case "ctrl+o":
		if a.dataModel.InputEnabled() && a.dataModel.UploadAvailable() {
			a.docPickerActive = true
			return a, a.docPicker.Init()
		}
		return a, nil

	case "ctrl+q":
		if a.dataModel.InputEnabled() {
			a.showQuickHelp = true
			a.quickHelpIdx = 0
		}
		return a, nil

	case "ctrl+t":
		a.dataModel.ToggleSpeech()
		return a, nil

	case "ctrl+y":
		for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
			if !a.dataModel.Messages[i].IsUser {
				_ = clipboard.WriteAll(a.dataModel.Messages[i].Text)
				break
			}
		}
		return a, nil

	case "ctrl+h":
		a.showHelp = !a.showHelp
		return a, nil

	case "enter":
		if cmd := a.dataModel.SubmitText(a.textinput.Value()); cmd != nil {
			a.textinput.SetValue("")
			a.updateViewportContent(true)
			cmds = append(cmds, cmd, a.loadingSpinner.Tick)
			cmds = append(cmds, a.renderPendingMarkdown()...)
		}
		return a, tea.Batch(cmds...)

	case "pgup", "pgdown":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	// Plain typing goes to the input field while controls are enabled
	if a.dataModel.InputEnabled() {
		var cmd tea.Cmd
		a.textinput, cmd = a.textinput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a AppView) handleQuickHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+q":
		a.showQuickHelp = false
		return a, nil
	case "up", "k":
		if a.quickHelpIdx > 0 {
			a.quickHelpIdx--
		}
		return a, nil
	case "down", "j":
		if a.quickHelpIdx < len(i18n.Services)-1 {
			a.quickHelpIdx++
		}
		return a, nil
	case "enter":
		a.showQuickHelp = false
		var cmds []tea.Cmd
		if cmd := a.dataModel.QuickHelp(i18n.Services[a.quickHelpIdx]); cmd != nil {
			a.textinput.SetValue("")
			a.updateViewportContent(true)
			cmds = append(cmds, cmd, a.loadingSpinner.Tick)
			cmds = append(cmds, a.renderPendingMarkdown()...)
		}
		return a, tea.Batch(cmds...)
	case "ctrl+c":
		a.dataModel.Quitting = true
		return a, tea.Quit
	}
	return a, nil
}

func (a AppView) handleDocPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.docPickerActive = false
		return a, nil
	case "ctrl+c":
		a.dataModel.Quitting = true
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.docPicker, cmd = a.docPicker.Update(msg)

	if didSelect, path := a.docPicker.DidSelectFile(msg); didSelect {
		a.docPickerActive = false
		var cmds []tea.Cmd
		cmds = append(cmds, cmd)
		if uploadCmd := a.dataModel.UploadDocument(path); uploadCmd != nil {
			cmds = append(cmds, uploadCmd, a.loadingSpinner.Tick)
		}
		a.updateViewportContent(true)
		return a, tea.Batch(cmds...)
	}

	return a, cmd
}

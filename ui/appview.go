// Package ui renders the InfoSetu conversation and routes terminal input to
// the orchestrator model. All transcript and busy-state mutation happens in
// the model package; this package only draws and dispatches.
package ui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"infosetu/config"
	"infosetu/i18n"
	appmodel "infosetu/model"
	"infosetu/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI components
	viewport  viewport.Model
	textinput textinput.Model

	// Window state
	width  int
	height int
	ready  bool

	loadingSpinner spinner.Model

	// Quick-help selector
	showQuickHelp bool
	quickHelpIdx  int

	// Document upload picker
	docPickerActive bool
	docPicker       filepicker.Model

	showHelp bool
}

// NewAppView builds the application view around a fresh orchestrator model.
func NewAppView(cfg *config.Config, caps appmodel.Capabilities, sessionStorage *storage.SessionStorage, lastSession *storage.Session, version, license string) AppView {
	dataModel := appmodel.NewModel(cfg, caps, sessionStorage, lastSession, version, license)

	ti := textinput.New()
	ti.Placeholder = dataModel.Strings().InputPlaceholder
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".webp", ".tif", ".tiff", ".bmp"}
	fp.Height = 12
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = false
	fp.CurrentDirectory = config.GetHomeDir()
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(successColor)

	return AppView{
		dataModel:      dataModel,
		textinput:      ti,
		loadingSpinner: sp,
		docPicker:      fp,
	}
}

func (a AppView) Init() tea.Cmd {
	return textinput.Blink
}

// language returns the active language shorthand for render helpers.
func (a AppView) language() i18n.Language {
	return a.dataModel.Language
}

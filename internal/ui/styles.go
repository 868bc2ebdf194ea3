package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorAccent    = lipgloss.Color("222") // Sand
)

// AppTitle style for the "newsdeck" banner.
var AppTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// Prompt style for the portal picker question.
var Prompt = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true).
	MarginBottom(1)

// CardTitle style for the feed card headline.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	MarginBottom(1)

// CardBody style for the clamped teaser text.
var CardBody = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

// ReadMore style for the "read more" link.
var ReadMore = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Underline(true)

// PictureCaption style for the picture line on cards.
var PictureCaption = lipgloss.NewStyle().
	Foreground(colorHighlight)

// Dim style for secondary lines such as URLs and hints.
var Dim = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// Panel style for the summary and info overlays.
var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#30363d")).
	Padding(0, 1)

// PanelTitle style for overlay headings.
var PanelTitle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#58a6ff")).
	Bold(true)

// Mark style for words the highlight mode picked out.
var Mark = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(colorAccent)

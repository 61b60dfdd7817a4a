package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"vizpro/internal/api"
	"vizpro/internal/catalog"
	"vizpro/internal/chart"
	"vizpro/internal/config"
	"vizpro/internal/export"
	"vizpro/internal/session"
	"vizpro/internal/surface"
)

type panelKind int

const (
	panelNone panelKind = iota
	panelColumns
	panelColors
	panelGallery
)

type Model struct {
	width  int
	height int

	cfg    *config.Config
	client *api.Client
	store  *export.Store

	surf *surface.Surface
	sess *session.Session

	showSidebar bool
	helpVisible bool

	status  string
	pending int
	spin    spinner.Model

	// Dataset explorer
	cwd   string
	l     list.Model
	items []list.Item

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// right-hand panels
	panel      panelKind
	cursor     int
	gallery    list.Model
	galleryAll bool

	// analyze table
	showAttrs bool
	tbl       table.Model

	holo       bool
	renderMode string

	// pointer position over the chart, surface-relative pixels
	hovering bool
	hover    chart.Point

	// dataset queued for upload by Init
	initPath string
}

func New(cfg *config.Config, client *api.Client, store *export.Store) Model {
	m := Model{
		cfg:         cfg,
		client:      client,
		store:       store,
		surf:        surface.New(),
		sess:        session.New(catalog.Palette(cfg.Palette)),
		helpVisible: true,
		status:      "vizpro ready",
		holo:        cfg.Holographic,
		renderMode:  cfg.RenderMode,
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	g := list.NewDefaultDelegate()
	m.gallery = list.New(nil, g, 0, 0)
	m.gallery.Title = "Chart Types"
	m.gallery.SetShowHelp(false)
	m.gallery.SetShowStatusBar(false)
	m.gallery.SetFilteringEnabled(false)
	m.refreshGallery()

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste CSV here (header row first). Ctrl+D to upload; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.refreshDir()
	return m
}

// NewWithPath uploads a dataset at launch.
func NewWithPath(cfg *config.Config, client *api.Client, store *export.Store, path string) Model {
	m := New(cfg, client, store)
	m.initPath = path
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initPath == "" {
		return nil
	}
	return m.beginUpload(m.initPath)
}

func (m Model) busy() bool { return m.pending > 0 }

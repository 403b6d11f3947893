// Package tui is the terminal dashboard: a grid of visible widgets per
// category, a search box and a side panel to add, remove and show/hide
// widgets.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/widgetboard/internal/board"
	"github.com/jask/widgetboard/internal/visible"
)

const appName = "widgetboard"

type panelFocus int

const (
	focusList panelFocus = iota
	focusTitle
	focusContent
	focusCount
)

// Options wires a Model to its collaborators.
type Options struct {
	Store   *board.Store
	Slot    visible.Slot
	Keys    *KeyRegistry
	Logger  *slog.Logger
	Columns int              // 0 picks a responsive column count
	Now     func() time.Time // widget key clock; defaults to time.Now
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx     context.Context
	store   *board.Store
	slot    visible.Slot
	keys    *KeyRegistry
	logger  *slog.Logger
	now     func() time.Time
	columns int

	visible visible.Set
	loaded  bool

	width  int
	height int

	search    textinput.Model
	searching bool
	catCursor int

	panelOpen   bool
	panelFocus  panelFocus
	activeIndex int
	listCursor  int
	title       textinput.Model
	content     textarea.Model

	status     string
	statusErr  bool
	statusWarn bool
}

type visibleLoadedMsg struct {
	set visible.Set
	err error
}

// New builds the dashboard model. The visible-set is read from the slot by
// Init.
func New(ctx context.Context, opts Options) Model {
	if opts.Store == nil {
		opts.Store = board.NewStore(nil)
	}
	if opts.Keys == nil {
		opts.Keys = NewKeyRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		ctx:     ctx,
		store:   opts.Store,
		slot:    opts.Slot,
		keys:    opts.Keys,
		logger:  opts.Logger,
		now:     opts.Now,
		columns: opts.Columns,
		search:  newSearchInput(),
		title:   newTitleInput(),
		content: newContentInput(),
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search widgets..."
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Widget title"
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newContentInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Widget content"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

func (m Model) Init() tea.Cmd {
	return m.loadVisibleCmd()
}

func (m Model) loadVisibleCmd() tea.Cmd {
	slot, ctx := m.slot, m.ctx
	if slot == nil {
		return func() tea.Msg { return visibleLoadedMsg{} }
	}
	return func() tea.Msg {
		set, err := slot.Load(ctx)
		return visibleLoadedMsg{set: set, err: err}
	}
}

// persistVisible writes the current set to the slot before Update returns,
// so the slot always holds the latest change.
func (m *Model) persistVisible() {
	if m.slot == nil {
		return
	}
	if err := m.slot.Save(m.ctx, m.visible); err != nil {
		m.logger.Error("save visible-set failed", slog.String("error", err.Error()))
		m.setError(fmt.Sprintf("Save selection failed: %v", err))
	}
}

func (m Model) handleVisibleLoaded(msg visibleLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	switch {
	case errors.Is(msg.err, visible.ErrCorrupt):
		m.logger.Warn("visible-set slot unreadable, starting empty", slog.String("error", msg.err.Error()))
		m.visible = visible.Set{}
		m.setWarning("Saved widget selection was unreadable; starting with none shown.")
	case msg.err != nil:
		m.logger.Error("load visible-set failed", slog.String("error", msg.err.Error()))
		m.visible = visible.Set{}
		m.setError(fmt.Sprintf("Load selection failed: %v", msg.err))
	default:
		m.visible = msg.set
		m.logger.Debug("visible-set loaded", slog.Int("count", msg.set.Len()))
	}
	return m, nil
}

// Visible returns the keys currently shown on the grid.
func (m Model) Visible() visible.Set {
	return m.visible
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
	m.statusWarn = false
}

// setError sets the status as an error message (rendered in red).
func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
	m.statusWarn = false
}

func (m *Model) setWarning(msg string) {
	m.status = msg
	m.statusErr = false
	m.statusWarn = true
}

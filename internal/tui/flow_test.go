package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/widgetboard/internal/board"
	"github.com/jask/widgetboard/internal/visible"
)

func flowKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T, want Model", next)
	return flowDrainCmd(t, got, cmd)
}

func flowPress(t *testing.T, m Model, key string) Model {
	t.Helper()
	return flowApplyMsg(t, m, flowKey(key))
}

func flowSpecial(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return flowApplyMsg(t, m, tea.KeyMsg{Type: k})
}

func flowType(t *testing.T, m Model, input string) Model {
	t.Helper()
	for _, r := range input {
		m = flowPress(t, m, string(r))
	}
	return m
}

func flowDrainCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 32; i++ {
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		next, nextCmd := m.Update(msg)
		got, ok := next.(Model)
		require.True(t, ok, "command update returned %T, want Model", next)
		m = got
		cmd = nextCmd
	}
	require.Nil(t, cmd, "command chain did not settle")
	return m
}

func flowSeed() []board.CategorySeed {
	return []board.CategorySeed{
		{Title: "Fruit", Widgets: []board.Widget{
			{Title: "Apple", Content: "red", Key: 1},
			{Title: "Banana", Content: "yellow", Key: 2},
		}},
		{Title: "Notes"},
	}
}

func newFlowModel(t *testing.T, slot visible.Slot) (Model, *board.Store) {
	t.Helper()
	store := board.NewStore(flowSeed())
	m := New(context.Background(), Options{
		Store: store,
		Slot:  slot,
		Now:   func() time.Time { return time.UnixMilli(5000) },
	})
	m = flowDrainCmd(t, m, m.Init())
	require.True(t, m.loaded)
	return m, store
}

func newFileSlot(t *testing.T, content string) *visible.FileSlot {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checked_items.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return visible.NewFileSlot(path)
}

func loadSlot(t *testing.T, slot visible.Slot) []int64 {
	t.Helper()
	set, err := slot.Load(context.Background())
	require.NoError(t, err)
	return set.Keys()
}

func TestInitLoadsVisibleSet(t *testing.T) {
	m, _ := newFlowModel(t, newFileSlot(t, "[2]"))
	require.Equal(t, []int64{2}, m.Visible().Keys())
	require.False(t, m.statusErr)
}

func TestInitCorruptSlotStartsEmptyWithWarning(t *testing.T) {
	m, _ := newFlowModel(t, newFileSlot(t, "{not json"))
	require.Zero(t, m.Visible().Len())
	require.True(t, m.statusWarn)
	require.Contains(t, m.status, "unreadable")
}

func TestConfirmValidDraftAddsWidget(t *testing.T) {
	m, store := newFlowModel(t, nil)

	m = flowPress(t, m, "j") // Notes
	m = flowPress(t, m, "a")
	require.True(t, m.panelOpen)
	require.Equal(t, 1, m.activeIndex)

	m = flowSpecial(t, m, tea.KeyTab)
	require.Equal(t, focusTitle, m.panelFocus)
	m = flowType(t, m, "  Todo ")
	m = flowSpecial(t, m, tea.KeyEnter)
	require.Equal(t, focusContent, m.panelFocus)
	m = flowType(t, m, "buy milk")
	m = flowSpecial(t, m, tea.KeyCtrlS)

	require.False(t, m.panelOpen)
	require.Empty(t, m.title.Value())
	require.Empty(t, m.content.Value())
	require.Equal(t, []board.Widget{{Title: "Todo", Content: "buy milk", Key: 5000}}, store.State().Widgets("Notes"))
	require.Contains(t, m.status, `Added "Todo" to Notes.`)
	require.False(t, m.Visible().Has(5000), "new widgets start hidden")
}

func TestConfirmEmptyDraftNeverDispatches(t *testing.T) {
	m, store := newFlowModel(t, nil)
	dispatched := 0
	store.Subscribe(func(board.Action, board.State) { dispatched++ })

	m = flowPress(t, m, "a")
	m = flowSpecial(t, m, tea.KeyTab)
	m = flowType(t, m, "   ")
	m = flowSpecial(t, m, tea.KeyCtrlS)

	require.Zero(t, dispatched)
	require.False(t, m.panelOpen)
	require.Empty(t, m.title.Value())
	require.True(t, m.statusErr)
	require.Len(t, store.State().Widgets("Fruit"), 2)
}

func TestCancelClearsDraftWithoutDispatch(t *testing.T) {
	m, store := newFlowModel(t, nil)

	m = flowPress(t, m, "a")
	m = flowSpecial(t, m, tea.KeyTab)
	m = flowType(t, m, "Draft")
	m = flowSpecial(t, m, tea.KeyEsc)

	require.False(t, m.panelOpen)
	require.Empty(t, m.title.Value())
	require.Len(t, store.State().Widgets("Fruit"), 2)
}

func TestCloseFromListKeepsDraft(t *testing.T) {
	m, _ := newFlowModel(t, nil)

	m = flowPress(t, m, "a")
	m = flowSpecial(t, m, tea.KeyTab)
	m = flowType(t, m, "Draft")
	m = flowSpecial(t, m, tea.KeyShiftTab)
	require.Equal(t, focusList, m.panelFocus)
	m = flowSpecial(t, m, tea.KeyEsc)

	require.False(t, m.panelOpen)
	require.Equal(t, "Draft", m.title.Value())
}

func TestToggleVisiblePersists(t *testing.T) {
	slot := newFileSlot(t, "")
	m, _ := newFlowModel(t, slot)

	m = flowPress(t, m, "a")
	m = flowSpecial(t, m, tea.KeySpace)
	require.True(t, m.Visible().Has(1))
	require.Equal(t, []int64{1}, loadSlot(t, slot))

	m = flowPress(t, m, "j")
	m = flowSpecial(t, m, tea.KeySpace)
	require.Equal(t, []int64{1, 2}, loadSlot(t, slot))

	m = flowSpecial(t, m, tea.KeySpace)
	require.False(t, m.Visible().Has(2))
	require.Equal(t, []int64{1}, loadSlot(t, slot))
}

func TestToggleWritesSlotBeforeUpdateReturns(t *testing.T) {
	slot := newFileSlot(t, "")
	m, _ := newFlowModel(t, slot)
	m = flowPress(t, m, "a")

	for _, want := range [][]int64{{1}, nil} {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
		require.Nil(t, cmd, "saving must not be deferred to a command")
		m = next.(Model)
		require.Equal(t, m.Visible().Keys(), loadSlot(t, slot))
		if want == nil {
			require.Empty(t, loadSlot(t, slot))
		} else {
			require.Equal(t, want, loadSlot(t, slot))
		}
	}
}

func TestToggleBeforeLoadKeepsSavedSelection(t *testing.T) {
	slot := newFileSlot(t, "[2]")
	m := New(context.Background(), Options{Store: board.NewStore(flowSeed()), Slot: slot})
	load := m.Init()

	m = flowPress(t, m, "a")
	m = flowSpecial(t, m, tea.KeySpace)
	m = flowPress(t, m, "d")
	require.True(t, m.statusWarn)
	require.Zero(t, m.Visible().Len())
	require.Equal(t, []int64{2}, loadSlot(t, slot))

	m = flowDrainCmd(t, m, load)
	require.Equal(t, []int64{2}, m.Visible().Keys())

	m = flowSpecial(t, m, tea.KeySpace)
	require.Equal(t, []int64{2, 1}, loadSlot(t, slot))
}

func TestDeletePrunesVisibleSet(t *testing.T) {
	slot := newFileSlot(t, "[1,2]")
	m, store := newFlowModel(t, slot)

	m = flowPress(t, m, "a")
	m = flowPress(t, m, "d")

	require.Equal(t, []board.Widget{{Title: "Banana", Content: "yellow", Key: 2}}, store.State().Widgets("Fruit"))
	require.False(t, m.Visible().Has(1))
	require.Equal(t, []int64{2}, loadSlot(t, slot))
	require.Equal(t, 0, m.listCursor)

	m = flowPress(t, m, "d")
	require.Empty(t, store.State().Widgets("Fruit"))
	require.Empty(t, loadSlot(t, slot))

	// Nothing left to delete.
	m = flowPress(t, m, "d")
	require.True(t, m.panelOpen)
}

func TestPanelTabsSwitchCategory(t *testing.T) {
	m, _ := newFlowModel(t, nil)

	m = flowPress(t, m, "A")
	require.Equal(t, 0, m.activeIndex)
	m = flowPress(t, m, "j")
	require.Equal(t, 1, m.listCursor)

	m = flowPress(t, m, "l")
	require.Equal(t, 1, m.activeIndex)
	require.Equal(t, 0, m.listCursor)
	m = flowPress(t, m, "l")
	require.Equal(t, 1, m.activeIndex, "tab index clamps at the last category")

	m = flowPress(t, m, "h")
	require.Equal(t, 0, m.activeIndex)
}

func TestSearchSuggestsClosestTitle(t *testing.T) {
	m, _ := newFlowModel(t, nil)

	m = flowPress(t, m, "/")
	require.True(t, m.searching)
	m = flowType(t, m, "banan")
	require.Equal(t, "banan", m.searchTerm())
	m = flowSpecial(t, m, tea.KeyEnter)
	require.False(t, m.searching)
	require.Empty(t, m.status)

	m = flowPress(t, m, "/")
	m = flowSpecial(t, m, tea.KeyEsc)
	require.Empty(t, m.searchTerm())

	m = flowPress(t, m, "/")
	m = flowType(t, m, "bananq")
	m = flowSpecial(t, m, tea.KeyEnter)
	require.True(t, m.statusWarn)
	require.Contains(t, m.status, `Did you mean "Banana"?`)
}

func TestSearchKeepsPrintableKeys(t *testing.T) {
	m, _ := newFlowModel(t, nil)

	m = flowPress(t, m, "/")
	m = flowType(t, m, "qa")
	require.Equal(t, "qa", m.searchTerm())
	require.False(t, m.panelOpen)
}

func TestQuitFromDashboard(t *testing.T) {
	m, _ := newFlowModel(t, nil)
	_, cmd := m.Update(flowKey("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

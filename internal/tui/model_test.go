package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edurpg/internal/engine"
)

func loadedBoard(t *testing.T) boardModel {
	t.Helper()
	p, err := engine.NewPlayer("Ada", "5")
	require.NoError(t, err)
	p.Inventory.Add(engine.Item{Name: "Microscope", Type: "tool", Subject: engine.SubjectScience, Description: "Zoom."})
	p.Inventory.Add(engine.Item{Name: "Antique Map", Type: "tool", Subject: engine.SubjectHistory})

	m := newBoardModel(context.Background(), nil, "Ada")
	next, _ := m.Update(loadedMsg{player: p})
	return next.(boardModel)
}

func TestBoardTabsAndSelection(t *testing.T) {
	m := loadedBoard(t)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Traits")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(boardModel)
	assert.Equal(t, tabInventory, m.tab)
	assert.Contains(t, m.View(), "Inventory (2)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(boardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(boardModel)
	assert.Equal(t, 1, m.selected, "selection stops at the last item")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(boardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(boardModel)
	assert.Equal(t, "Microscope: Zoom.", m.lastLog)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(boardModel)
	assert.Contains(t, m.View(), "(not in a guild)")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(boardModel)
	assert.Equal(t, tabInventory, m.tab)
	assert.Equal(t, 0, m.selected)
}

func TestBoardQuitAndError(t *testing.T) {
	m := loadedBoard(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	next, _ := m.Update(loadedMsg{err: engine.ErrPlayerNotFound})
	assert.Contains(t, next.(boardModel).View(), "player not found")
}

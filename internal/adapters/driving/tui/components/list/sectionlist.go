// Package list provides the ranked section list for the report browser.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/styles"
)

// Item is one ranked section as shown in the list.
type Item struct {
	Rank     int
	Document string
	Page     int
	Title    string
	Score    float64
	Text     string
}

// SectionList displays ranked sections in a navigable list.
type SectionList struct {
	items    []Item
	selected int
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
	height   int
}

// NewSectionList creates a new section list component.
func NewSectionList(s *styles.Styles, km *keymap.KeyMap) *SectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &SectionList{
		styles: s,
		keymap: km,
		width:  40,
		height: 10,
	}
}

// Init initialises the list.
func (l *SectionList) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (l *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, l.keymap.Up):
		l.MoveUp()
	case key.Matches(keyMsg, l.keymap.Down):
		l.MoveDown()
	case key.Matches(keyMsg, l.keymap.Top):
		l.selected = 0
	case key.Matches(keyMsg, l.keymap.Bottom):
		l.selected = max(len(l.items)-1, 0)
	}
	return l, nil
}

// View renders the visible window of the list. Each item takes two lines.
func (l *SectionList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No sections above the relevance threshold")
	}

	visible := max(l.height/2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i)...)
	}
	return strings.Join(lines, "\n")
}

func (l *SectionList) renderItem(i int) []string {
	item := l.items[i]

	rank := l.styles.Rank.Render(fmt.Sprintf("#%d", item.Rank))
	title := truncate(item.Title, l.width-lipgloss.Width(rank)-1)
	if i == l.selected {
		title = l.styles.Selected.Render(title)
	} else {
		title = l.styles.Normal.Render(title)
	}

	score := l.styles.Score(item.Score).Render(fmt.Sprintf("%.3f", item.Score))
	where := l.styles.Muted.Render(truncate(fmt.Sprintf("%s p.%d", item.Document, item.Page), l.width-12))

	return []string{
		rank + " " + title,
		"     " + score + "  " + where,
	}
}

// SetItems replaces the items and resets the selection.
func (l *SectionList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *SectionList) Items() []Item {
	return l.items
}

// Selected returns the selected item, or false when the list is empty.
func (l *SectionList) Selected() (Item, bool) {
	if len(l.items) == 0 {
		return Item{}, false
	}
	return l.items[l.selected], true
}

// SelectedIndex returns the index of the selected item.
func (l *SectionList) SelectedIndex() int {
	return l.selected
}

// MoveUp moves the selection up one item.
func (l *SectionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down one item.
func (l *SectionList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetSize sets the list dimensions.
func (l *SectionList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// truncate shortens s to at most n display cells, marking the cut.
func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

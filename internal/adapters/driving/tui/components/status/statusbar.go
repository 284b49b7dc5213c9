// Package status provides the status bar for the report browser.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/styles"
)

// Bar displays the section count, active filter and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	count    int
	total    int
	filter   string
	warnings int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	text := fmt.Sprintf("%d sections", b.count)
	if b.filter != "" {
		text = fmt.Sprintf("%d of %d sections in %s", b.count, b.total, b.filter)
	}
	left := b.styles.Normal.Render(text)

	if b.warnings > 0 {
		left += "  " + b.styles.Warning.Render(fmt.Sprintf("%d warnings", b.warnings))
	}
	return left
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetCounts sets how many sections are shown out of the total.
func (b *Bar) SetCounts(shown, total int) {
	b.count = shown
	b.total = total
}

// SetFilter sets the document filter label. Empty means no filter.
func (b *Bar) SetFilter(document string) {
	b.filter = document
}

// SetWarnings sets the number of recorded warnings.
func (b *Bar) SetWarnings(n int) {
	b.warnings = n
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

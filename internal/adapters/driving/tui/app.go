package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/personarank/internal/core/domain"
)

// Layout constants.
const (
	headerHeight = 2
	statusHeight = 1
	paneChrome   = 4 // border and padding around each pane
)

// App browses one run report following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	report *domain.RunReport
	items  []list.Item

	styles *styles.Styles
	keymap *keymap.KeyMap

	sections *list.SectionList
	detail   viewport.Model
	status   *status.Bar
	help     help.Model

	// documents holds the filterable documents; filter indexes it, -1 for all.
	documents []string
	filter    int

	showHelp bool
	width    int
	height   int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser for report.
func NewApp(report *domain.RunReport) (*App, error) {
	if report == nil {
		return nil, ErrNoReport
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		report:   report,
		items:    buildItems(report),
		styles:   s,
		keymap:   km,
		sections: list.NewSectionList(s, km),
		detail:   viewport.New(40, 10),
		status:   status.NewBar(s, km),
		help:     help.New(),
		filter:   -1,
	}
	a.documents = documentsWithSections(report.InputDocuments, a.items)
	a.status.SetWarnings(len(report.Warnings))
	a.applyFilter()

	return a, nil
}

// buildItems zips the parallel report views into list items.
func buildItems(r *domain.RunReport) []list.Item {
	n := min(len(r.Sections), len(r.Analysis))
	items := make([]list.Item, n)
	for i := range n {
		items[i] = list.Item{
			Rank:     r.Sections[i].Rank,
			Document: r.Sections[i].Document,
			Page:     r.Sections[i].PageNumber,
			Title:    r.Sections[i].SectionTitle,
			Score:    r.Analysis[i].Score,
			Text:     r.Analysis[i].RefinedText,
		}
	}
	return items
}

// documentsWithSections keeps configured order and drops documents
// that contributed nothing.
func documentsWithSections(inputs []string, items []list.Item) []string {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.Document] = true
	}

	var docs []string
	for _, d := range inputs {
		if present[d] {
			docs = append(docs, d)
			delete(present, d)
		}
	}
	return docs
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			a.layout()
			return a, nil
		case key.Matches(msg, a.keymap.Filter):
			a.cycleFilter()
			return a, nil
		case key.Matches(msg, a.keymap.ScrollDown):
			a.detail.SetYOffset(a.detail.YOffset + a.detail.Height)
			return a, nil
		case key.Matches(msg, a.keymap.ScrollUp):
			a.detail.SetYOffset(a.detail.YOffset - a.detail.Height)
			return a, nil
		}

		before := a.sections.SelectedIndex()
		a.sections, _ = a.sections.Update(msg)
		if a.sections.SelectedIndex() != before {
			a.refreshDetail()
		}
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	header := a.renderHeader()

	left := a.styles.Pane.Render(a.sections.View())
	right := a.styles.Pane.Render(a.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	parts := []string{header, body, a.status.View()}
	if a.showHelp {
		parts = append(parts, a.help.View(a.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render(a.report.Persona)
	job := a.styles.Normal.Render(a.report.JobToBeDone)

	meta := fmt.Sprintf("%d documents", len(a.report.InputDocuments))
	if !a.report.ProcessedAt.IsZero() {
		meta += " · " + a.report.ProcessedAt.Format("2006-01-02 15:04:05")
	}
	if a.report.Model != "" {
		meta += " · " + a.report.Model
	}

	return title + "  " + job + "\n" + a.styles.Muted.Render(meta)
}

// layout sizes the panes to the terminal.
func (a *App) layout() {
	if a.width == 0 || a.height == 0 {
		return
	}

	inner := max(a.width-2*paneChrome, 20)
	listWidth := inner * 2 / 5
	detailWidth := inner - listWidth

	bodyHeight := a.height - headerHeight - statusHeight - 2
	if a.showHelp {
		bodyHeight -= len(a.keymap.FullHelp()[0]) + 1
	}
	bodyHeight = max(bodyHeight, 3)

	a.sections.SetSize(listWidth, bodyHeight)
	a.detail.Width = detailWidth
	a.detail.Height = bodyHeight
	a.status.SetWidth(a.width)
	a.help.Width = a.width
	a.refreshDetail()
}

// cycleFilter moves to the next document, wrapping back to all.
func (a *App) cycleFilter() {
	if len(a.documents) == 0 {
		return
	}
	a.filter++
	if a.filter >= len(a.documents) {
		a.filter = -1
	}
	a.applyFilter()
}

func (a *App) applyFilter() {
	shown := a.items
	label := ""
	if a.filter >= 0 {
		label = a.documents[a.filter]
		shown = make([]list.Item, 0, len(a.items))
		for _, it := range a.items {
			if it.Document == label {
				shown = append(shown, it)
			}
		}
	}

	a.sections.SetItems(shown)
	a.status.SetCounts(len(shown), len(a.items))
	a.status.SetFilter(label)
	a.refreshDetail()
}

// refreshDetail shows the selected section's full text.
func (a *App) refreshDetail() {
	item, ok := a.sections.Selected()
	if !ok {
		a.detail.SetContent(a.styles.Muted.Render("Nothing to show"))
		return
	}

	wrap := lipgloss.NewStyle().Width(max(a.detail.Width, 10))
	var b strings.Builder
	b.WriteString(a.styles.Subtitle.Render(wrap.Render(item.Title)))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(fmt.Sprintf("%s · page %d · rank %d · ", item.Document, item.Page, item.Rank)))
	b.WriteString(a.styles.Score(item.Score).Render(fmt.Sprintf("%.4f", item.Score)))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(item.Text))

	a.detail.SetContent(b.String())
	a.detail.GotoTop()
}

// Report returns the report being browsed.
func (a *App) Report() *domain.RunReport {
	return a.report
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/personarank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/personarank/internal/core/domain"
)

// summaryLimit is how many top sections the run summary lists.
const summaryLimit = 5

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printSummary writes the top sections of rep, styled when w is a terminal.
func printSummary(w io.Writer, rep *domain.RunReport, path string) {
	if isTerminal(w) {
		fmt.Fprintln(w, styledSummary(rep, path))
		return
	}
	fmt.Fprint(w, plainSummary(rep, path))
}

func plainSummary(rep *domain.RunReport, path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ranked %d sections from %d documents\n", len(rep.Sections), len(rep.InputDocuments))
	for i := range min(summaryLimit, len(rep.Sections)) {
		s := rep.Sections[i]
		fmt.Fprintf(&b, "  %d. %s (%s, page %d) %.4f\n",
			s.Rank, s.SectionTitle, s.Document, s.PageNumber, rep.Analysis[i].Score)
	}
	if path != "" {
		fmt.Fprintf(&b, "Report written to %s\n", path)
	}
	return b.String()
}

func styledSummary(rep *domain.RunReport, path string) string {
	s := styles.DefaultStyles()

	lines := []string{
		s.Title.Render(fmt.Sprintf("Ranked %d sections", len(rep.Sections))) +
			s.Muted.Render(fmt.Sprintf(" from %d documents", len(rep.InputDocuments))),
	}
	for i := range min(summaryLimit, len(rep.Sections)) {
		sec := rep.Sections[i]
		score := rep.Analysis[i].Score
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.Rank.Render(fmt.Sprintf("%3d ", sec.Rank)),
			s.Normal.Render(sec.SectionTitle),
			s.Muted.Render(fmt.Sprintf("  %s p.%d  ", sec.Document, sec.PageNumber)),
			s.Score(score).Render(fmt.Sprintf("%.4f", score)),
		))
	}
	if path != "" {
		lines = append(lines, s.Muted.Render("Report written to "+path))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// printWarnings lists recoverable problems met during the run.
func printWarnings(w io.Writer, warnings []domain.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "%d warnings:\n", len(warnings))
	for _, warn := range warnings {
		fmt.Fprintf(w, "  - %s\n", warn)
	}
}

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_Score(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		name  string
		score float64
		want  any
	}{
		{"strong", 0.75, theme.Success},
		{"strong boundary", StrongScore, theme.Success},
		{"fair", 0.45, theme.Warning},
		{"weak", 0.21, theme.Muted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.score).GetForeground())
		})
	}
}

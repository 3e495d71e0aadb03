package acts

import (
	"testing"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_ListsFiveActsInOrder(t *testing.T) {
	r := NewDefaultRegistry()

	want := []domain.ActInfo{
		{Name: "geography", Title: "Act I: The New Geography of Work"},
		{Name: "pressure", Title: "Act II: The Pressure Cooker"},
		{Name: "isolation", Title: "Act III: The Isolation Paradox"},
		{Name: "productivity", Title: "Act IV: The Productivity Illusion"},
		{Name: "resilience", Title: "Act V: The Resilient Remote Worker"},
	}
	assert.Equal(t, want, r.List())
}

func TestDefaultActs_PanelsAreWellFormed(t *testing.T) {
	for _, act := range DefaultActs() {
		t.Run(act.Name, func(t *testing.T) {
			assert.NotEmpty(t, act.Conclusion)
			assert.LessOrEqual(t, len(act.Panels), 4)
			for _, p := range act.Panels {
				assert.NotEmpty(t, p.Title)
				assert.NotEmpty(t, p.Caption)
				if p.Persona != nil {
					assert.Equal(t, domain.ChartPersona, p.Chart)
					continue
				}
				assert.NotEmpty(t, p.Metric.Kind, p.Title)
			}
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	panel := PanelSpec{Title: "p", Chart: domain.ChartBar, Caption: "c", Metric: survey.Count()}

	t.Run("empty name", func(t *testing.T) {
		_, err := NewRegistry(Act{Panels: []PanelSpec{panel}})
		assert.Error(t, err)
	})

	t.Run("no panels", func(t *testing.T) {
		_, err := NewRegistry(Act{Name: "bare"})
		assert.Error(t, err)
	})

	t.Run("duplicate ignores case", func(t *testing.T) {
		_, err := NewRegistry(
			Act{Name: "dup", Panels: []PanelSpec{panel}},
			Act{Name: "DUP", Panels: []PanelSpec{panel}},
		)
		assert.Error(t, err)
	})

	t.Run("get is case insensitive", func(t *testing.T) {
		r, err := NewRegistry(Act{Name: "Custom", Title: "Custom act", Panels: []PanelSpec{panel}})
		require.NoError(t, err)

		act, err := r.Get("custom")
		require.NoError(t, err)
		assert.Equal(t, "Custom", act.Name)
	})

	t.Run("unknown act", func(t *testing.T) {
		_, err := NewDefaultRegistry().Get("epilogue")
		assert.ErrorIs(t, err, domain.ErrUnknownAct)
	})
}

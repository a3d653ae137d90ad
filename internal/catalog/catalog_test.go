package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidCatalog(t *testing.T) {
	data := []byte(`[
		{"title": "Welcome", "kind": "intro", "narrative": "hi"},
		{"title": "Goal", "kind": "single-select", "options": [
			{"label": "Research"},
			{"label": "Draft", "cost": 0.05}
		]},
		{"title": "Query", "kind": "free-text"}
	]`)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	assert.Equal(t, KindIntro, c.Step(0).Kind)
	assert.False(t, c.Step(0).Selectable())
	assert.True(t, c.Step(1).Selectable())

	// Optional cost: absent vs present
	assert.Nil(t, c.Step(1).Options[0].Cost)
	require.NotNil(t, c.Step(1).Options[1].Cost)
	assert.Equal(t, 0.05, *c.Step(1).Options[1].Cost)
}

func TestParse_KindShapeValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"select without options", `[{"title": "Goal", "kind": "single-select"}]`},
		{"intro with options", `[{"title": "Hi", "kind": "intro", "options": [{"label": "x"}]}]`},
		{"free-text with options", `[{"title": "Q", "kind": "free-text", "options": [{"label": "x"}]}]`},
		{"unknown kind", `[{"title": "X", "kind": "carousel"}]`},
		{"missing title", `[{"kind": "intro"}]`},
		{"option missing label", `[{"title": "Goal", "kind": "multi-select", "options": [{"cost": 1}]}]`},
		{"negative cost", `[{"title": "Goal", "kind": "multi-select", "options": [{"label": "x", "cost": -1}]}]`},
		{"empty catalog", `[]`},
		{"not an array", `{"title": "Goal"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFileDegradesToEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "Welcome", "kind": "intro"}]`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.validate())

	// The default flow ends on the model gate.
	last := c.Step(c.Len() - 1)
	assert.Equal(t, KindCustom, last.Kind)

	// It carries both free and priced options somewhere.
	var sawNil, sawZero, sawPriced bool
	for _, s := range c.Steps {
		for _, o := range s.Options {
			switch {
			case o.Cost == nil:
				sawNil = true
			case *o.Cost == 0:
				sawZero = true
			default:
				sawPriced = true
			}
		}
	}
	assert.True(t, sawNil && sawZero && sawPriced)
}

func TestLoadStatusSteps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Dispatching", "icon": "x"},
		{"name": "Synthesis", "substeps": ["a", "b"], "animation": "pulse"}
	]`), 0644))

	steps, err := LoadStatusSteps(path)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Dispatching", steps[0].Name)
	assert.Equal(t, []string{"a", "b"}, steps[1].Substeps)

	_, err = LoadStatusSteps(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

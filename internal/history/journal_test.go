package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_RecordAndReplay(t *testing.T) {
	ctx := context.Background()
	j, err := Open(ctx, t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	first, err := j.Record(ctx, Run{
		Prompt:        "compare caching strategies",
		Models:        []string{"model-x", "model-y"},
		Pattern:       "gut",
		OutputFormat:  "txt",
		EstimatedCost: 0.45,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID, "an ID is assigned on record")
	assert.False(t, first.When.IsZero(), "a timestamp is assigned on record")

	_, err = j.Record(ctx, Run{
		Prompt:       "why did it fail",
		Models:       []string{"model-x", "model-y"},
		Pattern:      "confidence analysis",
		Errored:      true,
		ErrorMessage: "provider quota exceeded",
	})
	require.NoError(t, err)

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, "compare caching strategies", runs[0].Prompt)
	assert.InDelta(t, 0.45, runs[0].EstimatedCost, 1e-9)
	assert.True(t, runs[1].Errored)
	assert.Equal(t, "provider quota exceeded", runs[1].ErrorMessage)
}

func TestJournal_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	j, err := Open(ctx, dir)
	require.NoError(t, err)
	_, err = j.Record(ctx, Run{Prompt: "persisted", Pattern: "gut", When: time.Now()})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j2, err := Open(ctx, dir)
	require.NoError(t, err)
	defer j2.Close()

	runs, err := j2.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].Prompt)
}

func TestSubjectFor_SlugifiesPattern(t *testing.T) {
	assert.Equal(t, "ultrai.runs.gut", subjectFor("gut"))
	assert.Equal(t, "ultrai.runs.confidence-analysis", subjectFor("Confidence Analysis"))
	assert.Equal(t, "ultrai.runs.unknown", subjectFor("***"))
}

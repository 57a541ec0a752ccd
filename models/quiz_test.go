package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogQuiz(raw string) *Quiz {
	return &Quiz{ID: 1, Type: QuizTypePersonality, Personalities: &raw}
}

func TestHasPersonalityCatalog(t *testing.T) {
	assert.False(t, (&Quiz{}).HasPersonalityCatalog())
	assert.False(t, catalogQuiz("   ").HasPersonalityCatalog())
	assert.True(t, catalogQuiz(`[]`).HasPersonalityCatalog())
}

func TestPersonalityCatalogDecodes(t *testing.T) {
	quiz := catalogQuiz(`[{"id":"A","name":"Alpha","emoji":"🦁"},{"id":"B","name":"Beta"}]`)
	defs, err := quiz.PersonalityCatalog()
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "A", defs[0].ID)
	assert.Equal(t, "Alpha", defs[0].Name)
	assert.Equal(t, "🦁", defs[0].Emoji)
	assert.Equal(t, "Beta", defs[1].Name)
}

func TestPersonalityCatalogUnwrapsDoubleEncoding(t *testing.T) {
	quiz := catalogQuiz(`"[{\"id\":\"A\",\"name\":\"Alpha\"}]"`)
	defs, err := quiz.PersonalityCatalog()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "Alpha", defs[0].Name)
}

func TestPersonalityCatalogMalformed(t *testing.T) {
	_, err := catalogQuiz(`{{{not json`).PersonalityCatalog()
	assert.Error(t, err)
}

func TestPersonalityCatalogAbsent(t *testing.T) {
	defs, err := (&Quiz{}).PersonalityCatalog()
	require.NoError(t, err)
	assert.Nil(t, defs)
}

func TestResultOutcomeNormalizesLegacyWinning(t *testing.T) {
	payload := `{"winning":"A","counts":{"A":2,"B":1},"percentages":{"A":66.67,"B":33.33}}`
	result := &Result{ID: 1, PersonalityData: &payload}

	outcome, err := result.Outcome()
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, "A", outcome.ID)
	assert.Equal(t, "A", outcome.Winning)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, outcome.Counts)
}

func TestResultOutcomeWithoutPayload(t *testing.T) {
	outcome, err := (&Result{}).Outcome()
	require.NoError(t, err)
	assert.Nil(t, outcome)
}

func TestResultOutcomeMalformedPayload(t *testing.T) {
	payload := `{"broken`
	_, err := (&Result{ID: 1, PersonalityData: &payload}).Outcome()
	assert.Error(t, err)
}

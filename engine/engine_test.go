package engine_test

import (
	"context"
	"testing"

	"quizforge/engine"
	"quizforge/models"
	"quizforge/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newEngine(t *testing.T) (*engine.Engine, *store.MemoryStore) {
	t.Helper()
	ms := store.NewMemoryStore()
	return engine.New(ms), ms
}

func triviaQuiz() *models.Quiz {
	return &models.Quiz{
		ID:    1,
		Title: "Starter Dev Trivia",
		Type:  models.QuizTypeTrivia,
		Questions: []models.Question{
			{
				ID:     10,
				QuizID: 1,
				Text:   "What is 5 + 5?",
				Answers: []models.Answer{
					{ID: 100, QuestionID: 10, Text: "9", IsCorrect: false},
					{ID: 101, QuestionID: 10, Text: "10", IsCorrect: true},
				},
			},
		},
	}
}

func taggedPersonalityQuiz() *models.Quiz {
	return &models.Quiz{
		ID:    2,
		Title: "Find Your Role",
		Type:  models.QuizTypePersonality,
		Questions: []models.Question{
			{
				ID:     20,
				QuizID: 2,
				Text:   "In a group project, you usually:",
				Answers: []models.Answer{
					{ID: 200, QuestionID: 20, Text: "Organize tasks", PersonalityTag: strPtr("leader")},
					{ID: 201, QuestionID: 20, Text: "Question everything", PersonalityTag: strPtr("thinker")},
				},
			},
		},
	}
}

func weightedPersonalityQuiz(answers []models.Answer) *models.Quiz {
	for i := range answers {
		answers[i].QuestionID = 30
	}
	return &models.Quiz{
		ID:            3,
		Title:         "Find Your Archetype",
		Type:          models.QuizTypePersonality,
		Personalities: strPtr(`[{"id":"A","name":"Alpha"},{"id":"B","name":"Beta"}]`),
		Questions: []models.Question{
			{ID: 30, QuizID: 3, Text: "Pick one:", Answers: answers},
		},
	}
}

func TestSubmitTriviaQuiz(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(triviaQuiz())

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 1, AnswerIDs: []uint{101}})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, 1, *result.Score)
	assert.Nil(t, result.Personality)
	assert.Nil(t, result.Outcome)
}

func TestSubmitTriviaQuizEmptySubmissionScoresZero(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(triviaQuiz())

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 1})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, 0, *result.Score)
}

func TestSubmitUnknownQuiz(t *testing.T) {
	eng, _ := newEngine(t)

	_, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 99, AnswerIDs: []uint{1}})
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestSubmitAnswerFromAnotherQuiz(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(triviaQuiz())
	ms.AddQuiz(taggedPersonalityQuiz())

	// Answer 200 belongs to quiz 2, not quiz 1.
	_, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 1, AnswerIDs: []uint{101, 200}})
	assert.ErrorIs(t, err, engine.ErrInvalidSubmission)
}

func TestSubmitUnknownAnswerID(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(triviaQuiz())

	_, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 1, AnswerIDs: []uint{101, 999}})
	assert.ErrorIs(t, err, engine.ErrInvalidSubmission)
}

// Duplicate ids collapse to a set before validation, so [101, 101] scores as
// one answer. Long-standing behavior, asserted here so it does not drift.
func TestSubmitDuplicateAnswerIDsCollapse(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(triviaQuiz())

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 1, AnswerIDs: []uint{101, 101}})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, 1, *result.Score)
}

func TestSubmitTaggedPersonalityQuiz(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(taggedPersonalityQuiz())

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 2, AnswerIDs: []uint{200}})
	require.NoError(t, err)
	assert.Nil(t, result.Score)
	require.NotNil(t, result.Personality)
	assert.Equal(t, "leader", *result.Personality)
	assert.Nil(t, result.Outcome)
}

func TestSubmitWeightedPersonalityQuiz(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(weightedPersonalityQuiz([]models.Answer{
		{ID: 300, Text: "Take charge", PersonalityWeights: strPtr(`{"A": 2}`)},
		{ID: 301, Text: "Support the team", PersonalityWeights: strPtr(`{"B": 1}`)},
	}))

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 3, AnswerIDs: []uint{300, 301}})
	require.NoError(t, err)
	require.NotNil(t, result.Personality)
	assert.Equal(t, "Alpha", *result.Personality)
	require.NotNil(t, result.Outcome)
	assert.Equal(t, "A", result.Outcome.ID)
	assert.Equal(t, "Alpha", result.Outcome.Name)
	assert.Equal(t, 2.0, result.Outcome.Score)
	assert.Equal(t, map[string]float64{"A": 2, "B": 1}, result.Outcome.AllScores)
}

func TestSubmitWeightedQuizFallsBackToTags(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(weightedPersonalityQuiz([]models.Answer{
		{ID: 300, Text: "Take charge", PersonalityWeights: strPtr(`{"A": 0, "B": 0}`), PersonalityTag: strPtr("A")},
		{ID: 301, Text: "Support the team"},
	}))

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 3, AnswerIDs: []uint{300, 301}})
	require.NoError(t, err)
	require.NotNil(t, result.Personality)
	assert.Equal(t, "Alpha", *result.Personality)
	require.NotNil(t, result.Outcome)
	assert.Equal(t, "A", result.Outcome.ID)
	assert.Equal(t, map[string]int{"A": 1}, result.Outcome.Counts)
	assert.Equal(t, map[string]float64{"A": 100}, result.Outcome.Percentages)
	assert.Nil(t, result.Outcome.AllScores)
}

func TestSubmitWithNoSignalPersistsEmptyResult(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(weightedPersonalityQuiz([]models.Answer{
		{ID: 300, Text: "Shrug"},
		{ID: 301, Text: "Shrug harder"},
	}))

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 3, AnswerIDs: []uint{300, 301}})
	require.NoError(t, err)
	assert.Nil(t, result.Score)
	assert.Nil(t, result.Personality)
	assert.Nil(t, result.Outcome)

	// The result row exists and stays fetchable.
	again, err := eng.GetResult(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, again.ID)
}

func TestSubmitWithMalformedCatalogFallsBackToTags(t *testing.T) {
	eng, ms := newEngine(t)
	quiz := taggedPersonalityQuiz()
	quiz.Personalities = strPtr(`{{{not json`)
	ms.AddQuiz(quiz)

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 2, AnswerIDs: []uint{200}})
	require.NoError(t, err)
	require.NotNil(t, result.Personality)
	assert.Equal(t, "leader", *result.Personality)
	require.NotNil(t, result.Outcome)
	assert.Equal(t, "leader", result.Outcome.ID)
	assert.Equal(t, map[string]int{"leader": 1}, result.Outcome.Counts)
}

func TestGetResultUnknownID(t *testing.T) {
	eng, _ := newEngine(t)
	_, err := eng.GetResult(context.Background(), 42)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestGetResultAttachesContent(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(taggedPersonalityQuiz())
	ms.AddContent(&models.PersonalityContent{
		Personality: "leader",
		Quote:       "Lead by example.",
		GifURL:      "https://example.com/leader.gif",
		Joke:        "Why did the leader bring a map?",
	})

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 2, AnswerIDs: []uint{200}})
	require.NoError(t, err)
	require.NotNil(t, result.Content)
	assert.Equal(t, "leader", result.Content.Personality)
	assert.Equal(t, "Lead by example.", result.Content.Quote)
}

func TestGetResultIsIdempotent(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(weightedPersonalityQuiz([]models.Answer{
		{ID: 300, PersonalityWeights: strPtr(`{"A": 2}`)},
		{ID: 301, PersonalityWeights: strPtr(`{"B": 1}`)},
	}))

	result, err := eng.SubmitQuiz(context.Background(), engine.Submission{QuizID: 3, AnswerIDs: []uint{300, 301}})
	require.NoError(t, err)

	first, err := eng.GetResult(context.Background(), result.ID)
	require.NoError(t, err)
	second, err := eng.GetResult(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetResultDropsCorruptPayload(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(taggedPersonalityQuiz())
	ms.PutResult(&models.Result{
		ID:              7,
		QuizID:          2,
		Personality:     strPtr("leader"),
		PersonalityData: strPtr(`{"broken`),
	})

	result, err := eng.GetResult(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, result.Outcome)
	require.NotNil(t, result.Personality)
	assert.Equal(t, "leader", *result.Personality)
}

func TestGetResultBackfillsDisplayName(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(&models.Quiz{
		ID:            5,
		Type:          models.QuizTypePersonality,
		Personalities: strPtr(`[{"id":"A","name":"Alpha","description":"takes charge","emoji":"🅰️"}]`),
	})
	// Legacy payload: only the winning id was recorded.
	ms.PutResult(&models.Result{
		ID:              8,
		QuizID:          5,
		Personality:     strPtr("Alpha"),
		PersonalityData: strPtr(`{"winning":"A","counts":{"A":2},"percentages":{"A":100}}`),
	})

	result, err := eng.GetResult(context.Background(), 8)
	require.NoError(t, err)
	require.NotNil(t, result.Outcome)
	assert.Equal(t, "A", result.Outcome.ID)
	assert.Equal(t, "Alpha", result.Outcome.Name)
	assert.Equal(t, "takes charge", result.Outcome.Description)
	assert.Equal(t, map[string]int{"A": 2}, result.Outcome.Counts)
}

func TestGetResultBackfillFillsOnlyAbsentFields(t *testing.T) {
	eng, ms := newEngine(t)
	ms.AddQuiz(&models.Quiz{
		ID:            5,
		Type:          models.QuizTypePersonality,
		Personalities: strPtr(`[{"id":"A","name":"Alpha","description":"catalog text"}]`),
	})
	ms.PutResult(&models.Result{
		ID:              9,
		QuizID:          5,
		PersonalityData: strPtr(`{"id":"A","description":"stored text"}`),
	})

	result, err := eng.GetResult(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, result.Outcome)
	assert.Equal(t, "Alpha", result.Outcome.Name)
	assert.Equal(t, "stored text", result.Outcome.Description)
}

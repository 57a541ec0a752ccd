package engine

import (
	"log"
	"math"
	"strings"

	"quizforge/models"
)

// strategyResult is a winner produced by one scoring strategy. Payload is nil
// when only the legacy personality string applies.
type strategyResult struct {
	Personality string
	Payload     *models.PersonalityOutcome
}

// scoringStrategy produces (nil, nil) when it ran cleanly but found no winner.
type scoringStrategy struct {
	name string
	run  func() (*strategyResult, error)
}

// personalityStrategies returns the ordered strategy chain for a personality
// quiz: weighted scoring when the quiz declares an outcome catalog, then tag
// counting as the fallback (and the only strategy for catalog-less quizzes).
func personalityStrategies(quiz *models.Quiz, answers []models.Answer) []scoringStrategy {
	var strategies []scoringStrategy
	if quiz.HasPersonalityCatalog() {
		strategies = append(strategies, scoringStrategy{
			name: "weighted",
			run: func() (*strategyResult, error) {
				catalog, err := quiz.PersonalityCatalog()
				if err != nil {
					return nil, err
				}
				if len(catalog) == 0 {
					return nil, nil
				}
				outcome := WeightedOutcome(answers, catalog)
				if outcome == nil {
					return nil, nil
				}
				personality := outcome.Name
				if personality == "" {
					personality = outcome.ID
				}
				return &strategyResult{Personality: personality, Payload: outcome}, nil
			},
		})
	}
	strategies = append(strategies, scoringStrategy{
		name: "tag-count",
		run: func() (*strategyResult, error) {
			return tagOutcome(quiz, answers), nil
		},
	})
	return strategies
}

// TriviaScore counts the correct answers among those submitted. Empty input
// scores zero.
func TriviaScore(answers []models.Answer) int {
	score := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			score++
		}
	}
	return score
}

// WeightedOutcome accumulates each answer's weight contributions per outcome
// defined in the catalog. Unknown outcome ids are ignored and answers with
// undecodable weights are skipped. Returns nil when every accumulator stayed
// exactly zero. Ties break toward the outcome defined first in the catalog.
func WeightedOutcome(answers []models.Answer, catalog []models.PersonalityType) *models.PersonalityOutcome {
	scores := make(map[string]float64, len(catalog))
	for _, def := range catalog {
		scores[def.ID] = 0
	}

	for _, answer := range answers {
		weights, err := answer.WeightMap()
		if err != nil {
			log.Printf("skipping weights on answer %d: %v", answer.ID, err)
			continue
		}
		for id, weight := range weights {
			if _, known := scores[id]; !known {
				continue
			}
			scores[id] += weight
		}
	}

	var winner *models.PersonalityType
	best := 0.0
	signal := false
	for i := range catalog {
		s := scores[catalog[i].ID]
		if s != 0 {
			signal = true
		}
		if winner == nil || s > best {
			winner = &catalog[i]
			best = s
		}
	}
	if !signal || winner == nil {
		return nil
	}

	return &models.PersonalityOutcome{
		ID:          winner.ID,
		Name:        winner.Name,
		Description: winner.Description,
		Emoji:       winner.Emoji,
		ImageURL:    winner.ImageURL,
		Score:       best,
		AllScores:   scores,
	}
}

// tagOutcome counts legacy personality tags. For quizzes with an outcome
// catalog it maps the winning tag to a definition name when one matches by id
// and synthesizes a counts/percentages payload with display fields left
// absent; for catalog-less quizzes the bare tag is the whole result.
func tagOutcome(quiz *models.Quiz, answers []models.Answer) *strategyResult {
	tally := countTags(answers)
	winner, ok := tally.winner()
	if !ok {
		return nil
	}

	if !quiz.HasPersonalityCatalog() {
		return &strategyResult{Personality: winner}
	}

	name := winner
	if catalog, err := quiz.PersonalityCatalog(); err == nil {
		for _, def := range catalog {
			if def.ID == winner {
				if def.Name != "" {
					name = def.Name
				}
				break
			}
		}
	}

	return &strategyResult{
		Personality: name,
		Payload: &models.PersonalityOutcome{
			ID:          winner,
			Winning:     winner,
			Name:        name,
			Counts:      tally.counts,
			Percentages: tally.percentages(),
		},
	}
}

// tagTally counts tags in first-seen order so ties break the same way on
// every run over the same input.
type tagTally struct {
	order  []string
	counts map[string]int
}

func countTags(answers []models.Answer) *tagTally {
	t := &tagTally{counts: make(map[string]int)}
	for _, answer := range answers {
		if answer.PersonalityTag == nil {
			continue
		}
		tag := strings.TrimSpace(*answer.PersonalityTag)
		if tag == "" {
			continue
		}
		if _, seen := t.counts[tag]; !seen {
			t.order = append(t.order, tag)
		}
		t.counts[tag]++
	}
	return t
}

func (t *tagTally) winner() (string, bool) {
	best := ""
	bestCount := 0
	for _, tag := range t.order {
		if t.counts[tag] > bestCount {
			best = tag
			bestCount = t.counts[tag]
		}
	}
	return best, bestCount > 0
}

// percentages reports each tag's share of the tagged answers, rounded to two
// decimal places.
func (t *tagTally) percentages() map[string]float64 {
	total := 0
	for _, count := range t.counts {
		total += count
	}
	if total == 0 {
		return nil
	}
	out := make(map[string]float64, len(t.counts))
	for tag, count := range t.counts {
		out[tag] = math.Round(float64(count)/float64(total)*10000) / 100
	}
	return out
}

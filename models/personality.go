package models

// PersonalityType is one outcome a personality quiz can award, with its display
// metadata. A quiz stores zero of these (legacy tag mode) or one or more
// (weighted mode).
type PersonalityType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// PersonalityOutcome is the structured payload persisted alongside a
// personality result. Weighted scoring fills id/name/display/score/all_scores;
// the tag fallback fills winning/counts/percentages. Consumers treat every
// field as optional except the winner identifier.
type PersonalityOutcome struct {
	ID          string             `json:"id,omitempty"`
	Winning     string             `json:"winning,omitempty"` // legacy alias for ID
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Emoji       string             `json:"emoji,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	Score       float64            `json:"score,omitempty"`
	AllScores   map[string]float64 `json:"all_scores,omitempty"`
	Counts      map[string]int     `json:"counts,omitempty"`
	Percentages map[string]float64 `json:"percentages,omitempty"`
}

package analyses

import "time"

// DocumentSection is one ranked chunk of an analyzed document.
type DocumentSection struct {
	Page    int     `json:"page"`
	Rank    int     `json:"rank"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
	Summary string  `json:"summary"`
}

// Analysis is the persisted outcome of one analyze request. It is immutable
// once created.
type Analysis struct {
	ID        string            `json:"id"`
	Persona   string            `json:"persona"`
	Job       string            `json:"job"`
	Results   []DocumentSection `json:"results"`
	Timestamp time.Time         `json:"timestamp"`
}

// scoredSection is a chunk scored against the query before ranking.
type scoredSection struct {
	Page    int
	Text    string
	Score   float64
	Summary string
}

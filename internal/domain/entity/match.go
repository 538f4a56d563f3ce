package entity

// MatchOutcome classifies a match by how the caller must act on it.
type MatchOutcome string

const (
	// MatchConfident is actionable without confirmation (confidence > 0.7).
	MatchConfident MatchOutcome = "confident"
	// MatchAmbiguous requires an explicit yes/no before acting (0.3 < confidence <= 0.7).
	MatchAmbiguous MatchOutcome = "ambiguous"
	// MatchNotFound means no point of interest scored above 0.3.
	MatchNotFound MatchOutcome = "not_found"
	// MatchNoCommand means the transcript held nothing after removing intent phrasing.
	MatchNoCommand MatchOutcome = "no_command"
)

// String returns the string representation of the MatchOutcome.
func (o MatchOutcome) String() string {
	return string(o)
}

// MatchResult is the best gazetteer candidate for a query.
type MatchResult struct {
	Key        string          `json:"key"`
	Point      PointOfInterest `json:"point"`
	Confidence float64         `json:"confidence"`
}

// Resolution is the full outcome of resolving a transcript to a destination.
// Result is nil unless Outcome is MatchConfident or MatchAmbiguous.
type Resolution struct {
	Transcript string       `json:"transcript"`
	Command    string       `json:"command,omitempty"`
	Outcome    MatchOutcome `json:"outcome"`
	Result     *MatchResult `json:"result,omitempty"`
}

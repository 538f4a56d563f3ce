// Package matcher turns noisy transcripts into gazetteer destinations.
package matcher

import (
	"slices"
	"strings"
	"unicode/utf8"

	"campusnav/internal/domain/entity"
)

// Confidence levels per rule, strongest first.
const (
	ConfidenceExactName       = 1.0
	ConfidenceContainsName    = 0.8
	ConfidenceContainsKeyword = 0.7
	ConfidenceKeywordWord     = 0.5
	ConfidenceNameWord        = 0.4

	// PublishThreshold: candidates at or below are reported as not found.
	PublishThreshold = 0.3
	// ConfirmThreshold: candidates at or below need a yes/no confirmation.
	ConfirmThreshold = 0.7

	minWordLength = 2
)

type indexedPoint struct {
	point        entity.PointOfInterest
	name         string
	nameWords    []string
	keywords     []string
	keywordWords []string
}

// Matcher scores queries against a fixed set of points of interest.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	points []indexedPoint
}

// New indexes points. Points are ordered by key so that ties resolve to the
// lexically lowest key.
func New(points []entity.PointOfInterest) *Matcher {
	indexed := make([]indexedPoint, 0, len(points))
	for _, p := range points {
		name := normalize(p.Name)
		ip := indexedPoint{
			point:     p,
			name:      name,
			nameWords: significantWords(name),
		}
		for _, keyword := range p.Keywords {
			keyword = normalize(keyword)
			if keyword == "" {
				continue
			}
			ip.keywords = append(ip.keywords, keyword)
			ip.keywordWords = append(ip.keywordWords, significantWords(keyword)...)
		}
		indexed = append(indexed, ip)
	}

	slices.SortFunc(indexed, func(a, b indexedPoint) int {
		return strings.Compare(a.point.Key, b.point.Key)
	})

	return &Matcher{points: indexed}
}

func significantWords(phrase string) []string {
	var words []string
	for _, word := range strings.Split(phrase, " ") {
		if utf8.RuneCountInString(word) > minWordLength {
			words = append(words, word)
		}
	}

	return words
}

// score returns the confidence of query against a single point, 0 when no rule fires.
// Rules are evaluated independently and the maximum wins.
func (ip indexedPoint) score(query string) float64 {
	var confidence float64
	raise := func(c float64) {
		confidence = max(confidence, c)
	}

	if query == ip.name {
		raise(ConfidenceExactName)
	}
	if strings.Contains(query, ip.name) {
		raise(ConfidenceContainsName)
	}
	for _, keyword := range ip.keywords {
		if strings.Contains(query, keyword) {
			raise(ConfidenceContainsKeyword)
		}
	}
	for _, word := range ip.keywordWords {
		if strings.Contains(query, word) {
			raise(ConfidenceKeywordWord)
		}
	}
	for _, word := range ip.nameWords {
		if strings.Contains(query, word) {
			raise(ConfidenceNameWord)
		}
	}

	return confidence
}

// Best returns the highest scoring point regardless of thresholds.
// ok is false when no rule fired for any point.
func (m *Matcher) Best(query string) (result entity.MatchResult, ok bool) {
	query = normalize(query)
	if query == "" {
		return entity.MatchResult{}, false
	}

	for _, ip := range m.points {
		confidence := ip.score(query)
		if confidence > result.Confidence {
			result = entity.MatchResult{
				Key:        ip.point.Key,
				Point:      ip.point,
				Confidence: confidence,
			}
		}
	}

	return result, result.Confidence > 0
}

// Match classifies the best candidate for query.
func (m *Matcher) Match(query string) (entity.MatchOutcome, *entity.MatchResult) {
	best, ok := m.Best(query)
	if !ok || best.Confidence <= PublishThreshold {
		return entity.MatchNotFound, nil
	}

	if best.Confidence <= ConfirmThreshold {
		return entity.MatchAmbiguous, &best
	}

	return entity.MatchConfident, &best
}

// Resolve runs command extraction followed by matching.
func (m *Matcher) Resolve(transcript string) entity.Resolution {
	resolution := entity.Resolution{Transcript: transcript}

	command, ok := ExtractCommand(transcript)
	if !ok {
		resolution.Outcome = entity.MatchNoCommand

		return resolution
	}

	resolution.Command = command
	resolution.Outcome, resolution.Result = m.Match(command)

	return resolution
}

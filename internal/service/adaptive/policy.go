// Package adaptive derives the recommended next difficulty from a learner's
// recent answers in one subject.
package adaptive

import "github.com/arlearn/assessment-api/internal/domain/entity"

// Policy holds the adaptive difficulty settings
type Policy struct {
	// WindowSize is how many of the newest attempts in a subject are considered.
	WindowSize int

	// HardThreshold: window accuracy at or above it recommends "hard".
	HardThreshold float64

	// EasyThreshold: window accuracy strictly below it recommends "easy".
	EasyThreshold float64

	// DefaultAccuracy is used when the window is empty.
	DefaultAccuracy float64
}

// DefaultPolicy returns the standard policy: last 5 attempts, >=0.8 hard, <0.4 easy.
func DefaultPolicy() Policy {
	return Policy{
		WindowSize:      5,
		HardThreshold:   0.8,
		EasyThreshold:   0.4,
		DefaultAccuracy: 0.5,
	}
}

// Normalize replaces unset or unusable settings with the defaults.
// Zero values count as unset.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.WindowSize <= 0 {
		p.WindowSize = def.WindowSize
	}
	if p.HardThreshold <= 0 || p.HardThreshold > 1 {
		p.HardThreshold = def.HardThreshold
	}
	if p.EasyThreshold <= 0 || p.EasyThreshold >= p.HardThreshold {
		p.EasyThreshold = def.EasyThreshold
	}
	if p.DefaultAccuracy <= 0 || p.DefaultAccuracy > 1 {
		p.DefaultAccuracy = def.DefaultAccuracy
	}
	return p
}

// WindowAccuracy is the share of correct answers in window, or DefaultAccuracy for an empty window.
// Only the first WindowSize entries are counted.
func (p Policy) WindowAccuracy(window []entity.AssessmentResult) float64 {
	if len(window) > p.WindowSize {
		window = window[:p.WindowSize]
	}
	if len(window) == 0 {
		return p.DefaultAccuracy
	}

	correct := 0
	for i := range window {
		if window[i].IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(window))
}

// NextDifficulty maps a window accuracy to a difficulty tag.
func (p Policy) NextDifficulty(accuracy float64) string {
	switch {
	case accuracy >= p.HardThreshold:
		return entity.DifficultyHard
	case accuracy < p.EasyThreshold:
		return entity.DifficultyEasy
	default:
		return entity.DifficultyMedium
	}
}

// Recommend combines WindowAccuracy and NextDifficulty.
func (p Policy) Recommend(window []entity.AssessmentResult) (string, float64) {
	accuracy := p.WindowAccuracy(window)
	return p.NextDifficulty(accuracy), accuracy
}

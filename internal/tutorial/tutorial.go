package tutorial

import (
	"errors"
	"time"
)

var ErrTutorialNotFound = errors.New("tutorial not found")

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Tutorial struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	VideoURL    string     `json:"videoUrl"`
	Description string     `json:"description"`
	Views       int        `json:"views"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Filter narrows tutorial listings, empty fields mean no restriction.
// Search matches title and description, case-insensitive substring.
type Filter struct {
	Category   string
	Difficulty Difficulty
	Search     string
}

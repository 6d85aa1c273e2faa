package exercise

import (
	"errors"
	"time"

	"github.com/dusanmitic/fittrack/internal/workout"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseNameTaken = errors.New("exercise name already taken")
)

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

// Exercise is a catalog entry describing how to perform an exercise.
// Informational only: workout submissions burn calories by the rate
// table, not by this catalog.
type Exercise struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Category          workout.Category `json:"category"`
	CaloriesPerMinute float64          `json:"caloriesPerMinute"`
	Difficulty        Difficulty       `json:"difficulty"`
	Description       string           `json:"description"`
	Instructions      []string         `json:"instructions"`
	VideoURL          string           `json:"videoUrl"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// Filter narrows catalog listings, empty fields mean no restriction.
// Search matches name and description, case-insensitive substring.
type Filter struct {
	Category   workout.Category
	Difficulty Difficulty
	Search     string
}

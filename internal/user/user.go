package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

type FitnessGoal string

const (
	GoalLoseWeight  FitnessGoal = "lose_weight"
	GoalGainMuscle  FitnessGoal = "gain_muscle"
	GoalStayFit     FitnessGoal = "stay_fit"
	GoalImproveTone FitnessGoal = "improve_tone"
)

const (
	DefaultWeightKg = 70
	DefaultHeightCm = 170
	DefaultAge      = 25
)

func (g FitnessGoal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalGainMuscle, GoalStayFit, GoalImproveTone:
		return true
	}
	return false
}

type User struct {
	ID                  int         `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	PasswordHash        string      `json:"-"`
	WeightKg            float64     `json:"weightKg"`
	HeightCm            float64     `json:"heightCm"`
	Age                 int         `json:"age"`
	Goal                FitnessGoal `json:"goal"`
	IsAdmin             bool        `json:"isAdmin"`
	TotalCaloriesBurned int         `json:"totalCaloriesBurned"`
	CreatedAt           time.Time   `json:"createdAt"`
}

// NewUser returns a user with profile defaults applied. The caller
// sets the password hash before persisting.
func NewUser(name, email string) *User {
	return &User{
		Name:      name,
		Email:     email,
		WeightKg:  DefaultWeightKg,
		HeightCm:  DefaultHeightCm,
		Age:       DefaultAge,
		Goal:      GoalStayFit,
		CreatedAt: time.Now(),
	}
}

type ProfileUpdate struct {
	Name     string      `json:"name"`
	WeightKg float64     `json:"weightKg"`
	HeightCm float64     `json:"heightCm"`
	Age      int         `json:"age"`
	Goal     FitnessGoal `json:"goal"`
}

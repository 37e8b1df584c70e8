package domain

import (
	"math"
	"time"
)

// Ranking is a leaderboard for one exercise.
type Ranking struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string         `bson:"muscleGroup" json:"muscleGroup"`
	Exercise    string         `bson:"exercise" json:"exercise"`
	Entries     []RankingEntry `bson:"entries" json:"entries"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// RankingEntry is one athlete's result. Value is the ranked figure; for lifts
// recorded with weight and reps it is the estimated one-rep max.
type RankingEntry struct {
	UserID    string  `bson:"userId" json:"userId"`
	UserName  string  `bson:"userName" json:"userName"`
	Weight    float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Reps      int     `bson:"reps,omitempty" json:"reps,omitempty"`
	OneRepMax float64 `bson:"oneRepMax,omitempty" json:"oneRepMax,omitempty"`
	Value     float64 `bson:"value" json:"value"`
	Unit      string  `bson:"unit" json:"unit"`
	Date      string  `bson:"date" json:"date"` // YYYY-MM-DD
}

// CalculateOneRepMax estimates a one-rep max with the Epley formula.
// A single rep is already a max, so the weight is returned unchanged.
func CalculateOneRepMax(weight float64, reps int) float64 {
	if reps <= 1 {
		return weight
	}
	return math.Round(weight * (1 + float64(reps)/30))
}

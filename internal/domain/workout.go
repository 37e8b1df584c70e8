package domain

import (
	"math"
	"strings"
	"time"
)

// PlanStatus is the lifecycle state of a workout plan.
type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanPublished PlanStatus = "published"
	PlanArchived  PlanStatus = "archived"
)

// OriginalVariantID marks a plan whose base exercises are active.
const OriginalVariantID = "original"

// Exercise is one entry of a workout plan.
type Exercise struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Sets        int     `bson:"sets" json:"sets"`
	Reps        int     `bson:"reps" json:"reps"`
	Weight      float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration    int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Rest        int     `bson:"rest" json:"rest"`                             // seconds
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// MediaFiles groups object-storage URLs attached to a plan.
type MediaFiles struct {
	Images []string `bson:"images" json:"images"`
	Videos []string `bson:"videos" json:"videos"`
	Audio  []string `bson:"audio" json:"audio"`
}

// WorkoutPlan represents a coach-authored training plan.
type WorkoutPlan struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Name          string     `bson:"name" json:"name"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	Coach         string     `bson:"coach" json:"coach"`
	StartDate     string     `bson:"startDate,omitempty" json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate       string     `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Duration      int        `bson:"duration" json:"duration"` // days
	Exercises     []Exercise `bson:"exercises" json:"exercises"`
	Category      string     `bson:"category,omitempty" json:"category,omitempty"`
	Status        PlanStatus `bson:"status" json:"status"`
	MediaFiles    MediaFiles `bson:"mediaFiles" json:"mediaFiles"`
	Tags          []string   `bson:"tags" json:"tags"`
	Order         int        `bson:"order" json:"order"`
	Difficulty    int        `bson:"difficulty,omitempty" json:"difficulty,omitempty"` // 1-5
	TargetMuscles []string   `bson:"targetMuscles" json:"targetMuscles"`
	FolderID      string     `bson:"folderId,omitempty" json:"folderId,omitempty"` // empty means root
	Color         string     `bson:"color,omitempty" json:"color,omitempty"`

	Variants        []WorkoutVariant `bson:"variants,omitempty" json:"variants,omitempty"`
	ActiveVariantID string           `bson:"activeVariantId,omitempty" json:"activeVariantId,omitempty"`
	DurationWeeks   int              `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`

	// Athlete ids the plan was handed out to.
	AssociatedAthletes []string `bson:"associatedAthletes" json:"associatedAthletes"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DurationWeeksFor derives a week count from a duration in days, at least one.
func DurationWeeksFor(days int) int {
	if days <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(float64(days)/7)))
}

// ApplyDefaults fills fields left empty by older clients.
func (p *WorkoutPlan) ApplyDefaults() {
	if p.Category == "" {
		p.Category = "strength"
	}
	if p.Status == "" {
		p.Status = PlanPublished
	}
	if p.Difficulty == 0 {
		p.Difficulty = 1
	}
	if p.Exercises == nil {
		p.Exercises = []Exercise{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.TargetMuscles == nil {
		p.TargetMuscles = []string{}
	}
	if p.MediaFiles.Images == nil {
		p.MediaFiles.Images = []string{}
	}
	if p.MediaFiles.Videos == nil {
		p.MediaFiles.Videos = []string{}
	}
	if p.MediaFiles.Audio == nil {
		p.MediaFiles.Audio = []string{}
	}
	if p.ActiveVariantID == "" {
		p.ActiveVariantID = OriginalVariantID
	}
	if p.DurationWeeks == 0 {
		p.DurationWeeks = DurationWeeksFor(p.Duration)
	}
	p.AssociatedAthletes = dedupStrings(p.AssociatedAthletes)
}

// Touch stamps UpdatedAt (and CreatedAt on first save).
func (p *WorkoutPlan) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// Variant returns the plan's variant with the given id.
func (p *WorkoutPlan) Variant(id string) (*WorkoutVariant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// ExercisesFor resolves the exercise list for a plan reference: the base
// exercises, or the variant's overrides applied on top of them.
func (p *WorkoutPlan) ExercisesFor(variantID string) ([]Exercise, bool) {
	if variantID == "" || variantID == OriginalVariantID {
		out := make([]Exercise, len(p.Exercises))
		copy(out, p.Exercises)
		return out, true
	}
	v, ok := p.Variant(variantID)
	if !ok {
		return nil, false
	}
	return v.Apply(p.Exercises), true
}

// ExerciseChanges holds sparse overrides; nil means "keep the base value".
type ExerciseChanges struct {
	Sets     *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps     *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration *int     `bson:"duration,omitempty" json:"duration,omitempty"`
	Rest     *int     `bson:"rest,omitempty" json:"rest,omitempty"`
}

// ExerciseModification targets one exercise of the parent plan.
type ExerciseModification struct {
	ExerciseID string          `bson:"exerciseId" json:"exerciseId"`
	Changes    ExerciseChanges `bson:"changes" json:"changes"`
}

// WorkoutVariant is a named set of overrides scoped to one parent plan.
type WorkoutVariant struct {
	ID              string                 `bson:"id" json:"id"`
	Name            string                 `bson:"name" json:"name"`
	Description     string                 `bson:"description,omitempty" json:"description,omitempty"`
	ParentWorkoutID string                 `bson:"parentWorkoutId" json:"parentWorkoutId"`
	Exercises       []Exercise             `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Modifications   []ExerciseModification `bson:"modifications" json:"modifications"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// Apply returns a copy of base with the variant's modifications applied.
// A variant carrying its own exercise list replaces the base list first.
func (v *WorkoutVariant) Apply(base []Exercise) []Exercise {
	src := base
	if len(v.Exercises) > 0 {
		src = v.Exercises
	}
	out := make([]Exercise, len(src))
	copy(out, src)

	for _, mod := range v.Modifications {
		for i := range out {
			if out[i].ID != mod.ExerciseID {
				continue
			}
			c := mod.Changes
			if c.Sets != nil {
				out[i].Sets = *c.Sets
			}
			if c.Reps != nil {
				out[i].Reps = *c.Reps
			}
			if c.Weight != nil {
				out[i].Weight = *c.Weight
			}
			if c.Duration != nil {
				out[i].Duration = *c.Duration
			}
			if c.Rest != nil {
				out[i].Rest = *c.Rest
			}
		}
	}
	return out
}

func dedupStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestWorkoutPlan_ApplyDefaults(t *testing.T) {
	p := WorkoutPlan{Duration: 30, AssociatedAthletes: []string{" a1", "a1", "", "a2"}}
	p.ApplyDefaults()

	assert.Equal(t, "strength", p.Category)
	assert.Equal(t, PlanPublished, p.Status)
	assert.Equal(t, OriginalVariantID, p.ActiveVariantID)
	assert.Equal(t, 5, p.DurationWeeks)
	assert.Equal(t, []string{"a1", "a2"}, p.AssociatedAthletes)
	assert.NotNil(t, p.Tags)
	assert.NotNil(t, p.MediaFiles.Images)
}

func TestDurationWeeksFor(t *testing.T) {
	assert.Equal(t, 1, DurationWeeksFor(0))
	assert.Equal(t, 1, DurationWeeksFor(7))
	assert.Equal(t, 2, DurationWeeksFor(8))
}

func TestWorkoutVariant_Apply(t *testing.T) {
	base := []Exercise{
		{ID: "e1", Name: "Squat", Sets: 3, Reps: 10, Rest: 90},
		{ID: "e2", Name: "Bench", Sets: 4, Reps: 8, Rest: 120},
	}
	v := WorkoutVariant{
		ID:              "v1",
		ParentWorkoutID: "p1",
		Modifications: []ExerciseModification{
			{ExerciseID: "e2", Changes: ExerciseChanges{Sets: intPtr(5), Rest: intPtr(60)}},
			{ExerciseID: "missing", Changes: ExerciseChanges{Reps: intPtr(1)}},
		},
	}

	out := v.Apply(base)
	require.Len(t, out, 2)
	assert.Equal(t, base[0], out[0])
	assert.Equal(t, 5, out[1].Sets)
	assert.Equal(t, 8, out[1].Reps)
	assert.Equal(t, 60, out[1].Rest)
	assert.Equal(t, 4, base[1].Sets, "base slice must not be modified")
}

func TestWorkoutPlan_ExercisesFor(t *testing.T) {
	p := WorkoutPlan{
		ID:        "p1",
		Exercises: []Exercise{{ID: "e1", Sets: 3}},
		Variants: []WorkoutVariant{{
			ID:            "v1",
			Modifications: []ExerciseModification{{ExerciseID: "e1", Changes: ExerciseChanges{Sets: intPtr(6)}}},
		}},
	}

	ex, ok := p.ExercisesFor("")
	require.True(t, ok)
	assert.Equal(t, 3, ex[0].Sets)

	ex, ok = p.ExercisesFor("v1")
	require.True(t, ok)
	assert.Equal(t, 6, ex[0].Sets)

	_, ok = p.ExercisesFor("nope")
	assert.False(t, ok)
}

func TestUser_Normalize(t *testing.T) {
	u := User{
		Name:         "  Mario Rossi ",
		Role:         "Atleta",
		WorkoutPlans: []PlanRef{{PlanID: "p1"}, {PlanID: "p1"}, {PlanID: "p2", VariantID: "v1"}},
	}
	u.Normalize()

	assert.Equal(t, "Mario Rossi", u.Name)
	assert.Equal(t, RoleAthlete, u.Role)
	assert.Equal(t, MembershipPending, u.MembershipStatus)
	assert.Equal(t, PaymentUnpaid, u.PaymentStatus)
	assert.Len(t, u.WorkoutPlans, 2)
	assert.True(t, u.HasPlan("p2"))
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleCoach, NormalizeRole("COACH"))
	assert.Equal(t, RoleAthlete, NormalizeRole("athlete"))
	assert.Equal(t, RoleAdmin, NormalizeRole("owner"))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Atleta ")
	assert.True(t, ok)
	assert.Equal(t, RoleAthlete, r)
	r, ok = ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	for _, raw := range []string{"", "owner", "root"} {
		_, ok := ParseRole(raw)
		assert.False(t, ok, raw)
	}
}

func TestMembershipCard_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := MembershipCard{Status: CardActive, ExpiryDate: now.Add(-time.Hour)}
	assert.Equal(t, CardExpired, c.EffectiveStatus(now))

	c.ExpiryDate = now.Add(time.Hour)
	assert.Equal(t, CardActive, c.EffectiveStatus(now))
}

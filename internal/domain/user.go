package domain

import (
	"strings"
	"time"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// MembershipStatus tracks whether the athlete's gym membership is current.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipExpired MembershipStatus = "expired"
	MembershipPending MembershipStatus = "pending"
)

// PaymentStatus tracks the athlete's fee payments.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
)

// User represents a gym user (admin, coach or athlete).
type User struct {
	ID               string           `bson:"_id,omitempty" json:"id"`
	Name             string           `bson:"name" json:"name"`
	Email            string           `bson:"email" json:"email"`                                   // Should be unique
	PasswordHash     string           `bson:"passwordHash,omitempty" json:"passwordHash,omitempty"` // Stripped by API DTOs
	Role             Role             `bson:"role" json:"role"`
	MembershipStatus MembershipStatus `bson:"membershipStatus,omitempty" json:"membershipStatus,omitempty"`
	PaymentStatus    PaymentStatus    `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	Phone            string           `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate        string           `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Notes            string           `bson:"notes,omitempty" json:"notes,omitempty"`

	// Plans assigned to the athlete, optionally pinned to one variant.
	WorkoutPlans []PlanRef `bson:"workoutPlans" json:"workoutPlans"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}

// ParseRole accepts the known roles and "atleta", the legacy spelling of
// athlete.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "atleta", "athlete":
		return RoleAthlete, true
	case "coach":
		return RoleCoach, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// NormalizeRole is ParseRole for records already in storage: anything
// unknown becomes admin, as older clients wrote it. Input from callers is
// checked with ParseRole instead.
func NormalizeRole(raw string) Role {
	if r, ok := ParseRole(raw); ok {
		return r
	}
	return RoleAdmin
}

// Normalize trims the name, canonicalizes the role and de-duplicates plan
// references. Missing statuses get their defaults.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Role = NormalizeRole(string(u.Role))
	if u.MembershipStatus == "" {
		u.MembershipStatus = MembershipPending
	}
	if u.PaymentStatus == "" {
		u.PaymentStatus = PaymentUnpaid
	}
	u.WorkoutPlans = DedupPlanRefs(u.WorkoutPlans)
}

// HasPlan reports whether the plan is assigned, with any variant.
func (u *User) HasPlan(planID string) bool {
	for _, ref := range u.WorkoutPlans {
		if ref.PlanID == planID {
			return true
		}
	}
	return false
}

func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

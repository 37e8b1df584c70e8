package domain

import "time"

// CardStatus is the state of a monthly membership card.
type CardStatus string

const (
	CardActive  CardStatus = "active"
	CardExpired CardStatus = "expired"
	CardPending CardStatus = "pending"
)

// MembershipCard records one month of membership for a user.
type MembershipCard struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	UserID      string     `bson:"userId" json:"userId"`
	UserName    string     `bson:"userName" json:"userName"`
	Month       string     `bson:"month" json:"month"` // YYYY-MM
	Year        int        `bson:"year" json:"year"`
	Status      CardStatus `bson:"status" json:"status"`
	PaymentDate *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	ExpiryDate  time.Time  `bson:"expiryDate" json:"expiryDate"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveStatus downgrades an active card whose expiry date has passed.
func (c *MembershipCard) EffectiveStatus(now time.Time) CardStatus {
	if c.Status == CardActive && !c.ExpiryDate.IsZero() && now.After(c.ExpiryDate) {
		return CardExpired
	}
	return c.Status
}

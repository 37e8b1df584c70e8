package domain

import "time"

// Link is a curated external resource shown on the site.
type Link struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	URL         string    `bson:"url" json:"url"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Category    string    `bson:"category" json:"category"`
	IsActive    bool      `bson:"isActive" json:"isActive"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

package domain

import "time"

// DaySchedule is one weekday's opening hours as "HH:MM" local times.
// Open and Close are ignored when IsOpen is false.
type DaySchedule struct {
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	IsOpen bool   `bson:"isOpen" json:"isOpen"`
}

// GymSchedule holds the weekly opening hours. The remote store keeps at most
// one.
type GymSchedule struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	Monday    DaySchedule `bson:"monday" json:"monday"`
	Tuesday   DaySchedule `bson:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `bson:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `bson:"thursday" json:"thursday"`
	Friday    DaySchedule `bson:"friday" json:"friday"`
	Saturday  DaySchedule `bson:"saturday" json:"saturday"`
	Sunday    DaySchedule `bson:"sunday" json:"sunday"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Day returns the hours for wd.
func (s *GymSchedule) Day(wd time.Weekday) *DaySchedule {
	switch wd {
	case time.Monday:
		return &s.Monday
	case time.Tuesday:
		return &s.Tuesday
	case time.Wednesday:
		return &s.Wednesday
	case time.Thursday:
		return &s.Thursday
	case time.Friday:
		return &s.Friday
	case time.Saturday:
		return &s.Saturday
	default:
		return &s.Sunday
	}
}

// IsOpenAt reports whether the gym is open at t, using t's own location.
// Hours that do not parse read as closed.
func (s *GymSchedule) IsOpenAt(t time.Time) bool {
	day := s.Day(t.Weekday())
	if !day.IsOpen {
		return false
	}
	open, err1 := time.Parse("15:04", day.Open)
	closing, err2 := time.Parse("15:04", day.Close)
	if err1 != nil || err2 != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= open.Hour()*60+open.Minute() && minute < closing.Hour()*60+closing.Minute()
}

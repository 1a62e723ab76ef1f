package domain

import "time"

// User is a chat platform user
type User struct {
	ID   string
	Name string
}

// Update is a single collected KPI value produced by a conversation, ready to
// be appended to the answers store
type Update struct {
	KPI       KPI
	Period    Period
	Value     float64
	User      User
	Timestamp time.Time
}

package entities

import "time"

const (
	PositionChairperson = "chairperson"
	PositionKagawad     = "kagawad"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Candidate struct {
	ID        string
	Name      string
	Position  string
	Bio       string
	Platform  string
	PhotoRef  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidPosition(position string) bool {
	return position == PositionChairperson || position == PositionKagawad
}

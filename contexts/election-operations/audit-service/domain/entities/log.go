package entities

import "time"

type AuditLog struct {
	ID         string
	ActorID    string
	Action     string
	Detail     string
	IP         string
	UserAgent  string
	OccurredAt time.Time
}

package entity

import "time"

// Organization representa un tenant del sistema.
type Organization struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is owned by exactly one user. OwnerId is set when the record is
// created and never changes afterwards.
type Note struct {
	Id        uuid.UUID
	OwnerId   string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

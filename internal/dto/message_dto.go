package dto

import "github.com/google/uuid"

// NoteChangedMessage is published after every successful mutation so that
// listing views can refresh themselves.
type NoteChangedMessage struct {
	NoteId  uuid.UUID `json:"note_id"`
	OwnerId string    `json:"owner_id"`
	Action  string    `json:"action"`
}

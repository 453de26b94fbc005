package constant

const (
	NoteChangedTopicName = "note-changed"

	NoteActionCreated = "created"
	NoteActionUpdated = "updated"
	NoteActionDeleted = "deleted"
)

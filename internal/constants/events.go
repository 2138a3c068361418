package constants

// EventType classifies a single entry in a task's audit history.
type EventType string

const (
	EventCreated            EventType = "created"
	EventUpdated            EventType = "updated"
	EventChecked            EventType = "checked"
	EventUnchecked          EventType = "unchecked"
	EventDeleted            EventType = "deleted"
	EventRestored           EventType = "restored"
	EventPermanentlyDeleted EventType = "permanently_deleted"
)

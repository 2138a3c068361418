package audit

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/shubham-khot-pro/todo-service/internal/constants"
	model "github.com/shubham-khot-pro/todo-service/internal/models"
)

// Snapshot captures the fields of a task that participate in change
// classification. Mutation paths take a snapshot before and after applying a
// change and hand the pair to Classify, so detection never depends on state
// hidden inside the entity itself.
type Snapshot struct {
	Title       string
	Description string
	Completed   bool
	IsDeleted   bool
}

func SnapshotOf(t *model.Task) Snapshot {
	return Snapshot{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		IsDeleted:   t.IsDeleted,
	}
}

// Classify derives the audit event for a transition from old to new. A nil
// old snapshot means the task did not exist before. The checks are ordered;
// the first match wins. ok is false when nothing meaningful changed and no
// event should be written.
func Classify(old *Snapshot, new Snapshot) (eventType constants.EventType, details datatypes.JSON, ok bool) {
	switch {
	case old == nil:
		return constants.EventCreated, titleDetails(new.Title), true

	case new.IsDeleted && !old.IsDeleted:
		return constants.EventDeleted, titleDetails(new.Title), true

	case !new.IsDeleted && old.IsDeleted:
		return constants.EventRestored, titleDetails(new.Title), true

	case new.Completed != old.Completed:
		eventType = constants.EventUnchecked
		if new.Completed {
			eventType = constants.EventChecked
		}
		return eventType, completionDetails(new.Completed, new.Title), true

	case new.Title != old.Title || new.Description != old.Description:
		return constants.EventUpdated, updateDetails(*old, new), true
	}

	return "", nil, false
}

// ResolveActor picks the user attributed to an event: the explicit actor when
// present, otherwise the task owner, otherwise nobody.
func ResolveActor(actorID, ownerID string) *string {
	if actorID != "" {
		return &actorID
	}
	if ownerID != "" {
		return &ownerID
	}
	return nil
}

// PermanentDeletionDetails is the payload for the event written just before a
// hard delete.
func PermanentDeletionDetails(title string) datatypes.JSON {
	return titleDetails(title)
}

func titleDetails(title string) datatypes.JSON {
	return mustJSON(map[string]any{"title": title})
}

func completionDetails(completed bool, title string) datatypes.JSON {
	return mustJSON(map[string]any{"completed": completed, "title": title})
}

func updateDetails(old, new Snapshot) datatypes.JSON {
	return mustJSON(map[string]any{
		"old": map[string]string{"title": old.Title, "description": old.Description},
		"new": map[string]string{"title": new.Title, "description": new.Description},
	})
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		// Only maps of plain strings and bools reach here.
		panic(err)
	}
	return datatypes.JSON(b)
}

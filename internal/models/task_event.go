package model

import (
	"time"

	"gorm.io/datatypes"

	"github.com/shubham-khot-pro/todo-service/internal/constants"
)

// TaskEvent is one append-only entry in a task's audit history. Events are
// never updated after creation; deleting the owning task cascades to them.
//
// ActorID is the user who caused the change. It may be nil when no actor
// could be determined (e.g. maintenance paths with no authenticated user).
type TaskEvent struct {
	ID        string              `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string              `gorm:"size:36;not null;index" json:"task_id"`
	Task      *Task               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ActorID   *string             `gorm:"size:36" json:"actor_id,omitempty"`
	EventType constants.EventType `gorm:"type:varchar(32);not null" json:"event_type"`
	Details   datatypes.JSON      `json:"details,omitempty"`
	Timestamp time.Time           `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (TaskEvent) TableName() string {
	return "task_events"
}

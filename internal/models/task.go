package model

import (
	"strings"
	"time"

	"github.com/shubham-khot-pro/todo-service/internal/constants"
)

// Task is a single todo item owned by one user.
//
// TitleKey holds the lowercased title and backs the partial unique index that
// enforces per-owner, case-insensitive title uniqueness among active tasks.
// The repository keeps it in sync with Title; nothing else writes it.
//
// Completed and Status are both persisted and are intentionally not coupled:
// Status is informational and does not move when Completed is toggled.
type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string               `gorm:"size:36;not null;index;uniqueIndex:idx_tasks_owner_active_title" json:"owner_id"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	TitleKey    string               `gorm:"size:200;not null;uniqueIndex:idx_tasks_owner_active_title,where:is_deleted = 0" json:"-"`
	Description string               `json:"description"`
	Completed   bool                 `gorm:"not null;default:false" json:"completed"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	IsDeleted   bool                 `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TitleKeyFor normalizes a title for uniqueness comparison.
func TitleKeyFor(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

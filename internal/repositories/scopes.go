package repository

import (
	"time"

	"gorm.io/gorm"

	model "github.com/shubham-khot-pro/todo-service/internal/models"
)

// Composable query scopes over tasks. Scopes are pure reads and stack via
// db.Scopes(...); owner scoping is always supplied by the caller rather than
// baked into the other predicates.

func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func Deleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", true)
}

func Completed(db *gorm.DB) *gorm.DB {
	return db.Where("completed = ?", true)
}

func Pending(db *gorm.DB) *gorm.DB {
	return db.Where("completed = ?", false)
}

func OwnedBy(ownerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// CreatedToday matches tasks created on the current UTC calendar date.
func CreatedToday(db *gorm.DB) *gorm.DB {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return db.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
}

// WithRecentEvents matches tasks having at least one audit event within the
// trailing N days. Non-positive days falls back to 7.
func WithRecentEvents(days int) func(*gorm.DB) *gorm.DB {
	if days <= 0 {
		days = 7
	}
	return func(db *gorm.DB) *gorm.DB {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.TaskEvent{}).
			Select("task_id").
			Where("timestamp >= ?", cutoff)
		return db.Where("id IN (?)", sub)
	}
}

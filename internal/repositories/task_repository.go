package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shubham-khot-pro/todo-service/internal/audit"
	"github.com/shubham-khot-pro/todo-service/internal/constants"
	apperrors "github.com/shubham-khot-pro/todo-service/internal/errors"
	model "github.com/shubham-khot-pro/todo-service/internal/models"
)

// TaskRepository is the single write path for tasks. Every mutation runs in
// one transaction that re-reads the authoritative row, applies the change,
// normalizes the soft-delete fields, and appends the derived audit event, so a
// reader never sees a task state without its matching event and change
// classification never runs against a stale in-memory copy.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Mutator adjusts the freshly loaded task inside the mutation transaction.
// It may consult tx for checks that must see current data (e.g. duplicate
// titles) and may return an Exception to reject the mutation.
type Mutator func(tx *gorm.DB, task *model.Task) error

// CreateTask inserts a new task and its `created` event in one transaction.
// The partial unique index on (owner_id, title_key) for active rows is the
// authority on duplicate titles; violations surface as ErrDuplicateTitle.
func (r *TaskRepository) CreateTask(ctx context.Context, ownerID, actorID, title, description string) (*model.Task, error) {
	task := &model.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		TitleKey:    model.TitleKeyFor(title),
		Description: description,
		Status:      constants.StatusPending,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := TitleTaken(tx, ownerID, task.TitleKey, "")
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrDuplicateTitle
		}

		if err := tx.Create(task).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateTitle
			}
			return fmt.Errorf("failed to create task: %w", err)
		}

		return appendEvent(tx, task, nil, actorID)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Mutate loads the task, applies mutate, persists it, and appends the audit
// event classified from the before/after pair. No-op mutations write nothing.
func (r *TaskRepository) Mutate(ctx context.Context, taskID, actorID string, mutate Mutator) (*model.Task, error) {
	var updated *model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := loadForUpdate(tx, taskID)
		if err != nil {
			return err
		}

		before := audit.SnapshotOf(task)
		if err := mutate(tx, task); err != nil {
			return err
		}
		task.TitleKey = model.TitleKeyFor(task.Title)
		normalizeDeletion(task, before.IsDeleted)

		if err := tx.Save(task).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateTitle
			}
			return fmt.Errorf("failed to save task: %w", err)
		}

		updated = task
		return appendEvent(tx, task, &before, actorID)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// HardDelete removes a soft-deleted task for good. The permanently_deleted
// event is written first and then swept away with the rest of the task's
// history; a purged task leaves no trace in the event table.
func (r *TaskRepository) HardDelete(ctx context.Context, ownerID, taskID, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := loadForUpdate(tx, taskID)
		if err != nil {
			return err
		}
		if ownerID != "" && task.OwnerID != ownerID {
			return apperrors.ErrTaskNotFound
		}
		if !task.IsDeleted {
			return apperrors.ErrNotDeleted
		}

		event := model.TaskEvent{
			ID:        uuid.NewString(),
			TaskID:    task.ID,
			ActorID:   audit.ResolveActor(actorID, task.OwnerID),
			EventType: constants.EventPermanentlyDeleted,
			Details:   audit.PermanentDeletionDetails(task.Title),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to log permanent deletion: %w", err)
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete task events: %w", err)
		}
		if err := tx.Delete(task).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindOwned is FindByID restricted to one owner's tasks.
func (r *TaskRepository) FindOwned(ctx context.Context, ownerID, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Scopes(OwnedBy(ownerID)).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// ListFilters narrows ListActive beyond the owner scope.
type ListFilters struct {
	Completed       *bool
	CreatedToday    bool
	RecentEventDays int // 0 disables the filter
}

func (r *TaskRepository) ListActive(ctx context.Context, ownerID string, filters ListFilters) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Scopes(OwnedBy(ownerID), Active)

	if filters.Completed != nil {
		if *filters.Completed {
			query = query.Scopes(Completed)
		} else {
			query = query.Scopes(Pending)
		}
	}
	if filters.CreatedToday {
		query = query.Scopes(CreatedToday)
	}
	if filters.RecentEventDays > 0 {
		query = query.Scopes(WithRecentEvents(filters.RecentEventDays))
	}

	var tasks []model.Task
	err := query.Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListDeleted(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Scopes(OwnedBy(ownerID), Deleted).
		Order("deleted_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CountDeleted(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Scopes(OwnedBy(ownerID), Deleted).
		Count(&count).Error
	return count, err
}

// History returns a task's audit trail, newest first.
func (r *TaskRepository) History(ctx context.Context, taskID string) ([]model.TaskEvent, error) {
	var events []model.TaskEvent
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("timestamp desc").
		Find(&events).Error
	return events, err
}

// TitleTaken reports whether ownerID already has an active task with the
// given title key, excluding excludeID when non-empty. It runs against tx so
// mutators can check inside the mutation transaction.
func TitleTaken(tx *gorm.DB, ownerID, titleKey, excludeID string) (bool, error) {
	query := tx.Model(&model.Task{}).
		Scopes(OwnedBy(ownerID), Active).
		Where("title_key = ?", titleKey)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check title uniqueness: %w", err)
	}
	return count > 0, nil
}

// appendEvent classifies the transition and writes at most one event. A nil
// before snapshot means the task was just created.
func appendEvent(tx *gorm.DB, task *model.Task, before *audit.Snapshot, actorID string) error {
	eventType, details, ok := audit.Classify(before, audit.SnapshotOf(task))
	if !ok {
		return nil
	}

	event := model.TaskEvent{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		ActorID:   audit.ResolveActor(actorID, task.OwnerID),
		EventType: eventType,
		Details:   details,
	}
	if err := tx.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to append task event: %w", err)
	}
	return nil
}

// normalizeDeletion keeps deleted_at consistent with is_deleted no matter
// what the mutator did: deleted_at is non-nil iff is_deleted is true.
func normalizeDeletion(task *model.Task, wasDeleted bool) {
	switch {
	case !task.IsDeleted:
		task.DeletedAt = nil
	case task.DeletedAt == nil || !wasDeleted:
		now := time.Now().UTC()
		task.DeletedAt = &now
	}
}

func loadForUpdate(tx *gorm.DB, taskID string) (*model.Task, error) {
	var task model.Task
	if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return &task, nil
}

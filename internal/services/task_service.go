package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "github.com/shubham-khot-pro/todo-service/internal/errors"
	model "github.com/shubham-khot-pro/todo-service/internal/models"
	repository "github.com/shubham-khot-pro/todo-service/internal/repositories"
)

const maxTitleLength = 200

// TaskService implements the operations collaborators call into: create,
// edit, toggle, the soft-delete lifecycle, and the owner-scoped views.
//
// ownerID identifies whose tasks are addressed and is supplied by the
// authenticated caller; an empty ownerID is the administrative path and skips
// ownership checks. actorID is the user attributed to audit events and may
// differ from the owner (or be empty, in which case events fall back to the
// task's owner).
type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID, actorID, title, description string) (*model.Task, error) {
	title, description, err := cleanInput(title, description)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateTask(ctx, ownerID, actorID, title, description)
}

// EditTask rewrites title and description. Submitting values byte-identical
// to the current ones is rejected as a no-op rather than silently accepted,
// so the audit trail never carries vacuous `updated` entries.
func (s *TaskService) EditTask(ctx context.Context, ownerID, actorID, taskID, title, description string) (*model.Task, error) {
	title, description, err := cleanInput(title, description)
	if err != nil {
		return nil, err
	}

	return s.repo.Mutate(ctx, taskID, actorID, func(tx *gorm.DB, task *model.Task) error {
		if err := requireActive(task, ownerID); err != nil {
			return err
		}
		if task.Title == title && task.Description == description {
			return apperrors.ErrNoChange
		}

		taken, err := repository.TitleTaken(tx, task.OwnerID, model.TitleKeyFor(title), task.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrDuplicateTitle
		}

		task.Title = title
		task.Description = description
		return nil
	})
}

func (s *TaskService) ToggleCompletion(ctx context.Context, ownerID, actorID, taskID string) (*model.Task, error) {
	return s.repo.Mutate(ctx, taskID, actorID, func(tx *gorm.DB, task *model.Task) error {
		if err := requireActive(task, ownerID); err != nil {
			return err
		}
		task.Completed = !task.Completed
		return nil
	})
}

func (s *TaskService) SoftDelete(ctx context.Context, ownerID, actorID, taskID string) (*model.Task, error) {
	return s.repo.Mutate(ctx, taskID, actorID, func(tx *gorm.DB, task *model.Task) error {
		if err := requireOwned(task, ownerID); err != nil {
			return err
		}
		if task.IsDeleted {
			return apperrors.ErrAlreadyDeleted
		}
		task.IsDeleted = true
		return nil
	})
}

func (s *TaskService) Restore(ctx context.Context, ownerID, actorID, taskID string) (*model.Task, error) {
	return s.repo.Mutate(ctx, taskID, actorID, func(tx *gorm.DB, task *model.Task) error {
		if err := requireOwned(task, ownerID); err != nil {
			return err
		}
		if !task.IsDeleted {
			return apperrors.ErrNotDeleted
		}
		task.IsDeleted = false
		return nil
	})
}

// HardDelete purges a soft-deleted task and its whole audit trail. Only
// tasks already in the deleted state may be purged.
func (s *TaskService) HardDelete(ctx context.Context, ownerID, actorID, taskID string) error {
	return s.repo.HardDelete(ctx, ownerID, taskID, actorID)
}

func (s *TaskService) ListActive(ctx context.Context, ownerID string, filters repository.ListFilters) ([]model.Task, error) {
	return s.repo.ListActive(ctx, ownerID, filters)
}

func (s *TaskService) ListDeleted(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.repo.ListDeleted(ctx, ownerID)
}

func (s *TaskService) CountDeleted(ctx context.Context, ownerID string) (int64, error) {
	return s.repo.CountDeleted(ctx, ownerID)
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	if ownerID == "" {
		return s.repo.FindByID(ctx, taskID)
	}
	return s.repo.FindOwned(ctx, ownerID, taskID)
}

// History returns the audit trail for one of the owner's tasks, newest
// event first.
func (s *TaskService) History(ctx context.Context, ownerID, taskID string) ([]model.TaskEvent, error) {
	if _, err := s.GetTask(ctx, ownerID, taskID); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, taskID)
}

func cleanInput(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", apperrors.ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", "", apperrors.ErrTitleTooLong
	}
	return title, strings.TrimSpace(description), nil
}

func requireOwned(task *model.Task, ownerID string) error {
	if ownerID != "" && task.OwnerID != ownerID {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// requireActive guards operations that are only reachable from the active
// list; a soft-deleted task is invisible to them.
func requireActive(task *model.Task, ownerID string) error {
	if err := requireOwned(task, ownerID); err != nil {
		return err
	}
	if task.IsDeleted {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

package services

import (
	"context"
	"strings"

	repository "github.com/shubham-khot-pro/todo-service/internal/repositories"
)

const (
	DigestSubject     = "Your Todo List 📝"
	emptyDigestBody   = "You have no active todos 🎉"
	digestLinePrefix  = "- "
	digestLineDivider = "\n"
)

// DigestService renders the outstanding-tasks summary for a user. Building
// the digest is synchronous and side-effect-free; delivery is someone
// else's job.
type DigestService struct {
	repo *repository.TaskRepository
}

func NewDigestService(repo *repository.TaskRepository) *DigestService {
	return &DigestService{repo: repo}
}

// BuildDigest lists the owner's active task titles, newest first, one per
// line. With no active tasks the body is a fixed message.
func (s *DigestService) BuildDigest(ctx context.Context, ownerID string) (string, error) {
	tasks, err := s.repo.ListActive(ctx, ownerID, repository.ListFilters{})
	if err != nil {
		return "", err
	}

	if len(tasks) == 0 {
		return emptyDigestBody, nil
	}

	lines := make([]string, len(tasks))
	for i, task := range tasks {
		lines[i] = digestLinePrefix + task.Title
	}
	return strings.Join(lines, digestLineDivider), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/pagination"
	"taskmanager/internal/query"
	"taskmanager/internal/repository"
)

const maxTitleLength = 200

// TaskInput carries client-supplied task fields before validation. A nil
// Status means the client did not send one.
type TaskInput struct {
	Title       string
	Description string
	DueDate     string
	Status      *string
}

// TaskPage is one page of a filtered task listing.
type TaskPage struct {
	Tasks []model.Task
	Page  *pagination.Page
}

// TaskService manages the caller's own tasks. Tasks owned by anyone else are
// reported as not found.
type TaskService interface {
	List(ctx context.Context, identity *auth.Identity, params url.Values) (*TaskPage, error)
	Create(ctx context.Context, identity *auth.Identity, in TaskInput) (*model.Task, error)
	Get(ctx context.Context, identity *auth.Identity, id uint) (*model.Task, error)
	Update(ctx context.Context, identity *auth.Identity, id uint, in TaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, identity *auth.Identity, id uint, status *string) (*model.Task, error)
	Delete(ctx context.Context, identity *auth.Identity, id uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	pager *pagination.Pager
	now   func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, pager *pagination.Pager) TaskService {
	return &taskService{
		repo:  repo,
		pager: pager,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// List filters, orders and pages the caller's tasks. The result set is
// re-evaluated on every call.
func (s *taskService) List(ctx context.Context, identity *auth.Identity, params url.Values) (*TaskPage, error) {
	filter, err := query.BuildTaskFilter(identity.UserID, params, s.now())
	if err != nil {
		return nil, err
	}

	req, err := s.pager.Parse(params)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	page, err := s.pager.Resolve(req, total)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.List(ctx, filter, page.Offset(), page.Size)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &TaskPage{Tasks: tasks, Page: page}, nil
}

// Create stores a new task owned by the caller. The due date may not lie
// before today.
func (s *taskService) Create(ctx context.Context, identity *auth.Identity, in TaskInput) (*model.Task, error) {
	now := s.now()
	fields, err := s.validate(in, true, now)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       fields.title,
		Description: in.Description,
		DueDate:     fields.dueDate,
		Status:      model.TaskStatusPending,
		UserID:      identity.UserID,
	}
	if fields.status != nil {
		task.Status = *fields.status
	}
	s.touch(task, now)

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Get returns one of the caller's tasks.
func (s *taskService) Get(ctx context.Context, identity *auth.Identity, id uint) (*model.Task, error) {
	task, err := s.repo.FindByIDForOwner(ctx, id, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Update replaces the editable fields of one of the caller's tasks. An
// omitted status keeps the stored one.
func (s *taskService) Update(ctx context.Context, identity *auth.Identity, id uint, in TaskInput) (*model.Task, error) {
	task, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields, err := s.validate(in, false, now)
	if err != nil {
		return nil, err
	}

	task.Title = fields.title
	task.Description = in.Description
	task.DueDate = fields.dueDate
	if fields.status != nil {
		task.Status = *fields.status
	}
	s.touch(task, now)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// UpdateStatus sets only the status. Any status may follow any other.
func (s *taskService) UpdateStatus(ctx context.Context, identity *auth.Identity, id uint, status *string) (*model.Task, error) {
	task, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if status == nil {
		return nil, apperrors.FieldError("status", apperrors.MsgRequired)
	}
	parsed, msg := parseStatus(*status)
	if msg != "" {
		return nil, apperrors.FieldError("status", msg)
	}

	task.Status = parsed
	s.touch(task, s.now())

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return task, nil
}

// Delete removes one of the caller's tasks.
func (s *taskService) Delete(ctx context.Context, identity *auth.Identity, id uint) error {
	task, err := s.Get(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// touch records a save. status_changed_at is refreshed on every save,
// whether or not the status moved.
func (s *taskService) touch(task *model.Task, now time.Time) {
	task.StatusChangedAt = now
}

type validTask struct {
	title   string
	dueDate model.Date
	status  *model.TaskStatus
}

func (s *taskService) validate(in TaskInput, creating bool, now time.Time) (*validTask, error) {
	verr := apperrors.NewValidationError()
	out := &validTask{title: strings.TrimSpace(in.Title)}

	switch {
	case out.title == "":
		verr.Add("title", apperrors.MsgBlank)
	case utf8.RuneCountInString(out.title) > maxTitleLength:
		verr.Add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLength))
	}

	dueDate := strings.TrimSpace(in.DueDate)
	if dueDate == "" {
		verr.Add("due_date", apperrors.MsgRequired)
	} else if parsed, err := model.ParseDate(dueDate); err != nil {
		verr.Add("due_date", apperrors.MsgInvalidDate)
	} else {
		out.dueDate = parsed
		if creating && parsed.Before(model.NewDate(now)) {
			verr.Add("due_date", apperrors.MsgPastDueDate)
		}
	}

	if in.Status != nil {
		status, msg := parseStatus(*in.Status)
		if msg != "" {
			verr.Add("status", msg)
		} else {
			out.status = &status
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseStatus(raw string) (model.TaskStatus, string) {
	status := model.TaskStatus(raw)
	if !status.Valid() {
		return "", fmt.Sprintf("%q is not a valid choice.", raw)
	}
	return status, ""
}

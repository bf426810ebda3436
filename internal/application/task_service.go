package application

import (
	"context"
	"errors"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
)

// TaskService is CRUD over project tasks. An assignee, when set, must be a
// member of the same project.
type TaskService struct {
	Tasks    repo.TaskRepository
	Projects repo.ProjectRepository
}

func NewTaskService(tasks repo.TaskRepository, projects repo.ProjectRepository) *TaskService {
	return &TaskService{Tasks: tasks, Projects: projects}
}

type TaskInput struct {
	Title       string
	Description string
	Status      entity.TaskStatus
	AssignedTo  *string
}

func (s *TaskService) Create(ctx context.Context, projectID, accountID string, in TaskInput) (*entity.Task, error) {
	if err := s.checkAssignee(ctx, projectID, in.AssignedTo); err != nil {
		return nil, err
	}
	t := &entity.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   accountID,
	}
	if t.Status == "" {
		t.Status = entity.TaskTodo
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, projectID, taskID string) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, projectID string) ([]*entity.Task, error) {
	return s.Tasks.ListForProject(ctx, projectID)
}

func (s *TaskService) Update(ctx context.Context, projectID, taskID string, in TaskInput) (*entity.Task, error) {
	t, err := s.Get(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, projectID, in.AssignedTo); err != nil {
		return nil, err
	}
	if in.Title != "" {
		t.Title = in.Title
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Status != "" && in.Status.Valid() {
		t.Status = in.Status
	}
	if in.AssignedTo != nil {
		t.AssignedTo = in.AssignedTo
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, projectID, taskID string) error {
	if err := s.Tasks.Delete(ctx, projectID, taskID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, projectID string, assignee *string) error {
	if assignee == nil || *assignee == "" {
		return nil
	}
	if _, err := s.Projects.GetMembership(ctx, projectID, *assignee); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotAMember
		}
		return err
	}
	return nil
}

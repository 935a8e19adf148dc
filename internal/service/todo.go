package service

import (
	"context"
	"errors"

	"github.com/kube-rca/todo/internal/db"
	"github.com/kube-rca/todo/internal/model"
)

// todoRepo - 태스크 저장소 인터페이스
type todoRepo interface {
	CreateTodo(ctx context.Context, body model.TodoBody) (model.TodoRecord, error)
	GetTodo(ctx context.Context, id string) (model.TodoRecord, error)
	ListTodos(ctx context.Context) ([]model.TodoRecord, error)
	UpdateTodo(ctx context.Context, id string, body model.TodoBody) (model.TodoRecord, error)
	DeleteTodo(ctx context.Context, id string) error
}

type TodoService struct {
	repo todoRepo
}

func NewTodoService(repo todoRepo) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, body model.TodoBody) (model.Todo, error) {
	rec, err := s.repo.CreateTodo(ctx, body)
	if err != nil {
		return model.Todo{}, err
	}
	return rec.ToTodo(), nil
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	recs, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	todos := make([]model.Todo, 0, len(recs))
	for _, rec := range recs {
		todos = append(todos, rec.ToTodo())
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, id string) (model.Todo, error) {
	rec, err := s.repo.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, notFound(err, "Task of ID:"+id+" doesn't exist")
	}
	return rec.ToTodo(), nil
}

func (s *TodoService) Update(ctx context.Context, id string, body model.TodoBody) (model.Todo, error) {
	rec, err := s.repo.UpdateTodo(ctx, id, body)
	if err != nil {
		return model.Todo{}, notFound(err, "Update task failed")
	}
	return rec.ToTodo(), nil
}

func (s *TodoService) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.DeleteTodo(ctx, id), "Delete task failed")
}

func notFound(err error, msg string) error {
	if errors.Is(err, db.ErrNotFound) {
		return withDetail(ErrNotFound, msg)
	}
	return err
}

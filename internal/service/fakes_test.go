package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/kube-rca/todo/internal/db"
	"github.com/kube-rca/todo/internal/model"
)

type fakeCredentialRepo struct {
	mu      sync.Mutex
	users   map[string]model.Credential
	nextID  int
	dupOnly bool
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{users: map[string]model.Credential{}}
}

func (f *fakeCredentialRepo) GetUserByEmail(ctx context.Context, email string) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

func (f *fakeCredentialRepo) CreateUser(ctx context.Context, email, passwordHash string) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok || f.dupOnly {
		return nil, db.ErrDuplicate
	}
	f.nextID++
	user := model.Credential{ID: strconv.Itoa(f.nextID), Email: email, PasswordHash: passwordHash}
	f.users[email] = user
	return &user, nil
}

type fakeTodoRepo struct {
	mu     sync.Mutex
	todos  map[string]model.TodoRecord
	order  []string
	nextID int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]model.TodoRecord{}}
}

func (f *fakeTodoRepo) CreateTodo(ctx context.Context, body model.TodoBody) (model.TodoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	rec := model.TodoRecord{ID: strconv.Itoa(f.nextID), Title: body.Title, Description: body.Description}
	f.todos[rec.ID] = rec
	f.order = append(f.order, rec.ID)
	return rec, nil
}

func (f *fakeTodoRepo) GetTodo(ctx context.Context, id string) (model.TodoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.todos[id]
	if !ok {
		return model.TodoRecord{}, db.ErrNotFound
	}
	return rec, nil
}

func (f *fakeTodoRepo) ListTodos(ctx context.Context) ([]model.TodoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []model.TodoRecord{}
	for _, id := range f.order {
		if rec, ok := f.todos[id]; ok {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeTodoRepo) UpdateTodo(ctx context.Context, id string, body model.TodoBody) (model.TodoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.todos[id]
	if !ok {
		return model.TodoRecord{}, db.ErrNotFound
	}
	rec.Title = body.Title
	rec.Description = body.Description
	f.todos[id] = rec
	return rec, nil
}

func (f *fakeTodoRepo) DeleteTodo(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.todos[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.todos, id)
	return nil
}

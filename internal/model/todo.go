package model

import "time"

// Todo - API로 반환되는 태스크
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoBody - 생성/수정 요청 본문
type TodoBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// TodoRecord is the stored form of a task.
type TodoRecord struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r TodoRecord) ToTodo() Todo {
	return Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
	}
}

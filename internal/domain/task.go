package domain

import "time"

// Límites de campos para tareas.
const (
	TaskTitleMaxLen       = 200
	TaskDescriptionMaxLen = 1000
)

// Task pertenece siempre a exactamente un usuario; UserID nunca cambia.
type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusFilter restringe un listado de tareas por estado de completitud.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

func (f StatusFilter) Valid() bool {
	switch f {
	case StatusAll, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// SortKey define el orden de un listado de tareas.
type SortKey string

const (
	SortCreated SortKey = "created"
	SortTitle   SortKey = "title"
	SortUpdated SortKey = "updated"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortCreated, SortTitle, SortUpdated:
		return true
	}
	return false
}

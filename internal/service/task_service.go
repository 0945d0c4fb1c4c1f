package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
)

// TaskService aplica las reglas de negocio de tareas sobre el repositorio.
// El userID de cada operación es la identidad resuelta por el middleware;
// el aislamiento entre usuarios lo garantiza el repositorio acotando toda
// consulta al dueño.
type TaskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) List(ctx context.Context, userID string, status domain.StatusFilter, sort domain.SortKey) ([]domain.Task, error) {
	if status == "" {
		status = domain.StatusAll
	}
	if sort == "" {
		sort = domain.SortCreated
	}
	v := domain.NewValidationError()
	if !status.Valid() {
		v.Add("status", "must be one of: all, pending, completed")
	}
	if !sort.Valid() {
		v.Add("sort", "must be one of: created, title, updated")
	}
	if v.HasErrors() {
		return nil, v
	}
	return s.tasks.List(ctx, userID, status, sort)
}

func (s *TaskService) Create(ctx context.Context, userID, title, description string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	v := domain.NewValidationError()
	validateTitle(v, title)
	validateDescription(v, description)
	if v.HasErrors() {
		return domain.Task{}, v
	}

	// Los timestamps los asigna el repositorio con el reloj de la base;
	// así created_at y updated_at salen siempre de la misma fuente.
	task := domain.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
	}
	return s.tasks.Create(ctx, task)
}

func (s *TaskService) Get(ctx context.Context, userID string, taskID int64) (domain.Task, error) {
	return s.tasks.GetByID(ctx, userID, taskID)
}

// Update aplica solo los campos provistos; un puntero nil deja el campo
// como está.
func (s *TaskService) Update(ctx context.Context, userID string, taskID int64, title, description *string) (domain.Task, error) {
	v := domain.NewValidationError()
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		validateTitle(v, trimmed)
		title = &trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		validateDescription(v, trimmed)
		description = &trimmed
	}
	if v.HasErrors() {
		return domain.Task{}, v
	}
	if title == nil && description == nil {
		return s.tasks.GetByID(ctx, userID, taskID)
	}
	return s.tasks.Update(ctx, userID, taskID, title, description)
}

// Delete es un borrado duro; un segundo borrado del mismo id devuelve
// ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, userID string, taskID int64) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

func (s *TaskService) ToggleComplete(ctx context.Context, userID string, taskID int64) (domain.Task, error) {
	return s.tasks.ToggleComplete(ctx, userID, taskID)
}

// Los límites cuentan caracteres, no bytes; un título acentuado de 150
// caracteres es válido aunque ocupe el doble en UTF-8.
func validateTitle(v *domain.ValidationError, title string) {
	if title == "" {
		v.Add("title", "must not be empty")
		return
	}
	if utf8.RuneCountInString(title) > domain.TaskTitleMaxLen {
		v.Add("title", "must be at most 200 characters long")
	}
}

func validateDescription(v *domain.ValidationError, description string) {
	if utf8.RuneCountInString(description) > domain.TaskDescriptionMaxLen {
		v.Add("description", "must be at most 1000 characters long")
	}
}

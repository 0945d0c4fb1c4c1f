package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/domain"
)

// TaskRepository define el contrato de persistencia para tareas.
// Todas las operaciones están acotadas al usuario dueño: un id ajeno
// es indistinguible de un id inexistente.
type TaskRepository interface {
	List(ctx context.Context, userID string, status domain.StatusFilter, sort domain.SortKey) ([]domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, userID string, taskID int64) (domain.Task, error)
	Update(ctx context.Context, userID string, taskID int64, title, description *string) (domain.Task, error)
	Delete(ctx context.Context, userID string, taskID int64) error
	ToggleComplete(ctx context.Context, userID string, taskID int64) (domain.Task, error)
}

// PgTaskRepository implementa TaskRepository usando pgxpool.
type PgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPgTaskRepository(pool *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{pool: pool}
}

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

func (r *PgTaskRepository) List(ctx context.Context, userID string, status domain.StatusFilter, sort domain.SortKey) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"

	switch status {
	case domain.StatusPending:
		query += " AND completed = false"
	case domain.StatusCompleted:
		query += " AND completed = true"
	}

	// El orden se resuelve por switch sobre valores conocidos; nunca se
	// interpola entrada del cliente en el SQL.
	switch sort {
	case domain.SortTitle:
		query += " ORDER BY title ASC, id ASC"
	case domain.SortUpdated:
		query += " ORDER BY updated_at DESC, id DESC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create asigna ambos timestamps con now() de Postgres; update y toggle
// usan el mismo reloj, así que updated_at nunca retrocede por desfase
// entre el reloj de la aplicación y el de la base.
func (r *PgTaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	const query = `
		INSERT INTO tasks (user_id, title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + taskColumns
	row := r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
	)
	return scanTask(row)
}

func (r *PgTaskRepository) GetByID(ctx context.Context, userID string, taskID int64) (domain.Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	t, err := scanTask(r.pool.QueryRow(ctx, query, taskID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, err
}

func (r *PgTaskRepository) Update(ctx context.Context, userID string, taskID int64, title, description *string) (domain.Task, error) {
	const query = `
		UPDATE tasks
		SET title = COALESCE($3, title),
			description = COALESCE($4, description),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	t, err := scanTask(r.pool.QueryRow(ctx, query, taskID, userID, title, description))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, err
}

func (r *PgTaskRepository) Delete(ctx context.Context, userID string, taskID int64) error {
	const query = `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, taskID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *PgTaskRepository) ToggleComplete(ctx context.Context, userID string, taskID int64) (domain.Task, error) {
	const query = `
		UPDATE tasks
		SET completed = NOT completed,
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	t, err := scanTask(r.pool.QueryRow(ctx, query, taskID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, err
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

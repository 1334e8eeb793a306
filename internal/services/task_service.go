package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internhq/internhub-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	ListTasksForIntern(internID string) ([]models.Task, error)
	GetTaskByID(id string) (models.Task, error)
	CreateTask(task models.Task) (models.Task, error)
	UpdateTask(id string, update models.TaskUpdate) (models.Task, error)
	DeleteTask(id string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	db            *sql.DB
	notifications NotificationServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB, notifications NotificationServiceProvider) *TaskService {
	return &TaskService{db: db, notifications: notifications}
}

const taskColumns = "id, intern_id, title, description, deadline, status, created_at, updated_at"

func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var description sql.NullString
	err := scanner.Scan(&task.ID, &task.InternID, &task.Title, &description,
		&task.Deadline, &task.Status, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	task.Description = description.String
	return task, nil
}

func (s *TaskService) internExists(internID string) error {
	var id string
	err := s.db.QueryRow("SELECT id FROM interns WHERE id = ?", internID).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: intern %s", models.ErrNotFound, internID)
	}
	return err
}

// ListTasksForIntern retrieves all tasks belonging to an intern.
func (s *TaskService) ListTasksForIntern(internID string) ([]models.Task, error) {
	if err := s.internExists(internID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT "+taskColumns+" FROM tasks WHERE intern_id = ? ORDER BY created_at DESC", internID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTaskByID retrieves a single task by ID.
func (s *TaskService) GetTaskByID(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("%w: task %s", models.ErrNotFound, id)
		}
		return models.Task{}, err
	}
	return task, nil
}

// CreateTask creates a new task for an existing intern.
func (s *TaskService) CreateTask(task models.Task) (models.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if task.Deadline.IsZero() {
		return models.Task{}, fmt.Errorf("%w: deadline is required", models.ErrValidation)
	}
	if err := s.internExists(task.InternID); err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task.ID = uuid.New().String()
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	stmt, err := s.db.Prepare(`INSERT INTO tasks (id, intern_id, title, description, deadline, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(task.ID, task.InternID, task.Title, task.Description,
		task.Deadline, task.Status, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}

	s.notifications.CreateNotification("task_assigned", "Task assigned",
		fmt.Sprintf("Task %q was assigned", task.Title), models.PriorityMedium)

	return task, nil
}

// UpdateTask applies a partial update to a task. Status transitions are
// free-form; any status may follow any other.
func (s *TaskService) UpdateTask(id string, update models.TaskUpdate) (models.Task, error) {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return models.Task{}, err
	}

	wasCompleted := task.Status == models.TaskStatusCompleted

	if update.Title != nil {
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Deadline != nil {
		task.Deadline = *update.Deadline
	}
	if update.Status != nil {
		switch *update.Status {
		case models.TaskStatusPending, models.TaskStatusCompleted, models.TaskStatusOverdue:
			task.Status = *update.Status
		default:
			return models.Task{}, fmt.Errorf("%w: invalid status %q", models.ErrValidation, *update.Status)
		}
	}

	task.UpdatedAt = time.Now().UTC()
	_, err = s.db.Exec(`UPDATE tasks SET title = ?, description = ?, deadline = ?, status = ?, updated_at = ? WHERE id = ?`,
		task.Title, task.Description, task.Deadline, task.Status, task.UpdatedAt, id)
	if err != nil {
		return models.Task{}, err
	}

	if !wasCompleted && task.Status == models.TaskStatusCompleted {
		s.notifications.CreateNotification("task_completed", "Task completed",
			fmt.Sprintf("Task %q was completed", task.Title), models.PriorityLow)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: task %s", models.ErrNotFound, id)
	}
	return nil
}

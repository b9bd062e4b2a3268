package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage"
)

const taskColumns = "id, user_id, title, deadline, effort_hours, difficulty, importance, color, created_at"

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var deadline, createdAt string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &deadline, &t.EffortHours, &t.Difficulty, &t.Importance, &t.Color, &createdAt)
	if err != nil {
		return models.Task{}, err
	}
	if t.Deadline, err = parseTime(deadline); err != nil {
		return models.Task{}, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) AddTask(task models.Task) error {
	task.UserID = s.userID
	_, err := s.exec(s.db, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, formatTime(task.Deadline), task.EffortHours,
		task.Difficulty, task.Importance, task.Color, formatTime(task.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(s.rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?"), id, s.userID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return t, err
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(s.rebind("SELECT "+taskColumns+" FROM tasks WHERE user_id = ? ORDER BY deadline, id"), s.userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(task models.Task) error {
	res, err := s.exec(s.db, `
		UPDATE tasks SET title = ?, deadline = ?, effort_hours = ?, difficulty = ?, importance = ?, color = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, formatTime(task.Deadline), task.EffortHours, task.Difficulty, task.Importance, task.Color,
		task.ID, s.userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, "task", task.ID)
}

func (s *Store) DeleteTask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.exec(tx, "DELETE FROM schedule_blocks WHERE task_id = ? AND user_id = ?", id, s.userID); err != nil {
		return fmt.Errorf("failed to delete task blocks: %w", err)
	}
	res, err := s.exec(tx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", id, s.userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := requireRow(res, "task", id); err != nil {
		return err
	}
	return tx.Commit()
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

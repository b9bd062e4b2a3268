package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage"
)

const eventColumns = "id, user_id, title, start_at, end_at, description, color"

func scanEvent(row rowScanner) (models.FixedEvent, error) {
	var e models.FixedEvent
	var start, end string
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &start, &end, &e.Description, &e.Color); err != nil {
		return models.FixedEvent{}, err
	}
	var err error
	if e.Start, err = parseTime(start); err != nil {
		return models.FixedEvent{}, err
	}
	if e.End, err = parseTime(end); err != nil {
		return models.FixedEvent{}, err
	}
	return e, nil
}

func (s *Store) AddFixedEvent(event models.FixedEvent) error {
	_, err := s.exec(s.db, `
		INSERT INTO fixed_events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, s.userID, event.Title, formatTime(event.Start), formatTime(event.End), event.Description, event.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to add fixed event: %w", err)
	}
	return nil
}

func (s *Store) GetFixedEvent(id string) (models.FixedEvent, error) {
	row := s.db.QueryRow(s.rebind("SELECT "+eventColumns+" FROM fixed_events WHERE id = ? AND user_id = ?"), id, s.userID)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FixedEvent{}, fmt.Errorf("fixed event %s: %w", id, storage.ErrNotFound)
	}
	return e, err
}

func (s *Store) GetAllFixedEvents() ([]models.FixedEvent, error) {
	rows, err := s.db.Query(s.rebind("SELECT "+eventColumns+" FROM fixed_events WHERE user_id = ? ORDER BY start_at, id"), s.userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.FixedEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) DeleteFixedEvent(id string) error {
	res, err := s.exec(s.db, "DELETE FROM fixed_events WHERE id = ? AND user_id = ?", id, s.userID)
	if err != nil {
		return fmt.Errorf("failed to delete fixed event: %w", err)
	}
	return requireRow(res, "fixed event", id)
}

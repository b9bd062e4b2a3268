package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage"
)

const blockColumns = "id, user_id, task_id, title, start_at, end_at, duration_min, locked, color"

func scanBlock(row rowScanner) (models.ScheduleBlock, error) {
	var b models.ScheduleBlock
	var start, end string
	if err := row.Scan(&b.ID, &b.UserID, &b.TaskID, &b.Title, &start, &end, &b.DurationMin, &b.Locked, &b.Color); err != nil {
		return models.ScheduleBlock{}, err
	}
	var err error
	if b.Start, err = parseTime(start); err != nil {
		return models.ScheduleBlock{}, err
	}
	if b.End, err = parseTime(end); err != nil {
		return models.ScheduleBlock{}, err
	}
	return b, nil
}

func (s *Store) queryBlocks(query string, args ...any) ([]models.ScheduleBlock, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.ScheduleBlock
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *Store) GetBlock(id string) (models.ScheduleBlock, error) {
	row := s.db.QueryRow(s.rebind("SELECT "+blockColumns+" FROM schedule_blocks WHERE id = ? AND user_id = ?"), id, s.userID)
	b, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScheduleBlock{}, fmt.Errorf("block %s: %w", id, storage.ErrNotFound)
	}
	return b, err
}

func (s *Store) GetBlocks(from, to time.Time) ([]models.ScheduleBlock, error) {
	return s.queryBlocks("SELECT "+blockColumns+" FROM schedule_blocks WHERE user_id = ? AND start_at < ? AND end_at > ? ORDER BY start_at, id",
		s.userID, formatTime(to), formatTime(from))
}

func (s *Store) GetLockedBlocks() ([]models.ScheduleBlock, error) {
	return s.queryBlocks("SELECT "+blockColumns+" FROM schedule_blocks WHERE user_id = ? AND locked = ? ORDER BY start_at, id",
		s.userID, true)
}

func (s *Store) GetPastBlocks(now time.Time) ([]models.ScheduleBlock, error) {
	return s.queryBlocks("SELECT "+blockColumns+" FROM schedule_blocks WHERE user_id = ? AND locked = ? AND start_at < ? ORDER BY start_at, id",
		s.userID, false, formatTime(now))
}

func (s *Store) UpdateBlock(block models.ScheduleBlock) error {
	res, err := s.exec(s.db, `
		UPDATE schedule_blocks SET title = ?, start_at = ?, end_at = ?, duration_min = ?, locked = ?, color = ?
		WHERE id = ? AND user_id = ?`,
		block.Title, formatTime(block.Start), formatTime(block.End), block.DurationMin, block.Locked, block.Color,
		block.ID, s.userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}
	return requireRow(res, "block", block.ID)
}

func (s *Store) deleteFutureUnlocked(e sqlExecer, now time.Time) (int, error) {
	res, err := s.exec(e, "DELETE FROM schedule_blocks WHERE user_id = ? AND locked = ? AND start_at >= ?",
		s.userID, false, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("failed to delete future blocks: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) DeleteFutureUnlockedBlocks(now time.Time) (int, error) {
	return s.deleteFutureUnlocked(s.db, now)
}

func (s *Store) ReplaceFutureUnlockedBlocks(now time.Time, blocks []models.ScheduleBlock) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.deleteFutureUnlocked(tx, now); err != nil {
		return err
	}

	stmt, err := tx.Prepare(s.rebind("INSERT INTO schedule_blocks (" + blockColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		if _, err := stmt.Exec(b.ID, s.userID, b.TaskID, b.Title, formatTime(b.Start), formatTime(b.End), b.DurationMin, b.Locked, b.Color); err != nil {
			return fmt.Errorf("failed to insert block %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

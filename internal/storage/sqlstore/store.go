// Package sqlstore implements storage.Provider's data methods over database/sql. The
// sqlite and postgres packages wrap it with their own lifecycle and driver.
package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lo3003/studyplanner/internal/constants"
)

// Placeholder is the bind-parameter style of a driver.
type Placeholder int

const (
	Question Placeholder = iota // ?
	Dollar                      // $1, $2, ...
)

// Store holds one user's view of the shared schema.
type Store struct {
	db          *sql.DB
	placeholder Placeholder
	userID      string
}

func New(db *sql.DB, placeholder Placeholder, userID string) *Store {
	if userID == "" {
		userID = constants.DefaultUserID
	}
	return &Store{db: db, placeholder: placeholder, userID: userID}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) UserID() string { return s.userID }

// rebind rewrites ? placeholders for drivers that number their parameters.
func (s *Store) rebind(query string) string {
	if s.placeholder == Question {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(q sqlExecer, query string, args ...any) (sql.Result, error) {
	return q.Exec(s.rebind(query), args...)
}

type sqlExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(constants.StorageTimeFormat)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(constants.StorageTimeFormat, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored time %q: %w", v, err)
	}
	return t, nil
}

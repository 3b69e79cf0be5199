// Package storage is the durable local key-value state of the client: the
// session token and serialized profile, kept in a single-row SQLite table.
// It is read once at startup and written on every session change.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/peakform/storefront/internal/models"
)

// sessionRow is the persisted session. There is at most one row.
type sessionRow struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UserJSON  string `gorm:"not null"`
	UpdatedAt time.Time
}

func (sessionRow) TableName() string { return "session" }

// Store wraps the local SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite file at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state db: %w", err)
	}
	return &Store{db: db}, nil
}

// LoadSession returns the persisted token and profile. ok is false when no
// session is stored. A malformed row is purged defensively and reported as
// absent rather than propagated.
func (s *Store) LoadSession() (token string, user models.User, ok bool, err error) {
	var row sessionRow
	if err := s.db.First(&row, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, false, nil
		}
		return "", models.User{}, false, fmt.Errorf("failed to load session: %w", err)
	}
	if row.Token == "" || json.Unmarshal([]byte(row.UserJSON), &user) != nil {
		log.Warn().Msg("malformed persisted session, purging")
		_ = s.ClearSession()
		return "", models.User{}, false, nil
	}
	return row.Token, user, true, nil
}

// SaveSession persists the token and profile together.
func (s *Store) SaveSession(token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	row := sessionRow{ID: 1, Token: token, UserJSON: string(raw), UpdatedAt: time.Now()}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session. Token and profile always go
// together, never independently.
func (s *Store) ClearSession() error {
	if err := s.db.Delete(&sessionRow{}, 1).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

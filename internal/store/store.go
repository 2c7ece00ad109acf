package store

import (
	"context"
	"errors"
	"time"

	"mockly/interview/internal/models"
)

var (
	ErrNotFound = errors.New("interview session not found")
	// ErrStale means the record no longer matched the expected state on save.
	ErrStale = errors.New("interview session changed concurrently")
)

// sort keys accepted by FindOptions.SortBy
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
)

// Filter matches sessions; zero-valued fields are ignored.
type Filter struct {
	ID           string
	OwnerID      string
	Status       models.Status
	CurrentIndex *int
	ScoredOnly   bool
	UnscoredOnly bool
	UpdatedSince time.Time
}

type FindOptions struct {
	SortBy     string
	Descending bool
	Limit      int
}

// SessionStore persists interview sessions.
type SessionStore interface {
	// Create assigns ID, CreatedAt and UpdatedAt before inserting.
	Create(ctx context.Context, s *models.InterviewSession) error
	// FindOne returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, f Filter) (*models.InterviewSession, error)
	Find(ctx context.Context, f Filter, opts FindOptions) ([]models.InterviewSession, error)
	// Save overwrites the whole record and bumps UpdatedAt.
	Save(ctx context.Context, s *models.InterviewSession) error
	// SaveIf is Save guarded by expect, evaluated against the stored record.
	// It returns ErrStale when the stored record no longer matches.
	SaveIf(ctx context.Context, s *models.InterviewSession, expect Filter) error
	Ping(ctx context.Context) error
}

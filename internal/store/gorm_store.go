package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockly/interview/internal/models"
)

// GormStore keeps sessions in a SQL database (postgres in production,
// sqlite for local runs and tests).
type GormStore struct {
	db *gorm.DB
}

var _ SessionStore = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.InterviewSession{}); err != nil {
		return nil, fmt.Errorf("failed to migrate interview sessions: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Create(ctx context.Context, session *models.InterviewSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt, session.UpdatedAt = now, now

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

func (s *GormStore) FindOne(ctx context.Context, f Filter) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := applyFilter(s.db.WithContext(ctx), f).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

func (s *GormStore) Find(ctx context.Context, f Filter, opts FindOptions) ([]models.InterviewSession, error) {
	query := applyFilter(s.db.WithContext(ctx), f)
	if col := sortColumn(opts.SortBy); col != "" {
		dir := " ASC"
		if opts.Descending {
			dir = " DESC"
		}
		query = query.Order(col + dir)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var sessions []models.InterviewSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	return sessions, nil
}

func (s *GormStore) Save(ctx context.Context, session *models.InterviewSession) error {
	return s.update(ctx, session, Filter{}, ErrNotFound)
}

func (s *GormStore) SaveIf(ctx context.Context, session *models.InterviewSession, expect Filter) error {
	return s.update(ctx, session, expect, ErrStale)
}

func (s *GormStore) update(ctx context.Context, session *models.InterviewSession, expect Filter, noMatch error) error {
	previous := session.UpdatedAt
	session.UpdatedAt = time.Now().UTC()
	result := applyFilter(s.db.WithContext(ctx).Model(session), expect).
		Select("*").
		Omit("created_at").
		Updates(session)
	if result.Error != nil {
		session.UpdatedAt = previous
		return fmt.Errorf("failed to save interview session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		session.UpdatedAt = previous
		return noMatch
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func applyFilter(db *gorm.DB, f Filter) *gorm.DB {
	if f.ID != "" {
		db = db.Where("id = ?", f.ID)
	}
	if f.OwnerID != "" {
		db = db.Where("owner_id = ?", f.OwnerID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.CurrentIndex != nil {
		db = db.Where("current_index = ?", *f.CurrentIndex)
	}
	if f.ScoredOnly {
		db = db.Where("overall_score IS NOT NULL")
	}
	if f.UnscoredOnly {
		db = db.Where("overall_score IS NULL")
	}
	if !f.UpdatedSince.IsZero() {
		db = db.Where("updated_at >= ?", f.UpdatedSince.UTC())
	}
	return db
}

func sortColumn(key string) string {
	switch key {
	case SortByCreatedAt:
		return "created_at"
	case SortByUpdatedAt:
		return "updated_at"
	default:
		return ""
	}
}

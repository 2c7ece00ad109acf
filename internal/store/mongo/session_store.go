package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mockly/interview/internal/models"
	"mockly/interview/internal/store"
)

// Store keeps interview sessions as documents in one collection.
type Store struct {
	client *Client
	col    *mongo.Collection
}

var _ store.SessionStore = (*Store)(nil)

// NewStore ensures the owner/status index used by every lookup.
func NewStore(ctx context.Context, c *Client, collection string) (*Store, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	if collection == "" {
		collection = "interviews"
	}

	col := db.Collection(collection)
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create interview index: %w", err)
	}

	return &Store{client: c, col: col}, nil
}

func (s *Store) Create(ctx context.Context, session *models.InterviewSession) error {
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	session.CreatedAt, session.UpdatedAt = now, now

	if _, err := s.col.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create interview session: %w", err)
	}
	return nil
}

func (s *Store) FindOne(ctx context.Context, f store.Filter) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := s.col.FindOne(ctx, filterDocument(f)).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

func (s *Store) Find(ctx context.Context, f store.Filter, opts store.FindOptions) ([]models.InterviewSession, error) {
	cur, err := s.col.Find(ctx, filterDocument(f), findOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.InterviewSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode interview sessions: %w", err)
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, session *models.InterviewSession) error {
	return s.replace(ctx, session, store.Filter{}, store.ErrNotFound)
}

func (s *Store) SaveIf(ctx context.Context, session *models.InterviewSession, expect store.Filter) error {
	return s.replace(ctx, session, expect, store.ErrStale)
}

func (s *Store) replace(ctx context.Context, session *models.InterviewSession, expect store.Filter, noMatch error) error {
	expect.ID = session.ID
	previous := session.UpdatedAt
	session.UpdatedAt = time.Now().UTC()
	res, err := s.col.ReplaceOne(ctx, filterDocument(expect), session)
	if err != nil {
		session.UpdatedAt = previous
		return fmt.Errorf("failed to save interview session: %w", err)
	}
	if res.MatchedCount == 0 {
		session.UpdatedAt = previous
		return noMatch
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func filterDocument(f store.Filter) bson.M {
	doc := bson.M{}
	if f.ID != "" {
		doc["_id"] = f.ID
	}
	if f.OwnerID != "" {
		doc["ownerId"] = f.OwnerID
	}
	if f.Status != "" {
		doc["status"] = string(f.Status)
	}
	if f.CurrentIndex != nil {
		doc["currentIndex"] = *f.CurrentIndex
	}
	switch {
	case f.ScoredOnly:
		doc["overallScore"] = bson.M{"$exists": true, "$ne": nil}
	case f.UnscoredOnly:
		doc["overallScore"] = nil
	}
	if !f.UpdatedSince.IsZero() {
		doc["updatedAt"] = bson.M{"$gte": f.UpdatedSince.UTC()}
	}
	return doc
}

func findOptions(opts store.FindOptions) *options.FindOptions {
	fo := options.Find()
	if opts.SortBy != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		fo.SetSort(bson.D{{Key: opts.SortBy, Value: dir}})
	}
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	return fo
}

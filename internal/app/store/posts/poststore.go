package poststore

import (
	"context"
	"time"

	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Create inserts a new post. Counters start at zero; content is immutable
// after this point.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = uuid.NewString()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a post by id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts newest-first, optionally filtered by post type.
func (s *Store) List(ctx context.Context, skip, limit int64, postType string) ([]models.Post, error) {
	filter := bson.M{}
	if postType != "" {
		filter["post_type"] = postType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Exists reports whether a post with the given id exists.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch err {
	case nil:
		return true, nil
	case mongo.ErrNoDocuments:
		return false, nil
	default:
		return false, err
	}
}

// IncCommentsCount bumps the post's comment counter.
func (s *Store) IncCommentsCount(ctx context.Context, id string, delta int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"comments_count": delta}})
	return err
}

// SetCommentsCount overwrites the post's comment counter. Used by startup
// reconciliation.
func (s *Store) SetCommentsCount(ctx context.Context, id string, n int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"comments_count": n}})
	return err
}

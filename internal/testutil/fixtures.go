package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given email and username.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, email, username string) models.User {
	f.t.Helper()

	user := models.User{
		ID:             uuid.NewString(),
		Email:          email,
		Username:       username,
		PasswordHash:   "$2a$10$invalidhashforfixtureusers0000000000000000000000000000",
		FullName:       "Test User",
		SoftSkills:     []string{},
		PersonalValues: []string{},
		Engagements:    []string{},
		Badges:         []string{},
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreatePost creates a test post authored by the given user.
func (f *Fixtures) CreatePost(ctx context.Context, userID, content, postType string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		PostType:  postType,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateComment creates a test comment on the given post.
func (f *Fixtures) CreateComment(ctx context.Context, postID, userID, content string) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateBadge creates a pending badge nomination for the given user.
func (f *Fixtures) CreateBadge(ctx context.Context, userID, badgeType string) models.Badge {
	f.t.Helper()

	badge := models.Badge{
		ID:        uuid.NewString(),
		UserID:    userID,
		BadgeType: badgeType,
		Title:     "Test Badge",
		Status:    models.BadgeStatusPending,
		Voters:    []string{},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("badges").InsertOne(ctx, badge); err != nil {
		f.t.Fatalf("failed to create test badge: %v", err)
	}
	return badge
}

// CreateChallenge creates an active challenge with an optional participant cap.
func (f *Fixtures) CreateChallenge(ctx context.Context, createdBy string, maxParticipants *int) models.Challenge {
	f.t.Helper()

	now := time.Now().UTC()
	challenge := models.Challenge{
		ID:              uuid.NewString(),
		Title:           "Test Challenge",
		Category:        models.DefaultChallengeCategory,
		StartDate:       now,
		EndDate:         now.Add(7 * 24 * time.Hour),
		Participants:    []string{},
		MaxParticipants: maxParticipants,
		Rewards:         []string{},
		CreatedBy:       createdBy,
		CreatedAt:       now,
		IsActive:        true,
	}

	if _, err := f.db.Collection("challenges").InsertOne(ctx, challenge); err != nil {
		f.t.Fatalf("failed to create test challenge: %v", err)
	}
	return challenge
}

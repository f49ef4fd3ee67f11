package challengestore

import (
	"context"
	"errors"
	"time"

	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyJoined is returned when the user is already a participant.
	ErrAlreadyJoined = errors.New("you are already participating in this challenge")
	// ErrFull is returned when the challenge has reached max_participants.
	ErrFull = errors.New("challenge is full")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("challenges")}
}

// Create inserts a new challenge. The date range is stored as given; start
// before end is not enforced.
func (s *Store) Create(ctx context.Context, ch models.Challenge) (models.Challenge, error) {
	ch.ID = uuid.NewString()
	if ch.Category == "" {
		ch.Category = models.DefaultChallengeCategory
	}
	ch.Participants = []string{}
	if ch.Rewards == nil {
		ch.Rewards = []string{}
	}
	ch.CreatedAt = time.Now().UTC()
	ch.IsActive = true

	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		return models.Challenge{}, err
	}
	return ch, nil
}

// GetByID loads a challenge by id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Challenge, error) {
	var ch models.Challenge
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// List returns challenges newest-first, capped at 100 results. With
// activeOnly set, only challenges whose is_active flag is true are returned.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Challenge, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(100)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	challenges := []models.Challenge{}
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// Join appends the user to the participant list in one atomic document
// update. The filter requires the user to be absent from the list and, when
// max_participants is set, the list to still have room ($expr compares the
// current participant count against the cap inside the storage engine).
// Concurrent joins therefore cannot duplicate a participant or overshoot
// capacity: updates that lose the race match nothing.
//
// A non-matching update is classified with one read: unknown id maps to
// mongo.ErrNoDocuments, a repeat join to ErrAlreadyJoined, a full challenge
// to ErrFull.
func (s *Store) Join(ctx context.Context, challengeID, userID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":          challengeID,
			"participants": bson.M{"$ne": userID},
			"$or": bson.A{
				bson.M{"max_participants": nil},
				bson.M{"$expr": bson.M{"$lt": bson.A{
					bson.M{"$size": "$participants"},
					"$max_participants",
				}}},
			},
		},
		bson.M{"$push": bson.M{"participants": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	var ch models.Challenge
	if err := s.c.FindOne(ctx, bson.M{"_id": challengeID}).Decode(&ch); err != nil {
		return err // mongo.ErrNoDocuments for unknown challenge
	}
	for _, p := range ch.Participants {
		if p == userID {
			return ErrAlreadyJoined
		}
	}
	return ErrFull
}

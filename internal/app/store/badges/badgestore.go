package badgestore

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

// ValidationThreshold is the number of for-votes that auto-validates a
// pending badge. There is no symmetric auto-rejection on against-votes.
const ValidationThreshold = 5

// ErrAlreadyVoted is returned when the voter is already in the badge's voter set.
var ErrAlreadyVoted = errors.New("you have already voted on this badge")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("badges")}
}

// Create inserts a new nomination in the pending state. Duplicate nominations
// for the same subject and type are allowed.
func (s *Store) Create(ctx context.Context, b models.Badge) (models.Badge, error) {
	b.ID = uuid.NewString()
	b.Status = models.BadgeStatusPending
	b.VotesFor = 0
	b.VotesAgainst = 0
	b.Voters = []string{}
	b.AwardedBy = ""
	b.ValidatedAt = nil
	b.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Badge{}, err
	}
	return b, nil
}

// GetByID loads a badge by id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Badge, error) {
	var b models.Badge
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns badges newest-first, optionally filtered by subject user and
// status, capped at 100 results.
func (s *Store) List(ctx context.Context, subjectID, status string) ([]models.Badge, error) {
	filter := bson.M{}
	if subjectID != "" {
		filter["user_id"] = subjectID
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(100)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	badges := []models.Badge{}
	if err := cur.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// RecordVote appends the voter and bumps the matching counter in one atomic
// document update. The filter requires the voter to be absent from the voter
// set, so two concurrent votes from the same user cannot both be recorded:
// exactly one matches, the other falls through to the classification read.
//
// Returns mongo.ErrNoDocuments for an unknown badge and ErrAlreadyVoted for a
// repeat vote.
func (s *Store) RecordVote(ctx context.Context, badgeID, voterID string, inFavor bool) error {
	counter := "votes_against"
	if inFavor {
		counter = "votes_for"
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": badgeID, "voters": bson.M{"$ne": voterID}},
		bson.M{
			"$addToSet": bson.M{"voters": voterID},
			"$inc":      bson.M{counter: 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the badge does not exist or the voter already
	// voted. One read tells them apart.
	if err := s.c.FindOne(ctx, bson.M{"_id": badgeID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err(); err != nil {
		return err // mongo.ErrNoDocuments for unknown badge
	}
	return ErrAlreadyVoted
}

// ValidateIfThresholdMet transitions the badge to validated when it is still
// pending and has reached the vote threshold, stamping the validation time
// and community attribution.
//
// The condition and the transition are one atomic update, so concurrent
// voters crossing the threshold race to a single winner; everyone else sees
// no transition. Returns the validated badge and true when this call
// performed the transition.
func (s *Store) ValidateIfThresholdMet(ctx context.Context, badgeID string) (*models.Badge, bool, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Badge
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"_id":       badgeID,
			"status":    models.BadgeStatusPending,
			"votes_for": bson.M{"$gte": ValidationThreshold},
		},
		bson.M{"$set": bson.M{
			"status":       models.BadgeStatusValidated,
			"validated_at": now,
			"awarded_by":   "community",
		}},
		opts,
	).Decode(&b)
	if err == mongo.ErrNoDocuments {
		// Below threshold, already validated, or unknown id; no transition.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &b, true, nil
}

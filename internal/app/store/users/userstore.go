package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/ckluximon/ubuntoo/internal/app/system/normalize"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUsername is returned when attempting to create a user with a username that already exists.
	ErrDuplicateUsername = errors.New("username already taken")
)

// Create inserts a new user after normalizing fields.
//
// The email check runs before the username check so a request that collides
// on both reports the email conflict. The pre-checks give precise errors on
// the common path; the unique indexes on email and username close the race
// between two concurrent registrations, and a duplicate-key insert failure is
// re-classified by looking the email up again.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = uuid.NewString()
	u.Email = normalize.Email(u.Email)
	u.Username = normalize.Username(u.Username)
	u.FullName = normalize.Name(u.FullName)

	if err := s.c.FindOne(ctx, bson.M{"email": u.Email}).Err(); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}
	if err := s.c.FindOne(ctx, bson.M{"username": u.Username}).Err(); err == nil {
		return models.User{}, ErrDuplicateUsername
	} else if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	// Empty slices rather than nulls so the JSON surface is stable.
	if u.SoftSkills == nil {
		u.SoftSkills = []string{}
	}
	if u.PersonalValues == nil {
		u.PersonalValues = []string{}
	}
	if u.Engagements == nil {
		u.Engagements = []string{}
	}
	if u.Badges == nil {
		u.Badges = []string{}
	}

	u.CreatedAt = time.Now().UTC()
	u.IsActive = true

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a registration race; figure out which field collided.
			if e := s.c.FindOne(ctx, bson.M{"email": u.Email}).Err(); e == nil {
				return models.User{}, ErrDuplicateEmail
			}
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by id. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with the given id exists.
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

// List returns users in store order with offset pagination.
func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.User, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate holds the optional profile fields a user may change about
// themselves. Nil fields are left untouched (partial-update semantics).
type ProfileUpdate struct {
	FullName       *string   `json:"full_name"`
	Bio            *string   `json:"bio"`
	JobTitle       *string   `json:"job_title"`
	Location       *string   `json:"location"`
	ProfileImage   *string   `json:"profile_image"`
	SoftSkills     *[]string `json:"soft_skills"`
	PersonalValues *[]string `json:"personal_values"`
	Engagements    *[]string `json:"engagements"`
}

// SetDoc builds the $set document from the non-nil fields.
// Returns an empty map when nothing is being changed.
func (p ProfileUpdate) SetDoc() bson.M {
	set := bson.M{}
	if p.FullName != nil {
		set["full_name"] = normalize.Name(*p.FullName)
	}
	if p.Bio != nil {
		set["bio"] = *p.Bio
	}
	if p.JobTitle != nil {
		set["job_title"] = *p.JobTitle
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.ProfileImage != nil {
		set["profile_image"] = *p.ProfileImage
	}
	if p.SoftSkills != nil {
		set["soft_skills"] = *p.SoftSkills
	}
	if p.PersonalValues != nil {
		set["personal_values"] = *p.PersonalValues
	}
	if p.Engagements != nil {
		set["engagements"] = *p.Engagements
	}
	return set
}

// UpdateProfile applies the non-nil fields of upd to the user and returns the
// updated document. A no-op update returns the current document unchanged.
func (s *Store) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	set := upd.SetDoc()
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// IncPostsCount bumps the user's post counter.
func (s *Store) IncPostsCount(ctx context.Context, id string, delta int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"posts_count": delta}})
	return err
}

// AddBadge adds a validated badge type to the user's badge list.
// $addToSet keeps the list duplicate-free, so redundant validation passes
// crossing the threshold concurrently are harmless.
func (s *Store) AddBadge(ctx context.Context, id, badgeType string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"badges": badgeType}})
	return err
}

// SetPostsCount overwrites the user's post counter. Used by startup
// reconciliation.
func (s *Store) SetPostsCount(ctx context.Context, id string, n int) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"posts_count": n}})
	return err
}

// SummariesByIDs fetches author summaries for a set of user ids in one query.
func (s *Store) SummariesByIDs(ctx context.Context, ids []string) (map[string]models.AuthorSummary, error) {
	out := make(map[string]models.AuthorSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	proj := options.Find().SetProjection(bson.M{
		"_id":           1,
		"username":      1,
		"full_name":     1,
		"profile_image": 1,
		"job_title":     1,
	})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sum models.AuthorSummary
		if err := cur.Decode(&sum); err != nil {
			return nil, err
		}
		out[sum.ID] = sum
	}
	return out, cur.Err()
}

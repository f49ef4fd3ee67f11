package badgestore_test

import (
	"fmt"
	"testing"

	badgestore "github.com/ckluximon/ubuntoo/internal/app/store/badges"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/ckluximon/ubuntoo/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateStartsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := badgestore.New(db)

	created, err := store.Create(ctx, models.Badge{
		UserID:    "subject-1",
		BadgeType: models.BadgeTypeEmpathy,
		Title:     "Community Mentor",
		// Client-supplied state must be ignored.
		Status:   models.BadgeStatusValidated,
		VotesFor: 99,
		Voters:   []string{"stuffed"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Status != models.BadgeStatusPending {
		t.Errorf("status: got %q, want pending", created.Status)
	}
	if created.VotesFor != 0 || created.VotesAgainst != 0 {
		t.Errorf("counters not zeroed: %d/%d", created.VotesFor, created.VotesAgainst)
	}
	if len(created.Voters) != 0 {
		t.Errorf("voters not emptied: %v", created.Voters)
	}
	if created.ValidatedAt != nil {
		t.Error("validated_at should be unset")
	}
}

func TestRecordVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := badgestore.New(db)

	badge := fx.CreateBadge(ctx, "subject-1", models.BadgeTypeEmpathy)

	if err := store.RecordVote(ctx, badge.ID, "voter-1", true); err != nil {
		t.Fatalf("RecordVote: %v", err)
	}
	if err := store.RecordVote(ctx, badge.ID, "voter-2", false); err != nil {
		t.Fatalf("RecordVote: %v", err)
	}

	got, err := store.GetByID(ctx, badge.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.VotesFor != 1 || got.VotesAgainst != 1 {
		t.Errorf("counters: got %d/%d, want 1/1", got.VotesFor, got.VotesAgainst)
	}
	if len(got.Voters) != 2 {
		t.Errorf("voters: got %v", got.Voters)
	}
}

func TestRecordVoteDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := badgestore.New(db)

	badge := fx.CreateBadge(ctx, "subject-1", models.BadgeTypeEmpathy)

	if err := store.RecordVote(ctx, badge.ID, "voter-1", true); err != nil {
		t.Fatalf("RecordVote: %v", err)
	}
	// Same voter again, even flipping sides, is rejected.
	if err := store.RecordVote(ctx, badge.ID, "voter-1", false); err != badgestore.ErrAlreadyVoted {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	got, err := store.GetByID(ctx, badge.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.VotesFor != 1 || got.VotesAgainst != 0 {
		t.Errorf("counters changed by rejected vote: %d/%d", got.VotesFor, got.VotesAgainst)
	}
}

func TestRecordVoteUnknownBadge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := badgestore.New(db)

	if err := store.RecordVote(ctx, "no-such-badge", "voter-1", true); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestValidateIfThresholdMet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := badgestore.New(db)

	badge := fx.CreateBadge(ctx, "subject-1", models.BadgeTypeInnovation)

	for i := 0; i < badgestore.ValidationThreshold-1; i++ {
		if err := store.RecordVote(ctx, badge.ID, fmt.Sprintf("voter-%d", i), true); err != nil {
			t.Fatalf("RecordVote: %v", err)
		}
		if _, transitioned, err := store.ValidateIfThresholdMet(ctx, badge.ID); err != nil {
			t.Fatalf("ValidateIfThresholdMet: %v", err)
		} else if transitioned {
			t.Fatalf("transitioned after %d votes", i+1)
		}
	}

	if err := store.RecordVote(ctx, badge.ID, "voter-final", true); err != nil {
		t.Fatalf("RecordVote: %v", err)
	}

	validated, transitioned, err := store.ValidateIfThresholdMet(ctx, badge.ID)
	if err != nil {
		t.Fatalf("ValidateIfThresholdMet: %v", err)
	}
	if !transitioned {
		t.Fatal("expected transition at threshold")
	}
	if validated.Status != models.BadgeStatusValidated {
		t.Errorf("status: got %q", validated.Status)
	}
	if validated.AwardedBy != "community" {
		t.Errorf("awarded_by: got %q", validated.AwardedBy)
	}
	if validated.ValidatedAt == nil {
		t.Error("validated_at not stamped")
	}

	// A second pass sees the badge already validated and does nothing.
	if _, again, err := store.ValidateIfThresholdMet(ctx, badge.ID); err != nil {
		t.Fatalf("ValidateIfThresholdMet: %v", err)
	} else if again {
		t.Error("validated badge transitioned twice")
	}
}

func TestAgainstVotesDoNotValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := badgestore.New(db)

	badge := fx.CreateBadge(ctx, "subject-1", models.BadgeTypeEmpathy)

	for i := 0; i < badgestore.ValidationThreshold+1; i++ {
		if err := store.RecordVote(ctx, badge.ID, fmt.Sprintf("voter-%d", i), false); err != nil {
			t.Fatalf("RecordVote: %v", err)
		}
	}

	if _, transitioned, err := store.ValidateIfThresholdMet(ctx, badge.ID); err != nil {
		t.Fatalf("ValidateIfThresholdMet: %v", err)
	} else if transitioned {
		t.Error("against-votes triggered validation")
	}

	got, err := store.GetByID(ctx, badge.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.BadgeStatusPending {
		t.Errorf("status: got %q, want pending", got.Status)
	}
}

func TestListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := badgestore.New(db)

	fx.CreateBadge(ctx, "subject-1", models.BadgeTypeEmpathy)
	fx.CreateBadge(ctx, "subject-1", models.BadgeTypeInnovation)
	fx.CreateBadge(ctx, "subject-2", models.BadgeTypeEmpathy)

	all, err := store.List(ctx, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all: got %d, want 3", len(all))
	}

	forSubject, err := store.List(ctx, "subject-1", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(forSubject) != 2 {
		t.Errorf("subject filter: got %d, want 2", len(forSubject))
	}

	pending, err := store.List(ctx, "subject-2", models.BadgeStatusPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("status filter: got %d, want 1", len(pending))
	}

	validated, err := store.List(ctx, "", models.BadgeStatusValidated)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(validated) != 0 {
		t.Errorf("validated filter: got %d, want 0", len(validated))
	}
}

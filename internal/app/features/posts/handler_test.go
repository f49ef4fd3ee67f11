package posts_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ckluximon/ubuntoo/internal/app/features/posts"
	"github.com/ckluximon/ubuntoo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestCreateBumpsAuthorCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")

	req := testutil.NewJSONRequest("POST", "/posts",
		`{"content":"Started a repair café","post_type":"action","tags":["community"]}`)
	req = testutil.WithUser(req, testutil.FromUser(author))
	rec := testutil.NewRecorder()
	h.Create(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID       string   `json:"id"`
		UserID   string   `json:"user_id"`
		PostType string   `json:"post_type"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if created.UserID != author.ID {
		t.Errorf("user_id: got %q, want %q", created.UserID, author.ID)
	}
	if len(created.Tags) != 1 {
		t.Errorf("tags: got %v", created.Tags)
	}

	var u struct {
		PostsCount int `bson:"posts_count"`
	}
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": author.ID}).Decode(&u); err != nil {
		t.Fatalf("load author: %v", err)
	}
	if u.PostsCount != 1 {
		t.Errorf("posts_count: got %d, want 1", u.PostsCount)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")

	bad := []string{
		`{"post_type":"idea"}`,
		`{"content":"hello","post_type":"rant"}`,
		`{"content":"hello"}`,
	}
	for _, payload := range bad {
		req := testutil.WithUser(testutil.NewJSONRequest("POST", "/posts", payload), testutil.FromUser(author))
		rec := testutil.NewRecorder()
		h.Create(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("payload %s: got %d, want 422", payload, rec.Code)
		}
	}
}

func TestListEnrichesAuthors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")
	fx.CreatePost(ctx, author.ID, "first", "idea")
	fx.CreatePost(ctx, "gone-user", "orphaned", "idea")

	req := testutil.NewAuthenticatedRequest("GET", "/posts", testutil.FromUser(author))
	rec := testutil.NewRecorder()
	h.List(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var feed []struct {
		Content string `json:"content"`
		User    *struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed size: got %d, want 2", len(feed))
	}

	for _, item := range feed {
		switch item.Content {
		case "first":
			if item.User == nil || item.User.Username != "author" {
				t.Errorf("post %q: author not enriched: %+v", item.Content, item.User)
			}
		case "orphaned":
			if item.User != nil {
				t.Errorf("post %q: expected null user, got %+v", item.Content, item.User)
			}
		}
	}
}

func TestListFiltersByType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")
	fx.CreatePost(ctx, author.ID, "an idea", "idea")
	fx.CreatePost(ctx, author.ID, "an action", "action")

	req := testutil.NewAuthenticatedRequest("GET", "/posts?post_type=idea", testutil.FromUser(author))
	rec := testutil.NewRecorder()
	h.List(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var feed []struct {
		PostType string `json:"post_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(feed) != 1 || feed[0].PostType != "idea" {
		t.Errorf("type filter: got %+v", feed)
	}

	// An unknown type is rejected rather than returning an empty feed.
	req = testutil.NewAuthenticatedRequest("GET", "/posts?post_type=rant", testutil.FromUser(author))
	rec = testutil.NewRecorder()
	h.List(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestGetUnknownPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := posts.NewHandler(db, zap.NewNop())

	req := testutil.NewRequest("GET", "/posts/no-such-id")
	req = testutil.WithChiURLParam(req, "id", "no-such-id")
	rec := testutil.NewRecorder()
	h.Get(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "post not found")
}

func TestAddComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")
	commenter := fx.CreateUser(ctx, "commenter@example.com", "commenter")
	post := fx.CreatePost(ctx, author.ID, "discuss", "idea")

	req := testutil.NewJSONRequest("POST", "/posts/"+post.ID+"/comments", `{"content":"great point"}`)
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.FromUser(commenter)), "id", post.ID)
	rec := testutil.NewRecorder()
	h.AddComment(rec, req)

	rec.AssertStatus(t, http.StatusCreated)

	var comment struct {
		ID      string `json:"id"`
		PostID  string `json:"post_id"`
		UserID  string `json:"user_id"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &comment); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if comment.PostID != post.ID || comment.UserID != commenter.ID {
		t.Errorf("comment attribution: %+v", comment)
	}

	var p struct {
		CommentsCount int `bson:"comments_count"`
	}
	if err := db.Collection("posts").FindOne(ctx, bson.M{"_id": post.ID}).Decode(&p); err != nil {
		t.Fatalf("load post: %v", err)
	}
	if p.CommentsCount != 1 {
		t.Errorf("comments_count: got %d, want 1", p.CommentsCount)
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	commenter := fx.CreateUser(ctx, "commenter@example.com", "commenter")

	req := testutil.NewJSONRequest("POST", "/posts/ghost/comments", `{"content":"hello?"}`)
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.FromUser(commenter)), "id", "ghost")
	rec := testutil.NewRecorder()
	h.AddComment(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestListComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := posts.NewHandler(db, zap.NewNop())

	author := fx.CreateUser(ctx, "author@example.com", "author")
	post := fx.CreatePost(ctx, author.ID, "discuss", "idea")
	fx.CreateComment(ctx, post.ID, author.ID, "one")
	fx.CreateComment(ctx, post.ID, author.ID, "two")

	req := testutil.NewRequest("GET", "/posts/"+post.ID+"/comments")
	req = testutil.WithChiURLParam(req, "id", post.ID)
	rec := testutil.NewRecorder()
	h.ListComments(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var comments []struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("comments: got %d, want 2", len(comments))
	}
}

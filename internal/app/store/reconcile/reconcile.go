// Package reconcile repairs denormalized counters at startup.
//
// Post creation and comment creation each perform two non-transactional
// writes: the primary insert and a counter increment on a related document.
// A crash or driver error between the two leaves the counter behind the
// authoritative collection. Rather than accepting silent drift, the counts
// are recomputed from the source collections and patched on every startup;
// the repair is idempotent, so running it redundantly is harmless.
package reconcile

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Counters recomputes users.posts_count from the posts collection and
// posts.comments_count from the comments collection, updating any document
// whose stored counter disagrees with the actual count.
func Counters(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	repaired, err := repairCounter(ctx,
		db.Collection("posts"), "user_id",
		db.Collection("users"), "posts_count")
	if err != nil {
		return err
	}
	if repaired > 0 {
		logger.Info("repaired post counters", zap.Int("users", repaired))
	}

	repaired, err = repairCounter(ctx,
		db.Collection("comments"), "post_id",
		db.Collection("posts"), "comments_count")
	if err != nil {
		return err
	}
	if repaired > 0 {
		logger.Info("repaired comment counters", zap.Int("posts", repaired))
	}
	return nil
}

// repairCounter groups source documents by groupField, then rewrites
// counterField on each target document whose stored value differs. Targets
// with no source documents at all are reset to zero.
func repairCounter(ctx context.Context, source *mongo.Collection, groupField string, target *mongo.Collection, counterField string) (int, error) {
	cur, err := source.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + groupField,
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	counts := map[string]int{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		counts[row.ID] = row.Count
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	// Walk the targets and patch mismatches, including counters that should
	// drop back to zero because every source document is gone.
	tcur, err := target.Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer tcur.Close(ctx)

	repaired := 0
	for tcur.Next(ctx) {
		var doc struct {
			ID     string `bson:"_id"`
			Stored int    `bson:"-"`
		}
		raw := bson.M{}
		if err := tcur.Decode(&raw); err != nil {
			return repaired, err
		}
		id, _ := raw["_id"].(string)
		if id == "" {
			continue
		}
		doc.ID = id
		switch v := raw[counterField].(type) {
		case int32:
			doc.Stored = int(v)
		case int64:
			doc.Stored = int(v)
		case int:
			doc.Stored = v
		}

		want := counts[doc.ID]
		if doc.Stored == want {
			continue
		}
		if _, err := target.UpdateOne(ctx,
			bson.M{"_id": doc.ID},
			bson.M{"$set": bson.M{counterField: want}},
		); err != nil {
			return repaired, err
		}
		repaired++
	}
	return repaired, tcur.Err()
}

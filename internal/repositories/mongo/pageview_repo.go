package mongo

import (
	"context"
	"time"

	"github.com/yoockh/folio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PageViewRepository interface {
	Insert(ctx context.Context, v *models.PageView) error
	// DailyCounts groups views since `since` by UTC day, oldest first.
	DailyCounts(ctx context.Context, portfolioID string, since time.Time) ([]models.DailyViews, error)
}

type pageViewRepo struct {
	col *mongo.Collection
}

func NewPageViewRepo(db *mongo.Database) PageViewRepository {
	return &pageViewRepo{col: db.Collection("page_views")}
}

func (r *pageViewRepo) Insert(ctx context.Context, v *models.PageView) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *pageViewRepo) DailyCounts(ctx context.Context, portfolioID string, since time.Time) ([]models.DailyViews, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"portfolio_id": portfolioID,
			"ts":           bson.M{"$gte": since.UTC()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$ts"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.DailyViews{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

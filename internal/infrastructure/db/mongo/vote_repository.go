package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository using MongoDB. The unique
// (user_id, date) index created by EnsureIndexes backs the one-vote-per-day rule.
type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

type voteDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"user_id"`
	RestaurantID string    `bson:"restaurant_id"`
	Date         time.Time `bson:"date"`
	Time         time.Time `bson:"time"`
}

func (d voteDocument) toDomain() *domain.Vote {
	return &domain.Vote{ID: d.ID, UserID: d.UserID, RestaurantID: d.RestaurantID, Date: d.Date.UTC(), Time: d.Time.UTC()}
}

func (r *VoteRepository) Create(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := voteDocument{
		ID:           uuid.NewString(),
		UserID:       v.UserID,
		RestaurantID: v.RestaurantID,
		Date:         v.Date,
		Time:         v.Time,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert vote: %w", translate(err))
	}
	return doc.toDomain(), nil
}

func (r *VoteRepository) Update(ctx context.Context, v *domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"restaurant_id": v.RestaurantID, "time": v.Time}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": v.ID}, update)
	if err != nil {
		return fmt.Errorf("update vote: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VoteRepository) FindByID(ctx context.Context, id, userID string) (*domain.Vote, error) {
	return r.findOne(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *VoteRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*domain.Vote, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "date": date})
}

func (r *VoteRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"date": date}, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find votes: %w", err)
	}

	var docs []voteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode votes: %w", err)
	}
	out := make([]*domain.Vote, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *VoteRepository) CountByDate(ctx context.Context, date time.Time) ([]domain.VoteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": date}}},
		{{Key: "$group", Value: bson.M{"_id": "$restaurant_id", "votes": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate votes: %w", err)
	}

	var rows []struct {
		RestaurantID string `bson:"_id"`
		Votes        int64  `bson:"votes"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode vote counts: %w", err)
	}
	out := make([]domain.VoteResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.VoteResult{RestaurantID: row.RestaurantID, Votes: row.Votes})
	}
	return out, nil
}

func (r *VoteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc voteDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toDomain(), nil
}

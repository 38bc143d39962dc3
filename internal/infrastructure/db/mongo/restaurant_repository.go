package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

// RestaurantRepository implements ports.RestaurantRepository using MongoDB.
type RestaurantRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{db: db, col: db.Collection(collectionRestaurants)}
}

type restaurantDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := restaurantDocument{ID: uuid.NewString(), Name: rest.Name}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", translate(err))
	}
	return &domain.Restaurant{ID: doc.ID, Name: doc.Name}, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": rest.ID}, bson.M{"$set": bson.M{"name": rest.Name}})
	if err != nil {
		return fmt.Errorf("update restaurant: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the restaurant, then its dishes and votes.
func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	owned := bson.M{"restaurant_id": id}
	if _, err := r.db.Collection(collectionDishes).DeleteMany(ctx, owned); err != nil {
		return fmt.Errorf("delete dishes of restaurant %s: %w", id, err)
	}
	if _, err := r.db.Collection(collectionVotes).DeleteMany(ctx, owned); err != nil {
		return fmt.Errorf("delete votes of restaurant %s: %w", id, err)
	}
	return nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc restaurantDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &domain.Restaurant{ID: doc.ID, Name: doc.Name}, nil
}

func (r *RestaurantRepository) FindAll(ctx context.Context) ([]*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}

	var docs []restaurantDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	out := make([]*domain.Restaurant, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Restaurant{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

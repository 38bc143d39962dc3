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
	"github.com/lunchvote/voting-api/internal/core/ports"
)

// DishRepository implements ports.DishRepository using MongoDB.
type DishRepository struct {
	col *mongo.Collection
}

func NewDishRepository(db *mongo.Database) *DishRepository {
	return &DishRepository{col: db.Collection(collectionDishes)}
}

type dishDocument struct {
	ID           string    `bson:"_id"`
	RestaurantID string    `bson:"restaurant_id"`
	Name         string    `bson:"name"`
	Date         time.Time `bson:"date"`
	Price        int64     `bson:"price"`
}

func (d dishDocument) toDomain() *domain.Dish {
	return &domain.Dish{ID: d.ID, RestaurantID: d.RestaurantID, Name: d.Name, Date: d.Date.UTC(), Price: d.Price}
}

func (r *DishRepository) Create(ctx context.Context, d *domain.Dish) (*domain.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := dishDocument{
		ID:           uuid.NewString(),
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Date:         d.Date,
		Price:        d.Price,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert dish: %w", translate(err))
	}
	return doc.toDomain(), nil
}

func (r *DishRepository) Update(ctx context.Context, d *domain.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": d.Name, "date": d.Date, "price": d.Price}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": d.ID, "restaurant_id": d.RestaurantID}, update)
	if err != nil {
		return fmt.Errorf("update dish: %w", translate(err))
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DishRepository) Delete(ctx context.Context, id, restaurantID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DishRepository) FindByID(ctx context.Context, id, restaurantID string) (*domain.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc dishDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toDomain(), nil
}

func (r *DishRepository) List(ctx context.Context, f ports.DishFilter) ([]*domain.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.RestaurantID != "" {
		filter["restaurant_id"] = f.RestaurantID
	}
	if !f.Date.IsZero() {
		filter["date"] = f.Date
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find dishes: %w", err)
	}

	var docs []dishDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode dishes: %w", err)
	}
	out := make([]*domain.Dish, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

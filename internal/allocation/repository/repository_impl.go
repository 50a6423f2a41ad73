package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/motorpool/internal/allocation/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "allocations"

type repo struct {
	collection *mongo.Collection
}

func Provide(database *mongo.Database) domain.Repository {
	return &repo{collection: database.Collection(collectionName)}
}

func (r *repo) FindOne(ctx context.Context, filter domain.Filter) (*domain.Allocation, error) {
	var allocation domain.Allocation
	err := r.collection.FindOne(ctx, buildFilter(filter)).Decode(&allocation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

func (r *repo) Find(ctx context.Context, filter domain.Filter) ([]domain.Allocation, error) {
	cursor, err := r.collection.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	allocations := []domain.Allocation{}
	if err := cursor.All(ctx, &allocations); err != nil {
		return nil, err
	}
	return allocations, nil
}

func (r *repo) InsertOne(ctx context.Context, allocation *domain.Allocation) error {
	allocation.AllocationDate = domain.MidnightUTC(allocation.AllocationDate)
	_, err := r.collection.InsertOne(ctx, allocation)
	return err
}

func (r *repo) UpdateOne(ctx context.Context, id primitive.ObjectID, fields domain.UpdateFields) (int64, error) {
	set := buildUpdate(fields)
	if len(set) == 0 {
		return 0, nil
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *repo) DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func buildFilter(filter domain.Filter) bson.M {
	query := bson.M{}
	if filter.ID != nil {
		query["_id"] = *filter.ID
	}
	if filter.EmployeeID != "" {
		query["employee_id"] = filter.EmployeeID
	}
	if filter.VehicleID != "" {
		query["vehicle_id"] = filter.VehicleID
	}
	if filter.AllocationDate != nil {
		query["allocation_date"] = domain.MidnightUTC(*filter.AllocationDate)
	}
	return query
}

func buildUpdate(fields domain.UpdateFields) bson.M {
	set := bson.M{}
	if fields.VehicleID != nil {
		set["vehicle_id"] = *fields.VehicleID
	}
	if fields.AllocationDate != nil {
		set["allocation_date"] = domain.MidnightUTC(*fields.AllocationDate)
	}
	return set
}

package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter selects allocations by equality on any combination of fields.
// Zero-valued fields are left out of the query; an empty filter matches all.
type Filter struct {
	ID             *primitive.ObjectID
	EmployeeID     string
	VehicleID      string
	AllocationDate *time.Time
}

// UpdateFields carries a partial update; only non-nil fields are merged.
type UpdateFields struct {
	VehicleID      *string
	AllocationDate *time.Time
}

// Repository is the allocation store gateway. Each call is a single
// round trip against the allocations collection; there are no retries
// and no cross-call transactions.
type Repository interface {
	FindOne(ctx context.Context, filter Filter) (*Allocation, error)
	Find(ctx context.Context, filter Filter) ([]Allocation, error)
	InsertOne(ctx context.Context, allocation *Allocation) error
	UpdateOne(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (int64, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error)
}

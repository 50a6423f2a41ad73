package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Allocation binds one employee to one vehicle for one calendar date.
// AllocationDate is always anchored to midnight UTC in persisted form.
type Allocation struct {
	ID             primitive.ObjectID `bson:"_id"`
	EmployeeID     string             `bson:"employee_id"`
	VehicleID      string             `bson:"vehicle_id"`
	AllocationDate time.Time          `bson:"allocation_date"`
}

// MidnightUTC normalizes a calendar date to its canonical stored instant.
// The same date must always map to the same instant or the create-time
// uniqueness check breaks.
func MidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

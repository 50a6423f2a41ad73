package repository

import (
	"testing"
	"time"

	"github.com/smallbiznis/motorpool/internal/allocation/domain"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	id := primitive.NewObjectID()
	date := time.Date(2024, 6, 1, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name   string
		filter domain.Filter
		want   bson.M
	}{
		{
			name:   "empty filter matches all",
			filter: domain.Filter{},
			want:   bson.M{},
		},
		{
			name:   "by id",
			filter: domain.Filter{ID: &id},
			want:   bson.M{"_id": id},
		},
		{
			name:   "vehicle and date normalized to midnight utc",
			filter: domain.Filter{VehicleID: "car1", AllocationDate: &date},
			want: bson.M{
				"vehicle_id":      "car1",
				"allocation_date": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:   "employee and vehicle conjunction",
			filter: domain.Filter{EmployeeID: "emp1", VehicleID: "car2"},
			want:   bson.M{"employee_id": "emp1", "vehicle_id": "car2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	vehicle := "car9"
	date := time.Date(2024, 6, 2, 23, 59, 0, 0, time.UTC)

	set := buildUpdate(domain.UpdateFields{VehicleID: &vehicle, AllocationDate: &date})
	assert.Equal(t, bson.M{
		"vehicle_id":      "car9",
		"allocation_date": time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}, set)

	assert.Empty(t, buildUpdate(domain.UpdateFields{}))
}

func TestMidnightUTCBitConsistent(t *testing.T) {
	// The same calendar date must map to the same stored instant regardless
	// of the time-of-day or zone it arrived with.
	zone := time.FixedZone("UTC+9", 9*3600)
	a := domain.MidnightUTC(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	b := domain.MidnightUTC(time.Date(2024, 6, 1, 18, 30, 0, 0, zone))

	assert.True(t, a.Equal(b))
	assert.Equal(t, a, domain.MidnightUTC(a))
}

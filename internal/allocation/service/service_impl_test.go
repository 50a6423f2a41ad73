package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/motorpool/internal/allocation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory stand-in for the Mongo gateway with the same
// equality-filter semantics.
type fakeRepo struct {
	allocations []domain.Allocation
}

func (f *fakeRepo) FindOne(_ context.Context, filter domain.Filter) (*domain.Allocation, error) {
	for i := range f.allocations {
		if matches(f.allocations[i], filter) {
			out := f.allocations[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Find(_ context.Context, filter domain.Filter) ([]domain.Allocation, error) {
	out := []domain.Allocation{}
	for _, a := range f.allocations {
		if matches(a, filter) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertOne(_ context.Context, allocation *domain.Allocation) error {
	allocation.AllocationDate = domain.MidnightUTC(allocation.AllocationDate)
	f.allocations = append(f.allocations, *allocation)
	return nil
}

func (f *fakeRepo) UpdateOne(_ context.Context, id primitive.ObjectID, fields domain.UpdateFields) (int64, error) {
	for i := range f.allocations {
		if f.allocations[i].ID == id {
			if fields.VehicleID != nil {
				f.allocations[i].VehicleID = *fields.VehicleID
			}
			if fields.AllocationDate != nil {
				f.allocations[i].AllocationDate = domain.MidnightUTC(*fields.AllocationDate)
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRepo) DeleteOne(_ context.Context, id primitive.ObjectID) (int64, error) {
	for i := range f.allocations {
		if f.allocations[i].ID == id {
			f.allocations = append(f.allocations[:i], f.allocations[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func matches(a domain.Allocation, filter domain.Filter) bool {
	if filter.ID != nil && a.ID != *filter.ID {
		return false
	}
	if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.VehicleID != "" && a.VehicleID != filter.VehicleID {
		return false
	}
	if filter.AllocationDate != nil && !a.AllocationDate.Equal(domain.MidnightUTC(*filter.AllocationDate)) {
		return false
	}
	return true
}

func newTestService(repo domain.Repository) domain.Service {
	return New(Params{Log: zap.NewNop(), Repo: repo})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateRejectsDuplicateVehicleDate(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID:     "emp1",
		VehicleID:      "car1",
		AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	// A different employee on the same vehicle and date still conflicts.
	_, err = svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID:     "emp2",
		VehicleID:      "car1",
		AllocationDate: date(2024, 6, 1),
	})
	assert.ErrorIs(t, err, domain.ErrVehicleAllocated)

	// The same vehicle on another date is fine.
	_, err = svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID:     "emp2",
		VehicleID:      "car1",
		AllocationDate: date(2024, 6, 2),
	})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	// The date arrives with a time-of-day; storage anchors it to midnight.
	created, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID:     "emp1",
		VehicleID:      "car1",
		AllocationDate: time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	got, err := svc.GetByID(ctx, domain.GetAllocationRequest{ID: created.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, "emp1", got.EmployeeID)
	assert.Equal(t, "car1", got.VehicleID)
	assert.Equal(t, date(2024, 6, 1), got.AllocationDate)
}

func TestGetInvalidIDNeverNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), domain.GetAllocationRequest{ID: "not-an-id"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), domain.GetAllocationRequest{ID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDoesNotRevalidateUniqueness(t *testing.T) {
	// Intended behavior: updates skip the (vehicle, date) uniqueness check,
	// so an update may produce a duplicate pair. A product decision is
	// needed before changing this.
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID: "emp1", VehicleID: "car1", AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID: "emp2", VehicleID: "car2", AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	vehicle := "car1"
	updated, err := svc.Update(ctx, domain.UpdateAllocationRequest{
		ID:             second.ID.Hex(),
		VehicleID:      &vehicle,
		AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "car1", updated.VehicleID)
	assert.Equal(t, first.VehicleID, updated.VehicleID)
	assert.True(t, first.AllocationDate.Equal(updated.AllocationDate))
}

func TestUpdateKeepsVehicleWhenAbsent(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID: "emp1", VehicleID: "car1", AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateAllocationRequest{
		ID:             created.ID.Hex(),
		AllocationDate: date(2024, 7, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, "car1", updated.VehicleID)
	assert.Equal(t, date(2024, 7, 15), updated.AllocationDate)
	assert.Equal(t, "emp1", updated.EmployeeID)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.Update(context.Background(), domain.UpdateAllocationRequest{
		ID:             primitive.NewObjectID().Hex(),
		AllocationDate: date(2024, 6, 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAlreadyDeleted(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateAllocationRequest{
		EmployeeID: "emp1", VehicleID: "car1", AllocationDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, domain.DeleteAllocationRequest{ID: created.ID.Hex()}))

	err = svc.Delete(ctx, domain.DeleteAllocationRequest{ID: created.ID.Hex()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryFilterComposition(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	seed := []domain.CreateAllocationRequest{
		{EmployeeID: "emp1", VehicleID: "car1", AllocationDate: date(2024, 6, 1)},
		{EmployeeID: "emp1", VehicleID: "car2", AllocationDate: date(2024, 6, 2)},
		{EmployeeID: "emp2", VehicleID: "car2", AllocationDate: date(2024, 6, 3)},
	}
	for _, req := range seed {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	byEmployee, err := svc.History(ctx, domain.HistoryRequest{EmployeeID: "emp1"})
	require.NoError(t, err)
	require.Len(t, byEmployee, 2)
	for _, a := range byEmployee {
		assert.Equal(t, "emp1", a.EmployeeID)
	}

	both, err := svc.History(ctx, domain.HistoryRequest{EmployeeID: "emp1", VehicleID: "car2"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "car2", both[0].VehicleID)

	all, err := svc.History(ctx, domain.HistoryRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

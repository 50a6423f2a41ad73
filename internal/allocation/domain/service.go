package domain

import (
	"context"
	"errors"
	"time"
)

type CreateAllocationRequest struct {
	EmployeeID     string
	VehicleID      string
	AllocationDate time.Time
}

type GetAllocationRequest struct {
	ID string
}

// UpdateAllocationRequest carries a required date and an optional vehicle;
// a nil VehicleID leaves the stored vehicle untouched. EmployeeID is
// immutable after creation.
type UpdateAllocationRequest struct {
	ID             string
	VehicleID      *string
	AllocationDate time.Time
}

type DeleteAllocationRequest struct {
	ID string
}

type HistoryRequest struct {
	EmployeeID string
	VehicleID  string
}

type Service interface {
	Create(context.Context, CreateAllocationRequest) (Allocation, error)
	GetByID(context.Context, GetAllocationRequest) (Allocation, error)
	List(context.Context) ([]Allocation, error)
	Update(context.Context, UpdateAllocationRequest) (Allocation, error)
	Delete(context.Context, DeleteAllocationRequest) error
	History(context.Context, HistoryRequest) ([]Allocation, error)
}

var (
	ErrInvalidID        = errors.New("invalid_allocation_id")
	ErrNotFound         = errors.New("allocation_not_found")
	ErrVehicleAllocated = errors.New("vehicle_already_allocated")
)

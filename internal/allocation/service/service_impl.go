package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/motorpool/internal/allocation/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:  p.Log.Named("allocation.service"),
		repo: p.Repo,
	}
}

// Create enforces the one behavioral invariant: a vehicle may not be
// allocated twice on the same calendar date. The check and the insert are
// two round trips; two concurrent creates for the same (vehicle, date) can
// both pass the check.
func (s *Service) Create(ctx context.Context, req domain.CreateAllocationRequest) (domain.Allocation, error) {
	date := domain.MidnightUTC(req.AllocationDate)

	existing, err := s.repo.FindOne(ctx, domain.Filter{
		VehicleID:      req.VehicleID,
		AllocationDate: &date,
	})
	if err != nil {
		return domain.Allocation{}, err
	}
	if existing != nil {
		return domain.Allocation{}, domain.ErrVehicleAllocated
	}

	allocation := domain.Allocation{
		ID:             primitive.NewObjectID(),
		EmployeeID:     req.EmployeeID,
		VehicleID:      req.VehicleID,
		AllocationDate: date,
	}
	if err := s.repo.InsertOne(ctx, &allocation); err != nil {
		return domain.Allocation{}, err
	}

	s.log.Info("allocation created",
		zap.String("allocation_id", allocation.ID.Hex()),
		zap.String("vehicle_id", allocation.VehicleID),
	)
	return allocation, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAllocationRequest) (domain.Allocation, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Allocation{}, err
	}

	allocation, err := s.repo.FindOne(ctx, domain.Filter{ID: &id})
	if err != nil {
		return domain.Allocation{}, err
	}
	if allocation == nil {
		return domain.Allocation{}, domain.ErrNotFound
	}
	return *allocation, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Allocation, error) {
	return s.repo.Find(ctx, domain.Filter{})
}

// Update merges the supplied fields into an existing allocation. The
// (vehicle, date) uniqueness invariant is not re-checked here, so an update
// can move an allocation onto a date already held by another record.
func (s *Service) Update(ctx context.Context, req domain.UpdateAllocationRequest) (domain.Allocation, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Allocation{}, err
	}

	existing, err := s.repo.FindOne(ctx, domain.Filter{ID: &id})
	if err != nil {
		return domain.Allocation{}, err
	}
	if existing == nil {
		return domain.Allocation{}, domain.ErrNotFound
	}

	date := domain.MidnightUTC(req.AllocationDate)
	fields := domain.UpdateFields{AllocationDate: &date}
	if req.VehicleID != nil {
		vehicle := strings.TrimSpace(*req.VehicleID)
		fields.VehicleID = &vehicle
	}

	if _, err := s.repo.UpdateOne(ctx, id, fields); err != nil {
		return domain.Allocation{}, err
	}

	updated, err := s.repo.FindOne(ctx, domain.Filter{ID: &id})
	if err != nil {
		return domain.Allocation{}, err
	}
	if updated == nil {
		return domain.Allocation{}, domain.ErrNotFound
	}
	return *updated, nil
}

// Delete removes an allocation. The existence check and the delete are two
// round trips; the zero-count check catches a record deleted in between.
func (s *Service) Delete(ctx context.Context, req domain.DeleteAllocationRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindOne(ctx, domain.Filter{ID: &id})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	deleted, err := s.repo.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("allocation deleted", zap.String("allocation_id", id.Hex()))
	return nil
}

func (s *Service) History(ctx context.Context, req domain.HistoryRequest) ([]domain.Allocation, error) {
	return s.repo.Find(ctx, domain.Filter{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		VehicleID:  strings.TrimSpace(req.VehicleID),
	})
}

func (s *Service) parseID(value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return id, nil
}

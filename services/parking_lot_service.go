package services

import (
	"context"
	"errors"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"go.uber.org/zap"
)

// CreateParkingLotInput carries the fields of a new lot. The tenant comes from the scope.
type CreateParkingLotInput struct {
	Name     string
	Address  *string
	City     *string
	Capacity int
	IsActive *bool
}

// ParkingLotService manages the parking lots of the scoped tenant
type ParkingLotService struct {
	txManager repositories.TransactionManager
	lots      repositories.ParkingLotRepository
	logger    *zap.Logger
}

// NewParkingLotService creates a new ParkingLotService
func NewParkingLotService(txManager repositories.TransactionManager, lots repositories.ParkingLotRepository, logger *zap.Logger) *ParkingLotService {
	return &ParkingLotService{
		txManager: txManager,
		lots:      lots,
		logger:    logger,
	}
}

// Create adds a lot to the scoped tenant
func (s *ParkingLotService) Create(ctx context.Context, scope TenantScope, in CreateParkingLotInput) (*models.ParkingLot, error) {
	if !scope.Valid() {
		return nil, ErrUnauthorized
	}

	lot := models.NewParkingLot(scope.TenantID(), in.Name, in.Address, in.City, in.Capacity)
	if in.IsActive != nil {
		lot.IsActive = *in.IsActive
	}

	if err := s.lots.Create(ctx, lot); err != nil {
		s.logger.Error("failed to create parking lot",
			zap.Int64("tenant_id", scope.TenantID()),
			zap.Error(err))
		return nil, ErrDatabaseError.Because(err)
	}

	s.logger.Info("parking lot created",
		zap.Int64("tenant_id", lot.TenantID),
		zap.Int64("parking_lot_id", lot.ID))
	return lot, nil
}

// List returns the lots of the scoped tenant ordered by id
func (s *ParkingLotService) List(ctx context.Context, scope TenantScope) ([]*models.ParkingLot, error) {
	if !scope.Valid() {
		return nil, ErrUnauthorized
	}

	lots, err := s.lots.ListByTenant(ctx, scope.TenantID())
	if err != nil {
		return nil, ErrDatabaseError.Because(err)
	}
	return lots, nil
}

// Update applies patch to a lot of the scoped tenant
func (s *ParkingLotService) Update(ctx context.Context, scope TenantScope, id int64, patch models.ParkingLotPatch) (*models.ParkingLot, error) {
	if !scope.Valid() {
		return nil, ErrUnauthorized
	}

	return WithTransactionResult(ctx, s.txManager, func(ctx context.Context, tx repositories.Transaction) (*models.ParkingLot, error) {
		lots := s.lots.WithTx(tx)

		lot, err := lots.GetByIDForTenant(ctx, id, scope.TenantID())
		if err != nil {
			return nil, s.mapLotError(err)
		}

		if patch.IsEmpty() {
			return lot, nil
		}
		patch.Apply(lot)

		if err := lots.Update(ctx, lot); err != nil {
			return nil, s.mapLotError(err)
		}
		return lot, nil
	})
}

// Delete removes a lot of the scoped tenant
func (s *ParkingLotService) Delete(ctx context.Context, scope TenantScope, id int64) error {
	if !scope.Valid() {
		return ErrUnauthorized
	}

	if err := s.lots.Delete(ctx, id, scope.TenantID()); err != nil {
		return s.mapLotError(err)
	}

	s.logger.Info("parking lot deleted",
		zap.Int64("tenant_id", scope.TenantID()),
		zap.Int64("parking_lot_id", id))
	return nil
}

func (s *ParkingLotService) mapLotError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrParkingLotNotFound
	}
	return ErrDatabaseError.Because(err)
}

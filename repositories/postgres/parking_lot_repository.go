package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nexohub/nexohub-api/models"
	"github.com/nexohub/nexohub-api/repositories"
	"go.uber.org/zap"
)

const parkingLotColumns = `id, tenant_id, name, address, city, capacity, is_active, created_at, updated_at`

// ParkingLotRepository implements the repositories.ParkingLotRepository interface
type ParkingLotRepository struct {
	txBinding
	logger *zap.Logger
}

// NewParkingLotRepository creates a new parking lot repository
func NewParkingLotRepository(db *DB, logger *zap.Logger) repositories.ParkingLotRepository {
	return &ParkingLotRepository{
		txBinding: txBinding{db: db},
		logger:    logger,
	}
}

func scanParkingLot(row rowScanner) (*models.ParkingLot, error) {
	lot := &models.ParkingLot{}
	var address, city sql.NullString
	err := row.Scan(
		&lot.ID,
		&lot.TenantID,
		&lot.Name,
		&address,
		&city,
		&lot.Capacity,
		&lot.IsActive,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if address.Valid {
		lot.Address = &address.String
	}
	if city.Valid {
		lot.City = &city.String
	}
	return lot, nil
}

// Create creates a new parking lot
func (r *ParkingLotRepository) Create(ctx context.Context, lot *models.ParkingLot) error {
	query := `
		INSERT INTO parking_lots (tenant_id, name, address, city, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.executor(ctx).QueryRowContext(ctx, query,
		lot.TenantID,
		lot.Name,
		lot.Address,
		lot.City,
		lot.Capacity,
		lot.IsActive,
		lot.CreatedAt,
		lot.UpdatedAt,
	).Scan(&lot.ID)

	if err != nil {
		return fmt.Errorf("failed to create parking lot: %w", err)
	}

	r.logger.Debug("parking lot created", zap.Int64("id", lot.ID), zap.Int64("tenant_id", lot.TenantID))
	return nil
}

// ListByTenant retrieves all parking lots of a tenant
func (r *ParkingLotRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*models.ParkingLot, error) {
	query := `SELECT ` + parkingLotColumns + ` FROM parking_lots WHERE tenant_id = $1 ORDER BY id`

	rows, err := r.executor(ctx).QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query parking lots: %w", err)
	}
	defer rows.Close()

	lots := []*models.ParkingLot{}
	for rows.Next() {
		lot, err := scanParkingLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parking lot: %w", err)
		}
		lots = append(lots, lot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parking lot rows: %w", err)
	}

	return lots, nil
}

// GetByIDForTenant retrieves a parking lot that belongs to tenantID
func (r *ParkingLotRepository) GetByIDForTenant(ctx context.Context, id, tenantID int64) (*models.ParkingLot, error) {
	query := `SELECT ` + parkingLotColumns + ` FROM parking_lots WHERE id = $1 AND tenant_id = $2`

	lot, err := scanParkingLot(r.executor(ctx).QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("parking lot %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get parking lot: %w", err)
	}

	return lot, nil
}

// Update updates a parking lot
func (r *ParkingLotRepository) Update(ctx context.Context, lot *models.ParkingLot) error {
	query := `
		UPDATE parking_lots
		SET name = $3,
		    address = $4,
		    city = $5,
		    capacity = $6,
		    is_active = $7,
		    updated_at = $8
		WHERE id = $1 AND tenant_id = $2
	`

	result, err := r.executor(ctx).ExecContext(ctx, query,
		lot.ID,
		lot.TenantID,
		lot.Name,
		lot.Address,
		lot.City,
		lot.Capacity,
		lot.IsActive,
		lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update parking lot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("parking lot %d: %w", lot.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("parking lot updated", zap.Int64("id", lot.ID))
	return nil
}

// Delete deletes a parking lot
func (r *ParkingLotRepository) Delete(ctx context.Context, id, tenantID int64) error {
	query := `DELETE FROM parking_lots WHERE id = $1 AND tenant_id = $2`

	result, err := r.executor(ctx).ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete parking lot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("parking lot %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("parking lot deleted", zap.Int64("id", id))
	return nil
}

// WithTx returns a new repository instance bound to the transaction
func (r *ParkingLotRepository) WithTx(tx repositories.Transaction) repositories.ParkingLotRepository {
	return &ParkingLotRepository{
		txBinding: r.bind(tx),
		logger:    r.logger,
	}
}

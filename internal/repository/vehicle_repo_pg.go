package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/domain"
)

type VehicleUpdate struct {
	VehicleName        *string
	Type               *domain.VehicleType
	RegistrationNumber *string
	DailyRentPrice     *float64
	Description        *string
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, upd VehicleUpdate) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

const vehicleColumns = `id, vehicle_name, type, registration_number, daily_rent_price, availability_status, description, created_at, updated_at`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Vehicle not found")
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.db.QueryRow(ctx, `INSERT INTO vehicles (id, vehicle_name, type, registration_number, daily_rent_price, availability_status, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		vehicle.ID, vehicle.VehicleName, vehicle.Type, vehicle.RegistrationNumber, vehicle.DailyRentPrice, vehicle.AvailabilityStatus, vehicle.Description).
		Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id))
}

func (r *PGVehicleRepository) Update(ctx context.Context, id string, upd VehicleUpdate) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `UPDATE vehicles SET
			vehicle_name = COALESCE($2, vehicle_name),
			type = COALESCE($3, type),
			registration_number = COALESCE($4, registration_number),
			daily_rent_price = COALESCE($5, daily_rent_price),
			description = COALESCE($6, description),
			updated_at = now()
		WHERE id=$1
		RETURNING `+vehicleColumns, id, upd.VehicleName, upd.Type, upd.RegistrationNumber, upd.DailyRentPrice, upd.Description)
	return scanVehicle(row)
}

func (r *PGVehicleRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var hasActive bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE vehicle_id=$1 AND status=$2)`,
		id, domain.BookingStatusActive).Scan(&hasActive); err != nil {
		return err
	}
	if hasActive {
		return apperr.New(apperr.Conflict, "Cannot delete vehicle with active bookings")
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Vehicle not found")
	}

	return tx.Commit(ctx)
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/domain"
)

// ErrNotActive is returned by Finish when the booking is no longer active.
// An interactive caller maps it to a conflict; the auto-return sweep treats
// it as a benign lost race and moves on.
var ErrNotActive = errors.New("booking is not active")

type BookingRepository interface {
	// Create inserts an active booking and flips its vehicle to booked in
	// one transaction. The flip is guarded by the vehicle's current status,
	// so a concurrent create against the same vehicle loses cleanly.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	// Finish moves an active booking to a terminal status and flips its
	// vehicle back to available in one transaction.
	Finish(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE vehicles SET availability_status=$1, updated_at=now() WHERE id=$2 AND availability_status=$3`,
		domain.VehicleBooked, booking.VehicleID, domain.VehicleAvailable)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(apperr.Conflict, "Vehicle is already booked")
	}

	booking.Status = domain.BookingStatusActive
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		booking.ID, booking.CustomerID, booking.VehicleID, booking.RentStartDate, booking.RentEndDate, booking.TotalPrice, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const bookingJoinQuery = `SELECT
		b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status, b.created_at, b.updated_at,
		v.id, v.vehicle_name, v.type, v.registration_number, v.daily_rent_price, v.availability_status, v.description, v.created_at, v.updated_at,
		u.id, u.name, u.email, u.phone, u.role, u.created_at, u.updated_at
	FROM bookings b
	JOIN vehicles v ON v.id = b.vehicle_id
	JOIN users u ON u.id = b.customer_id`

func scanJoinedBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var v domain.Vehicle
	var u domain.User
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&v.ID, &v.VehicleName, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.Description, &v.CreatedAt, &v.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Booking not found")
		}
		return nil, err
	}
	b.Vehicle = &v
	b.Customer = &u
	return &b, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return scanJoinedBooking(r.db.QueryRow(ctx, bookingJoinQuery+` WHERE b.id=$1`, id))
}

func (r *PGBookingRepository) listJoined(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.listJoined(ctx, bookingJoinQuery+` ORDER BY b.created_at`)
}

func (r *PGBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return r.listJoined(ctx, bookingJoinQuery+` WHERE b.customer_id=$1 ORDER BY b.created_at`, customerID)
}

func (r *PGBookingRepository) Finish(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns,
		status, id, domain.BookingStatusActive)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotActive
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE vehicles SET availability_status=$1, updated_at=now() WHERE id=$2`,
		domain.VehicleAvailable, b.VehicleID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListOverdueActive(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status=$1 AND rent_end_date < $2`,
		domain.BookingStatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		overdue = append(overdue, b)
	}
	return overdue, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)

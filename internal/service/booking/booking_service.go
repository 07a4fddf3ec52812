package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/auth"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/kafka"
	"github.com/rideaway/vehicle-rental/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput, requester auth.Principal) (*domain.Booking, error)
	List(ctx context.Context, requester auth.Principal) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, requester auth.Principal) (*domain.Booking, error)
	AutoReturnOverdue(ctx context.Context) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateVehicles(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	VehicleID     string    `json:"vehicle_id"`
	RentStartDate time.Time `json:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date"`
	CustomerID    string    `json:"customer_id"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	vehicles           repository.VehicleRepository
	users              repository.UserRepository
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	log                *zap.Logger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the service's time source. Tests only.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	vehicles repository.VehicleRepository,
	users repository.UserRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	log *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		vehicles:    vehicles,
		users:       users,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		log:         log,
		now:         time.Now,
	}
	if service.log == nil {
		service.log = zap.NewNop()
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, requester auth.Principal) (*domain.Booking, error) {
	if !input.RentEndDate.After(input.RentStartDate) {
		return nil, apperr.New(apperr.Validation, "End date must be after start date")
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.AvailabilityStatus != domain.VehicleAvailable {
		return nil, apperr.New(apperr.Conflict, "Vehicle is already booked")
	}

	// An admin may book on a customer's behalf; everyone else books for
	// themselves.
	customerID := requester.ID
	if requester.IsAdmin() && input.CustomerID != "" {
		customerID = input.CustomerID
	}
	customer, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: input.RentStartDate,
		RentEndDate:   input.RentEndDate,
		TotalPrice:    domain.TotalPriceFor(input.RentStartDate, input.RentEndDate, vehicle.DailyRentPrice),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	vehicle.AvailabilityStatus = domain.VehicleBooked
	booking.Vehicle = vehicle
	booking.Customer = customer

	s.invalidate(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, requester auth.Principal) ([]domain.Booking, error) {
	if requester.IsAdmin() {
		return s.bookings.ListAll(ctx)
	}
	return s.bookings.ListByCustomer(ctx, requester.ID)
}

func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, requester auth.Principal) (*domain.Booking, error) {
	if !status.Terminal() {
		return nil, apperr.New(apperr.Validation, "Status must be cancelled or returned")
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, apperr.New(apperr.Conflict, "Booking is already "+string(current.Status))
	}

	owns := current.CustomerID == requester.ID
	action := auth.ActionBookingCancel
	if status == domain.BookingStatusReturned {
		action = auth.ActionBookingReturn
	}
	if !auth.Allow(requester.Role, action, owns) {
		return nil, apperr.New(apperr.Unauthorized, "You are not authorized to update this booking")
	}

	// Customers cancel before the rental starts, never after.
	if !requester.IsAdmin() && !current.RentStartDate.After(s.now()) {
		return nil, apperr.New(apperr.Conflict, "You can only cancel a booking before the start date")
	}

	if _, err := s.bookings.Finish(ctx, bookingID, status); err != nil {
		if errors.Is(err, repository.ErrNotActive) {
			// A concurrent cancel/return or the sweep got there first.
			return nil, apperr.New(apperr.Conflict, "Booking is no longer active")
		}
		return nil, err
	}

	updated, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_"+string(status), updated)
	return updated, nil
}

// AutoReturnOverdue force-returns every active booking whose rental period
// has ended. Each booking is handled independently: a failure or a lost race
// on one is logged and the rest still get processed.
func (s *BookingService) AutoReturnOverdue(ctx context.Context) ([]domain.Booking, error) {
	overdue, err := s.bookings.ListOverdueActive(ctx, s.now())
	if err != nil {
		return nil, err
	}

	var returned []domain.Booking
	for _, b := range overdue {
		finished, err := s.bookings.Finish(ctx, b.ID, domain.BookingStatusReturned)
		if err != nil {
			if errors.Is(err, repository.ErrNotActive) {
				// Someone cancelled or returned it between the scan and
				// our update. Nothing to do.
				continue
			}
			s.log.Error("auto-return failed", zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		returned = append(returned, *finished)
		s.publish(ctx, "booking_auto_returned", finished)
	}

	if len(returned) > 0 {
		s.invalidate(ctx)
	}
	return returned, nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateVehicles(ctx)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		VehicleID:   booking.VehicleID,
		CustomerID:  booking.CustomerID,
		Status:      string(booking.Status),
		TotalPrice:  booking.TotalPrice,
		RentEndDate: booking.RentEndDate,
	}
	if booking.Customer != nil {
		event.CustomerEmail = booking.Customer.Email
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		s.log.Warn("failed to publish booking event", zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			s.log.Warn("failed to publish notification event", zap.String("type", eventType), zap.String("booking_id", booking.ID), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

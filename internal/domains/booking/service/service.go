package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/policy"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/lock"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = constant.CachePrefixBooking + ":get"
	cacheGetAllBooking = constant.CachePrefixBooking + ":gets"

	msgNotFound = "Booking not found"

	otelAttrRoomID     = "booking.room_id"
	otelAttrNights     = "booking.nights"
	otelAttrTotalPrice = "booking.total_price"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, filter dto.BookingFilter) ([]byte, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	tx        gRepo.Transactor
	locker    lock.Locker
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.Cache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	tx gRepo.Transactor,
	locker lock.Locker,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.Cache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		tx:        tx,
		locker:    locker,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create checks availability and stores a pending booking, marking the room booked.
// The check and the writes run under the room lock and inside one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || user == constant.Empty {
		user = constant.ContextGuest
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionInvalidDates).Inc()

		return res, err
	}

	release, err := s.acquire(ctx, req.RoomID)
	if err != nil {
		return res, err
	}
	defer release()

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		room, err = s.roomRepo.GetForUpdate(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound(roomModel.NotFoundLabel)
		}

		existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, policy.ActiveOnRoom(room.ID))
		if err != nil {
			return fmt.Errorf("failed to get room bookings: %w", err)
		}

		quote, err := policy.Check(room, checkIn, checkOut, existing, s.cfg.Booking.MaxNights)
		if err != nil {
			return s.reject(err)
		}

		scope.SetAttributes(map[string]any{
			otelAttrRoomID:     room.ID,
			otelAttrNights:     quote.Nights,
			otelAttrTotalPrice: quote.TotalPrice,
		})

		booking = req.ToModel(user, checkIn, checkOut, quote.TotalPrice)

		if err := s.repo.Insert(ctx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		room.Status = roomModel.StatusBooked

		return s.setRoomStatus(ctx, room.ID, roomModel.StatusBooked, user)
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, err
	}

	metrics.BookingsCreatedTotal.Inc()

	s.invalidate(ctx)
	s.publish(ctx, event.New(event.TypeCreated, booking, constant.Empty))

	res.FromModel(booking, &room)

	return res, nil
}

func (s *serviceImpl) reject(err error) error {
	switch {
	case errors.Is(err, policy.ErrInvalidRange):
		metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionInvalidDates).Inc()

		return failure.Validation(model.FieldCheckOutDate, "Check-out must be after check-in")
	case errors.Is(err, policy.ErrStayTooLong):
		metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionTooLong).Inc()

		return failure.Validation(model.FieldCheckOutDate, fmt.Sprintf("Stay cannot exceed %d nights", s.cfg.Booking.MaxNights))
	case errors.Is(err, policy.ErrRoomUnavailable):
		metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionRoomUnavailable).Inc()

		return failure.Conflict("Room is not available")
	case errors.Is(err, policy.ErrOverlap):
		metrics.BookingRejectionsTotal.WithLabelValues(metrics.RejectionOverlap).Inc()

		return failure.Conflict("Room is already booked for the selected dates")
	default:
		return err
	}
}

func (s *serviceImpl) acquire(ctx context.Context, roomID string) (func(), error) {
	start := time.Now()
	release, err := s.locker.Acquire(ctx, lock.RoomKey(roomID))

	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())

	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, failure.Conflict("Room is being booked by another request, please retry")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to lock room: %w", err)
	}

	return release, nil
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, roomID, status, user string) error {
	err := s.roomRepo.Update(ctx, map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	return nil
}

// releaseRoom frees a booked room once no other active booking holds it. Rooms under
// maintenance are left alone.
func (s *serviceImpl) releaseRoom(ctx context.Context, booking model.Booking, user string) (bool, error) {
	room, err := s.roomRepo.GetForUpdate(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || room.Status != roomModel.StatusBooked {
		return false, nil
	}

	others, err := s.repo.GetAll(ctx, gDto.QueryParams{}, policy.ActiveOnRoom(room.ID))
	if err != nil {
		return false, fmt.Errorf("failed to get room bookings: %w", err)
	}

	if policy.HoldsRoom(room.ID, booking.ID, others, timezone.Today()) {
		return false, nil
	}

	return true, s.setRoomStatus(ctx, room.ID, roomModel.StatusAvailable, user)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := filter.ToFilterGroup(timezone.Today())
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, group)
	epoch := shared.CacheEpoch(constant.CachePrefixBooking)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := s.rooms(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(models, rooms, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := shared.SaveCacheIfCurrent(c, s.cache, constant.CachePrefixBooking, epoch, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// rooms loads the rooms referenced by bookings, keyed by id.
func (s *serviceImpl) rooms(ctx context.Context, bookings []model.Booking) (map[string]roomModel.Room, error) {
	ids := make([]string, 0, len(bookings))
	seen := map[string]struct{}{}

	for _, booking := range bookings {
		if _, ok := seen[booking.RoomID]; ok {
			continue
		}

		seen[booking.RoomID] = struct{}{}
		ids = append(ids, booking.RoomID)
	}

	rooms := make(map[string]roomModel.Room, len(ids))
	if len(ids) == 0 {
		return rooms, nil
	}

	models, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: roomModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return nil, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	for _, room := range models {
		rooms[room.ID] = room
	}

	return rooms, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)
	epoch := shared.CacheEpoch(constant.CachePrefixBooking)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	rooms, err := s.rooms(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	res.FromModel(booking, dto.RoomOf(rooms, booking.RoomID))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := shared.SaveCacheIfCurrent(c, s.cache, constant.CachePrefixBooking, epoch, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// UpdateStatus applies a lifecycle transition. Leaving the active set releases the room
// when nothing else holds it.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	release, err := s.acquire(ctx, current.RoomID)
	if err != nil {
		return res, err
	}
	defer release()

	var (
		booking  model.Booking
		previous string
	)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		booking, err = s.repo.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(msgNotFound)
		}

		previous = booking.Status

		if !policy.CanTransition(previous, req.Status) {
			return failure.Conflict(fmt.Sprintf("Cannot change booking status from %s to %s", previous, req.Status))
		}

		err = s.repo.Update(ctx, map[string]any{
			model.FieldStatus:        req.Status,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booking.Status = req.Status

		if !policy.ReleasesRoom(previous, req.Status) {
			return nil
		}

		released, err := s.releaseRoom(ctx, booking, user)
		if released {
			log.Info().Str("room_id", booking.RoomID).Str("booking_id", booking.ID).Msg("room released")
		}

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		return res, err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(previous, req.Status).Inc()

	s.invalidate(ctx)
	s.publish(ctx, event.New(event.TypeStatusChanged, booking, previous))

	rooms, err := s.rooms(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	res.FromModel(booking, dto.RoomOf(rooms, booking.RoomID))

	return res, nil
}

// Delete removes a booking. Deleting an active booking releases its room like a
// cancellation would.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	release, err := s.acquire(ctx, current.RoomID)
	if err != nil {
		return err
	}
	defer release()

	var booking model.Booking

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		booking, err = s.repo.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(msgNotFound)
		}

		if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		if !booking.IsActive() {
			return nil
		}

		_, err := s.releaseRoom(ctx, booking, user)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		return err
	}

	s.invalidate(ctx)
	s.publish(ctx, event.New(event.TypeDeleted, booking, constant.Empty))

	return nil
}

// invalidate drops booking and room projections before the write returns, so the next
// read sees the new room status.
func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, constant.CachePrefixBooking)
	shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, evt); err != nil {
			log.Error().Err(err).Str("type", evt.Type).Str("booking_id", evt.BookingID).Msg("failed to publish booking event")
		}
	}()
}

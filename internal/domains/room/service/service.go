package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/booking/policy"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/base64"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/lock"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = constant.CachePrefixRoom + ":get"
	cacheGetAllRoom = constant.CachePrefixRoom + ":gets"

	msgNumberExists = "Room number already exists"
	msgRoomBusy     = "Room is being updated by another request, please retry"
	imageTypes      = "oneof=image/png image/jpeg image/jpg image/webp"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.RoomFilter) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest, id string) (dto.AvailabilityResponse, error)
	UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo     repository.Room
	bookings bookingRepo.Booking
	tx       gRepo.Transactor
	locker   lock.Locker
	cfg      *config.Config
	cache    cache.Cache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Room,
	bookings bookingRepo.Booking,
	tx gRepo.Transactor,
	locker lock.Locker,
	cfg *config.Config,
	cache cache.Cache,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		tx:       tx,
		locker:   locker,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.ensureUniqueNumber(ctx, req.Number, constant.Empty); err != nil {
		return res, err
	}

	if req.Image, err = s.storeImage(ctx, req.Image); err != nil {
		return res, err
	}

	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) ensureUniqueNumber(ctx context.Context, number, exceptID string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldNumber, Value: number, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if exceptID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldID, Value: exceptID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if exist {
		return failure.Conflict(msgNumberExists)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.RoomFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := filter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, params, group)
	epoch := shared.CacheEpoch(constant.CachePrefixRoom)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := shared.SaveCacheIfCurrent(c, s.cache, constant.CachePrefixRoom, epoch, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)
	epoch := shared.CacheEpoch(constant.CachePrefixRoom)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := shared.SaveCacheIfCurrent(c, s.cache, constant.CachePrefixRoom, epoch, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(model.NotFoundLabel) // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("No fields to update")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var previous string

	err = s.withRoomLocked(ctx, id, func(ctx context.Context, room model.Room) error {
		if req.Number != constant.Empty {
			if err := s.ensureUniqueNumber(ctx, req.Number, id); err != nil {
				return err
			}
		}

		image, err := s.storeImage(ctx, req.Image)
		if err != nil {
			return err
		}

		req.Image = image
		previous = room.Image

		return s.save(ctx, shared.TransformFields(req, user), id)
	})
	if err != nil {
		return res, err
	}

	res, err = s.refresh(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Image != constant.Empty && req.Image != previous {
		s.removeImage(ctx, previous)
	}

	return res, nil
}

// UpdateStatus is the direct admin override of a room's status.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.withRoomLocked(ctx, id, func(ctx context.Context, _ model.Room) error {
		return s.save(ctx, map[string]any{
			model.FieldStatus:        req.Status,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, id)
	})
	if err != nil {
		return res, err
	}

	return s.refresh(ctx, id)
}

// withRoomLocked runs fn on the current room under the same lock and transaction the
// booking flow uses, so admin edits and booking side effects never interleave.
func (s *serviceImpl) withRoomLocked(ctx context.Context, id string, fn func(ctx context.Context, room model.Room) error) error {
	release, err := s.locker.Acquire(ctx, lock.RoomKey(id))
	if errors.Is(err, lock.ErrNotAcquired) {
		return failure.Conflict(msgRoomBusy)
	}

	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}
	defer release()

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		room, err := s.repo.GetForUpdate(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound(model.NotFoundLabel) // nolint:wrapcheck
		}

		return fn(ctx, room)
	})
}

func (s *serviceImpl) save(ctx context.Context, fields map[string]any, id string) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

// refresh drops stale projections and reads the room back.
func (s *serviceImpl) refresh(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	s.invalidate(ctx)

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) (res dto.RoomResponse, err error) {
	if err = s.save(ctx, fields, id); err != nil {
		return res, err
	}

	return s.refresh(ctx, id)
}

// Delete removes a room. Bookings referencing it are kept and show a placeholder.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var image string

	err = s.withRoomLocked(ctx, id, func(ctx context.Context, room model.Room) error {
		image = room.Image

		if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete room")

			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.removeImage(ctx, image)

	return nil
}

// CheckAvailability quotes a stay without booking it.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest, id string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, err
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	existing, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, policy.ActiveOnRoom(room.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	res.RoomID = room.ID

	quote, err := policy.Check(room, checkIn, checkOut, existing, s.cfg.Booking.MaxNights)

	switch {
	case errors.Is(err, policy.ErrStayTooLong):
		return res, failure.Validation("check_out", fmt.Sprintf("Stay cannot exceed %d nights", s.cfg.Booking.MaxNights))
	case errors.Is(err, policy.ErrRoomUnavailable):
		res.Reason = "Room is not available"
	case errors.Is(err, policy.ErrOverlap):
		res.Reason = "Room is already booked for the selected dates"
	case err != nil:
		return res, err
	default:
		res.Available = true
	}

	res.Nights = quote.Nights
	res.TotalPrice = quote.TotalPrice

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.s3 == nil {
		return res, failure.Unimplemented("Image upload is not configured")
	}

	if err = validator.ValidateVar(header.Header.Get(constant.RequestHeaderContentType), imageTypes); err != nil {
		return res, failure.Validation(constant.FormFile, "Image must be a PNG, JPEG or WebP file")
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	filename := uuid.NewString() + path.Ext(header.Filename)

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err = s.update(ctx, map[string]any{
		model.FieldImage:         url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, id)
	if err != nil {
		if delErr := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, filename); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned room image")
		}

		return res, err
	}

	s.removeImage(ctx, room.Image)

	return res, nil
}

// storeImage uploads an inline data URL to the bucket and returns its public URL.
// Plain URLs pass through unchanged.
func (s *serviceImpl) storeImage(ctx context.Context, image string) (string, error) {
	if !base64.IsDataURL(image) {
		return image, nil
	}

	if s.s3 == nil {
		return constant.Empty, failure.Unimplemented("Image upload is not configured")
	}

	contentType, data, err := base64.Decode(image)
	if err != nil {
		return constant.Empty, failure.Validation(model.FieldImage, "Image data is not valid base64")
	}

	filename := uuid.NewString() + base64.Extension(contentType)

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

// removeImage deletes an image previously uploaded to the bucket. External URLs are
// left alone.
func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if s.s3 == nil || url == constant.Empty {
		return
	}

	objectName := s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, url)
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete room image")
	}
}

// invalidate drops room projections and the booking projections that embed room labels.
func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, constant.CachePrefixRoom)
	shared.InvalidateCaches(c, s.cache, constant.CachePrefixBooking)
}

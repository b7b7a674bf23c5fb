package catalog

import (
	"context"
	"fmt"
	"strings"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
)

// Service owns the room inventory. Whether a room is free for a stay is
// answered by bookings; Status here is the operational flag only.
type Service struct {
	store *repository.Store
	log   logrus.FieldLogger
}

func NewService(store *repository.Store, log logrus.FieldLogger) *Service {
	return &Service{store: store, log: log.WithField("component", "catalog")}
}

/* ---------- HOTELS ---------- */

func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		City:    strings.TrimSpace(req.City),
	}
	if err := s.store.Hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.store.Hotels.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hotel %d: %w", id, err)
	}
	return h, nil
}

func (s *Service) ListHotels(ctx context.Context, city string) ([]domain.Hotel, error) {
	return s.store.Hotels.List(ctx, strings.TrimSpace(city))
}

/* ---------- ROOMS ---------- */

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	roomType := domain.RoomType(strings.ToUpper(req.RoomType))
	if !roomType.Valid() {
		return nil, ErrInvalidRoomType
	}
	if err := s.checkHotel(ctx, req.HotelID); err != nil {
		return nil, err
	}

	room := &domain.Room{
		HotelID:       req.HotelID,
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		RoomType:      roomType,
		Status:        domain.RoomAvailable,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Description:   req.Description,
		IsActive:      true,
	}
	if err := s.store.Rooms.Create(ctx, room); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"room_id": room.ID, "room_number": room.RoomNumber}).Info("room created")
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("room %d: %w", id, err)
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, f repository.RoomFilters) ([]domain.Room, int64, error) {
	if f.RoomType != "" {
		f.RoomType = domain.RoomType(strings.ToUpper(string(f.RoomType)))
		if !f.RoomType.Valid() {
			return nil, 0, ErrInvalidRoomType
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrInvalidRoomStatus
	}
	return s.store.Rooms.List(ctx, f)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	roomType := domain.RoomType(strings.ToUpper(req.RoomType))
	if !roomType.Valid() {
		return nil, ErrInvalidRoomType
	}
	if err := s.checkHotel(ctx, req.HotelID); err != nil {
		return nil, err
	}

	room.HotelID = req.HotelID
	room.RoomNumber = strings.TrimSpace(req.RoomNumber)
	room.RoomType = roomType
	room.PricePerNight = req.PricePerNight
	room.Capacity = req.Capacity
	room.Description = req.Description
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.store.Rooms.Update(ctx, room); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, err
	}
	return s.GetRoom(ctx, id)
}

// UpdateRoomStatus is the inventory collaborator's write path
// (housekeeping, maintenance).
func (s *Service) UpdateRoomStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, ErrInvalidRoomStatus
	}
	if err := s.store.Rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("room %d: %w", id, err)
	}
	s.log.WithFields(logrus.Fields{"room_id": id, "status": status}).Info("room status changed")
	return s.GetRoom(ctx, id)
}

// DeactivateRoom hides a room from search and new bookings. Rooms are never
// deleted because bookings reference them.
func (s *Service) DeactivateRoom(ctx context.Context, id int64) error {
	if err := s.store.Rooms.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("room %d: %w", id, err)
	}
	return nil
}

func (s *Service) checkHotel(ctx context.Context, hotelID *int64) error {
	if hotelID == nil {
		return nil
	}
	if _, err := s.store.Hotels.GetByID(ctx, *hotelID); err != nil {
		return fmt.Errorf("hotel %d: %w", *hotelID, err)
	}
	return nil
}

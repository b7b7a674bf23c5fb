package availability

import (
	"context"
	"sort"

	"hotelreservation/internal/domain"

	"github.com/sirupsen/logrus"
)

type Policy struct {
	Stay         domain.StayPolicy
	MaxPartySize int
}

type Service struct {
	rooms     RoomFinder
	conflicts ConflictIndex
	policy    Policy
	log       logrus.FieldLogger
}

func NewService(rooms RoomFinder, conflicts ConflictIndex, policy Policy, log logrus.FieldLogger) *Service {
	if policy.MaxPartySize <= 0 {
		policy.MaxPartySize = domain.DefaultMaxPartySize
	}
	return &Service{
		rooms:     rooms,
		conflicts: conflicts,
		policy:    policy,
		log:       log.WithField("component", "availability"),
	}
}

// FindAvailable lists rooms that can host the party for the whole stay,
// priced for that stay. Order is unspecified unless q.Sort is set.
func (s *Service) FindAvailable(ctx context.Context, q Query) ([]AvailableRoom, error) {
	if err := s.policy.Stay.Validate(q.Stay); err != nil {
		return nil, err
	}
	guests, err := domain.ValidateParty(q.Adults, q.Children, s.policy.MaxPartySize)
	if err != nil {
		return nil, err
	}

	candidates, err := s.rooms.FindCandidates(ctx, guests, q.HotelID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []AvailableRoom{}, nil
	}

	blocked, err := s.conflicts.BlockedRoomIDs(ctx, q.Stay, domain.BlockingStatuses, q.HotelID)
	if err != nil {
		return nil, err
	}

	nights := q.Stay.Nights()
	out := make([]AvailableRoom, 0, len(candidates))
	for _, room := range candidates {
		if _, busy := blocked[room.ID]; busy {
			continue
		}
		// Candidates are filtered in SQL; re-check so a stale finder can't leak rooms.
		if !room.IsBookable() || room.Capacity < guests {
			continue
		}
		out = append(out, AvailableRoom{
			Room:       room,
			Nights:     nights,
			TotalPrice: domain.StayPrice(nights, room.PricePerNight),
		})
	}

	sortRooms(out, q.Sort)

	s.log.WithFields(logrus.Fields{
		"stay":       q.Stay.String(),
		"guests":     guests,
		"candidates": len(candidates),
		"available":  len(out),
	}).Debug("availability search")

	return out, nil
}

func sortRooms(rooms []AvailableRoom, order SortOrder) {
	switch order {
	case SortByPrice:
		sort.SliceStable(rooms, func(i, j int) bool {
			if rooms[i].TotalPrice == rooms[j].TotalPrice {
				return rooms[i].Room.RoomNumber < rooms[j].Room.RoomNumber
			}
			return rooms[i].TotalPrice < rooms[j].TotalPrice
		})
	case SortByRoomNumber:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Room.RoomNumber < rooms[j].Room.RoomNumber
		})
	}
}

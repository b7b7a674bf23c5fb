package repository

import "hotelreservation/internal/domain"

// Models lists every table owned by the repositories, in migration order.
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Hotel{},
		&domain.Room{},
		&domain.Staff{},
		&domain.Customer{},
		&BookingModel{},
		&domain.Payment{},
		&domain.Review{},
	}
}

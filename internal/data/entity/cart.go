package entity

import "github.com/google/uuid"

type CartItem struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	ActivityID uuid.UUID `db:"activity_id"`
	Quantity   int       `db:"quantity"`

	Activity *Activity `db:"-"`
}

type WishlistItem struct {
	BaseSimple
	UserID     uuid.UUID `db:"user_id"`
	ActivityID uuid.UUID `db:"activity_id"`

	Activity *Activity `db:"-"`
}

package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID     uuid.UUID `db:"user_id"`
	ActivityID uuid.UUID `db:"activity_id"`
	Rating     int       `db:"rating"` // 1-5
	Comment    *string   `db:"comment"`

	UserName *string `db:"user_name"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	TenantID  uuid.UUID `json:"tenantId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotePatch carries the fields of an update. Nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
}

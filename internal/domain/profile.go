package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds per-user display data. The id equals the user identity;
// rows are created implicitly on first write (upsert semantics).
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

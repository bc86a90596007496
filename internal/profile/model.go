package profile

import "time"

// Profile represents a member profile in the system. Accounts and sessions
// are owned by the auth service; this is the read side the rest of the app
// consumes.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName *string   `json:"display_name,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

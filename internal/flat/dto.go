package flat

// CreateFlatRequest represents the request to create a new flat
type CreateFlatRequest struct {
	Address  string  `json:"address" validate:"required,min=1,max=255"`
	City     string  `json:"city" validate:"required,min=1,max=100"`
	District *string `json:"district,omitempty"`
}

// MemberResponse represents a flat member in API responses
type MemberResponse struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	JoinedOn    string  `json:"joined_on"`
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		JoinedOn:    m.JoinedOn.Format("2006-01-02"),
	}
}

package settlement

import "github.com/alvarosanz/flatshare/pkg/money"

// SetPaidRequest toggles a transfer's paid mark in the settlement ledger
type SetPaidRequest struct {
	FlatID string  `json:"flat_id" validate:"required"`
	Month  string  `json:"month" validate:"required"`
	FromID string  `json:"from_id" validate:"required"`
	ToID   string  `json:"to_id" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Paid   bool    `json:"paid"`
}

// MemberSummary is one member's position in the settlement summary
type MemberSummary struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Paid        float64 `json:"paid"`
	Share       float64 `json:"share"`
	Balance     float64 `json:"balance"`
}

// TransferResponse is one suggested settling transfer
type TransferResponse struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

// PaymentResponse is one recorded out-of-band payment
type PaymentResponse struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
}

// SummaryResponse is the full settlement summary for a flat and period
type SummaryResponse struct {
	FlatID       string              `json:"flat_id"`
	FlatAddress  *string             `json:"flat_address,omitempty"`
	FlatCity     *string             `json:"flat_city,omitempty"`
	FlatDistrict *string             `json:"flat_district,omitempty"`
	Month        *string             `json:"month,omitempty"`
	Total        float64             `json:"total"`
	MemberCount  int                 `json:"member_count"`
	PerMember    float64             `json:"per_member"`
	Members      []*MemberSummary    `json:"members"`
	Transfers    []*TransferResponse `json:"transfers"`
	Payments     []*PaymentResponse  `json:"payments"`
}

// ToResponse converts a Transfer to its DTO
func (t *Transfer) ToResponse() *TransferResponse {
	return &TransferResponse{
		FromID: t.FromID,
		ToID:   t.ToID,
		Amount: money.FromCents(t.AmountCents),
		Paid:   t.Paid,
	}
}

// ToResponse converts a PaymentRecord to its DTO
func (p *PaymentRecord) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		FromID: p.FromID,
		ToID:   p.ToID,
		Amount: money.FromCents(p.AmountCents),
	}
}

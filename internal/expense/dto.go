package expense

import (
	"github.com/alvarosanz/flatshare/internal/flat"
	"github.com/alvarosanz/flatshare/pkg/money"
)

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	FlatID       string   `json:"flat_id" validate:"required"`
	Concept      string   `json:"concept" validate:"required,min=1,max=255"`
	Amount       float64  `json:"amount" validate:"required,gt=0"`
	ExpenseDate  string   `json:"expense_date,omitempty"` // YYYY-MM-DD, defaults to today
	Note         *string  `json:"note,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID           string   `json:"id"`
	FlatID       string   `json:"flat_id"`
	Concept      string   `json:"concept"`
	Amount       float64  `json:"amount"`
	ExpenseDate  string   `json:"expense_date"`
	Note         *string  `json:"note,omitempty"`
	CreatedBy    string   `json:"created_by"`
	CreatorName  *string  `json:"creator_name,omitempty"`
	CreatedAt    string   `json:"created_at"`
	Participants []string `json:"participants"`
}

// ListExpensesResponse represents the expense list, optionally with the flat
// roster alongside
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse     `json:"expenses"`
	Members  []*flat.MemberResponse `json:"members,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return &ExpenseResponse{
		ID:           e.ID,
		FlatID:       e.FlatID,
		Concept:      e.Concept,
		Amount:       money.FromCents(e.AmountCents),
		ExpenseDate:  e.ExpenseDate.Format("2006-01-02"),
		Note:         e.Note,
		CreatedBy:    e.CreatedBy,
		CreatorName:  e.CreatorName,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Participants: participants,
	}
}

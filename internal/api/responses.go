package api

import (
	"time" // Timestamps

	"creator_wallet/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Money on the wire
)

func init() {
	// Amounts go out as JSON numbers, the way clients expect them
	decimal.MarshalJSONWithoutQuotes = true
}

// WalletResponse is the wire form of a wallet
type WalletResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"userId"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionResponse is the wire form of a transaction
type TransactionResponse struct {
	ID            uint            `json:"id"`
	Reference     string          `json:"reference"`
	UserID        uint            `json:"userId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   *string         `json:"description,omitempty"`
	RelatedUserID *uint           `json:"relatedUserId,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func newWalletResponse(w domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		Balance:     domain.FromCents(w.Balance),
		TotalEarned: domain.FromCents(w.TotalEarned),
		TotalSpent:  domain.FromCents(w.TotalSpent),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func newTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Reference:     t.Reference,
		UserID:        t.UserID,
		Type:          string(t.Type),
		Amount:        domain.FromCents(t.Amount),
		Description:   t.Description,
		RelatedUserID: t.RelatedUserID,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedTime(),
	}
}

func newTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = newTransactionResponse(t)
	}
	return out
}

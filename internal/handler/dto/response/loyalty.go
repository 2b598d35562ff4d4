package response

import "petshop-loyalty/internal/usecase/commands"

type CreditPointsResponse struct {
	CreditedPoints int     `json:"credited_points"`
	Multiplier     float64 `json:"multiplier"`
	Balance        int     `json:"balance"`
}

type BalanceResponse struct {
	CustomerID int64 `json:"customer_id"`
	Balance    int   `json:"balance"`
}

func FromCreditResult(r *commands.CreditResult) *CreditPointsResponse {
	return &CreditPointsResponse{
		CreditedPoints: r.FinalPoints,
		Multiplier:     r.Multiplier,
		Balance:        r.NewBalance,
	}
}

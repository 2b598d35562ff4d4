package request

type CreditPointsRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
	Points     int   `json:"points" binding:"required"`
	ApplyBonus bool  `json:"apply_bonus"`
}

type RedeemPointsRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
	Points     int   `json:"points" binding:"required"`
}

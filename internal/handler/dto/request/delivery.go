package request

import "time"

type ScheduleDeliveryRequest struct {
	CustomerID   int64     `json:"customer_id" binding:"required"`
	Address      string    `json:"address"`
	DeliveryDate time.Time `json:"delivery_date" binding:"required"`
	Items        []string  `json:"items" binding:"required,min=1"`
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RecordLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

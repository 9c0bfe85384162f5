package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleInput struct {
	AnimalID    string  `json:"animal_id" binding:"required,uuid"`
	FeedType    string  `json:"feed_type" binding:"required,min=2,max=100"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0,max=10000"`
	Unit        string  `json:"unit" binding:"required,oneof=kg g l ml bundle"`
	FeedingTime string  `json:"feeding_time" binding:"required,datetime=15:04"`
	Frequency   string  `json:"frequency" binding:"required,oneof=daily twice_daily weekly"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateScheduleInput struct {
	FeedType    *string  `json:"feed_type" binding:"omitempty,min=2,max=100"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gt=0,max=10000"`
	Unit        *string  `json:"unit" binding:"omitempty,oneof=kg g l ml bundle"`
	FeedingTime *string  `json:"feeding_time" binding:"omitempty,datetime=15:04"`
	Frequency   *string  `json:"frequency" binding:"omitempty,oneof=daily twice_daily weekly"`
	Notes       *string  `json:"notes" binding:"omitempty,max=1000"`
}

type InventoryInput struct {
	FeedName   string  `json:"feed_name" binding:"required,min=2,max=100"`
	Quantity   float64 `json:"quantity" binding:"gte=0,max=1000000"`
	Unit       string  `json:"unit" binding:"required,oneof=kg g l ml bundle bag"`
	ExpiryDate *string `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Supplier   *string `json:"supplier" binding:"omitempty,max=100"`
}

type UpdateInventoryInput struct {
	FeedName   *string  `json:"feed_name" binding:"omitempty,min=2,max=100"`
	Quantity   *float64 `json:"quantity" binding:"omitempty,gte=0,max=1000000"`
	Unit       *string  `json:"unit" binding:"omitempty,oneof=kg g l ml bundle bag"`
	ExpiryDate *string  `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Supplier   *string  `json:"supplier" binding:"omitempty,max=100"`
}

// InventoryItem is a stock row with its display status.
type InventoryItem struct {
	ID         uuid.UUID  `json:"id"`
	FeedName   string     `json:"feed_name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Supplier   *string    `json:"supplier,omitempty"`
	Status     string     `json:"status"`
}

type InventorySummary struct {
	TotalItems   int `json:"total_items"`
	LowStock     int `json:"low_stock"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
}

type InventoryResponse struct {
	Items   []InventoryItem  `json:"items"`
	Summary InventorySummary `json:"summary"`
}

package service

import (
	"time"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/feeding/dto"
)

const (
	StatusInStock      = "In Stock"
	StatusLowStock     = "Low Stock"
	StatusExpiringSoon = "Expiring Soon"
	StatusExpired      = "Expired"

	LowStockThreshold = 10
	ExpiringSoonDays  = 30
)

// Flags are the independent stock conditions of an item. Expired and
// ExpiringSoon never hold together.
type Flags struct {
	LowStock     bool
	ExpiringSoon bool
	Expired      bool
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify compares dates by calendar day in UTC.
func Classify(item entity.FeedInventory, now time.Time) Flags {
	f := Flags{LowStock: item.Quantity < LowStockThreshold}
	if item.ExpiryDate != nil {
		today := dayOf(now)
		expiry := dayOf(*item.ExpiryDate)
		switch {
		case expiry.Before(today):
			f.Expired = true
		case !expiry.After(today.AddDate(0, 0, ExpiringSoonDays)):
			f.ExpiringSoon = true
		}
	}
	return f
}

// Status picks the display status: Expired, then Expiring Soon, then Low Stock.
func (f Flags) Status() string {
	switch {
	case f.Expired:
		return StatusExpired
	case f.ExpiringSoon:
		return StatusExpiringSoon
	case f.LowStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Summarize classifies every item and counts each condition.
func Summarize(items []entity.FeedInventory, now time.Time) dto.InventoryResponse {
	res := dto.InventoryResponse{Items: make([]dto.InventoryItem, 0, len(items))}
	for _, item := range items {
		f := Classify(item, now)
		if f.LowStock {
			res.Summary.LowStock++
		}
		if f.ExpiringSoon {
			res.Summary.ExpiringSoon++
		}
		if f.Expired {
			res.Summary.Expired++
		}
		res.Items = append(res.Items, dto.InventoryItem{
			ID:         item.ID,
			FeedName:   item.FeedName,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			ExpiryDate: item.ExpiryDate,
			Supplier:   item.Supplier,
			Status:     f.Status(),
		})
	}
	res.Summary.TotalItems = len(items)
	return res
}

package service

import (
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		item   entity.FeedInventory
		flags  Flags
		status string
	}{
		{"plenty no expiry", entity.FeedInventory{Quantity: 50}, Flags{}, StatusInStock},
		{"low stock", entity.FeedInventory{Quantity: 9.5}, Flags{LowStock: true}, StatusLowStock},
		{"exactly ten is not low", entity.FeedInventory{Quantity: 10}, Flags{}, StatusInStock},
		{"expires today", entity.FeedInventory{Quantity: 50, ExpiryDate: datePtr(today)}, Flags{ExpiringSoon: true}, StatusExpiringSoon},
		{"expires in 30 days", entity.FeedInventory{Quantity: 50, ExpiryDate: datePtr(today.AddDate(0, 0, 30))}, Flags{ExpiringSoon: true}, StatusExpiringSoon},
		{"expires in 31 days", entity.FeedInventory{Quantity: 50, ExpiryDate: datePtr(today.AddDate(0, 0, 31))}, Flags{}, StatusInStock},
		{"expired yesterday", entity.FeedInventory{Quantity: 50, ExpiryDate: datePtr(today.AddDate(0, 0, -1))}, Flags{Expired: true}, StatusExpired},
		{"expired and low", entity.FeedInventory{Quantity: 2, ExpiryDate: datePtr(today.AddDate(0, 0, -5))}, Flags{Expired: true, LowStock: true}, StatusExpired},
		{"expiring and low", entity.FeedInventory{Quantity: 2, ExpiryDate: datePtr(today.AddDate(0, 0, 5))}, Flags{ExpiringSoon: true, LowStock: true}, StatusExpiringSoon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.item, now)
			assert.Equal(t, tt.flags, f)
			assert.Equal(t, tt.status, f.Status())
			assert.False(t, f.Expired && f.ExpiringSoon)
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	items := []entity.FeedInventory{
		{FeedName: "Hay", Quantity: 5},
		{FeedName: "Bran", Quantity: 40, ExpiryDate: datePtr(now.AddDate(0, 0, 10))},
		{FeedName: "Cake", Quantity: 3, ExpiryDate: datePtr(now.AddDate(0, 0, -2))},
		{FeedName: "Silage", Quantity: 100},
	}

	res := Summarize(items, now)
	assert.Equal(t, 4, res.Summary.TotalItems)
	assert.Equal(t, 2, res.Summary.LowStock)
	assert.Equal(t, 1, res.Summary.ExpiringSoon)
	assert.Equal(t, 1, res.Summary.Expired)

	statuses := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		statuses = append(statuses, it.Status)
	}
	assert.Equal(t, []string{StatusLowStock, StatusExpiringSoon, StatusExpired, StatusInStock}, statuses)
}

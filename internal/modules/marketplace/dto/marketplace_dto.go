package dto

import (
	commonDto "anoa.com/livestockhub/pkg/dto"
	"github.com/google/uuid"
)

type ListingInput struct {
	AnimalID      *string `json:"animal_id" binding:"omitempty,uuid"`
	Title         string  `json:"title" binding:"required,min=3,max=150"`
	Description   string  `json:"description" binding:"omitempty,max=5000"`
	Category      string  `json:"category" binding:"required,oneof=cattle buffalo goat sheep pig poultry equipment feed other"`
	Price         float64 `json:"price" binding:"required,gt=0,max=100000000"`
	Location      string  `json:"location" binding:"required,min=2,max=200"`
	ContactNumber string  `json:"contact_number" binding:"required,phone10"`
}

type UpdateListingInput struct {
	Title         *string  `json:"title" binding:"omitempty,min=3,max=150"`
	Description   *string  `json:"description" binding:"omitempty,max=5000"`
	Category      *string  `json:"category" binding:"omitempty,oneof=cattle buffalo goat sheep pig poultry equipment feed other"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0,max=100000000"`
	Location      *string  `json:"location" binding:"omitempty,min=2,max=200"`
	ContactNumber *string  `json:"contact_number" binding:"omitempty,phone10"`
	Status        *string  `json:"status" binding:"omitempty,oneof=active sold inactive"`
}

type ListingFilter struct {
	commonDto.PageQuery
	Search   string  `form:"search" binding:"omitempty,max=100"`
	Category string  `form:"category" binding:"omitempty,oneof=cattle buffalo goat sheep pig poultry equipment feed other"`
	Location string  `form:"location" binding:"omitempty,max=100"`
	MinPrice float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice float64 `form:"max_price" binding:"omitempty,gte=0"`
	// Mine lists the caller's own listings in every status.
	Mine bool `form:"mine"`
}

type EnquiryInput struct {
	Message string `json:"message" binding:"required,min=2,max=2000"`
}

type ReviewInput struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ReportInput struct {
	Reason string `json:"reason" binding:"required,min=5,max=2000"`
}

type ReportFilter struct {
	commonDto.PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed resolved dismissed"`
}

type ReportStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed resolved dismissed"`
}

// SearchResult is a page of listing ids from the search index, in rank order.
type SearchResult struct {
	IDs   []uuid.UUID
	Total int64
}

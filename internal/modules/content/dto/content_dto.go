package dto

import commonDto "anoa.com/livestockhub/pkg/dto"

type ContentInput struct {
	Title     string  `json:"title" binding:"required,min=3,max=200"`
	Category  string  `json:"category" binding:"required,oneof=health nutrition breeding management schemes general"`
	Body      string  `json:"body" binding:"required,min=10"`
	Language  string  `json:"language" binding:"omitempty,oneof=en hi mr ta te kn bn gu pa"`
	MediaURL  *string `json:"media_url" binding:"omitempty,url"`
	Published bool    `json:"published"`
}

type UpdateContentInput struct {
	Title     *string `json:"title" binding:"omitempty,min=3,max=200"`
	Category  *string `json:"category" binding:"omitempty,oneof=health nutrition breeding management schemes general"`
	Body      *string `json:"body" binding:"omitempty,min=10"`
	Language  *string `json:"language" binding:"omitempty,oneof=en hi mr ta te kn bn gu pa"`
	MediaURL  *string `json:"media_url" binding:"omitempty,url"`
	Published *bool   `json:"published"`
}

type ContentFilter struct {
	commonDto.PageQuery
	Category string `form:"category" binding:"omitempty,oneof=health nutrition breeding management schemes general"`
	Language string `form:"language" binding:"omitempty,oneof=en hi mr ta te kn bn gu pa"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	// IncludeDrafts is honoured for admins only.
	IncludeDrafts bool `form:"include_drafts"`
}

type SchemeInput struct {
	Name        string  `json:"name" binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"required,min=10"`
	Eligibility *string `json:"eligibility" binding:"omitempty,max=5000"`
	Benefits    *string `json:"benefits" binding:"omitempty,max=5000"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Active      *bool   `json:"active"`
}

type UpdateSchemeInput struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description" binding:"omitempty,min=10"`
	Eligibility *string `json:"eligibility" binding:"omitempty,max=5000"`
	Benefits    *string `json:"benefits" binding:"omitempty,max=5000"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Active      *bool   `json:"active"`
}

type SchemeFilter struct {
	commonDto.PageQuery
	State string `form:"state" binding:"omitempty,max=100"`
	// IncludeInactive is honoured for admins only.
	IncludeInactive bool `form:"include_inactive"`
}

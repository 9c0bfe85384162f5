package dto

import commonDto "anoa.com/livestockhub/pkg/dto"

type CreateTicketInput struct {
	Subject     string `json:"subject" binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"required,min=10,max=5000"`
	Category    string `json:"category" binding:"required,oneof=animal_health marketplace account technical other"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
}

type ResponseInput struct {
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
}

type TicketFilter struct {
	commonDto.PageQuery
	Status    string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Priority  string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Category  string `form:"category" binding:"omitempty,oneof=animal_health marketplace account technical other"`
	SLABreach bool   `form:"sla_breach"`
}

package dto

type Turn struct {
	Role string `json:"role" binding:"required,oneof=user assistant"`
	Text string `json:"text" binding:"required,max=4000"`
}

type AskInput struct {
	Message  string `json:"message" binding:"required,min=1,max=2000"`
	Language string `json:"language" binding:"omitempty,oneof=en hi mr ta te kn bn gu pa"`
	History  []Turn `json:"history" binding:"omitempty,max=20,dive"`
}

type AskResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
}

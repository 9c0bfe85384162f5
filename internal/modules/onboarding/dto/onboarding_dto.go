package dto

type PersonalStepInput struct {
	FullName          string `json:"full_name" binding:"required,min=2,max=100"`
	Phone             string `json:"phone" binding:"required,phone10"`
	PreferredLanguage string `json:"preferred_language" binding:"required,oneof=en hi mr ta te kn bn gu pa"`
}

type LocationStepInput struct {
	State    string  `json:"state" binding:"required,min=2,max=100"`
	District string  `json:"district" binding:"required,min=2,max=100"`
	Village  *string `json:"village" binding:"omitempty,max=100"`
}

type FarmStepInput struct {
	FarmSize       float64 `json:"farm_size" binding:"required,gt=0,max=100000"`
	PrimarySpecies string  `json:"primary_species" binding:"required,oneof=cattle buffalo goat sheep pig poultry other"`
}

type ProgressResponse struct {
	CurrentStep int  `json:"current_step"`
	TotalSteps  int  `json:"total_steps"`
	NextStep    int  `json:"next_step,omitempty"`
	Completed   bool `json:"completed"`
}

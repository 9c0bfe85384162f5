package dto

type BreedingInput struct {
	BreedingDate         string  `json:"breeding_date" binding:"required,datetime=2006-01-02"`
	Method               string  `json:"method" binding:"required,oneof=natural artificial_insemination"`
	SireDetails          *string `json:"sire_details" binding:"omitempty,max=200"`
	ExpectedDeliveryDate *string `json:"expected_delivery_date" binding:"omitempty,datetime=2006-01-02"`
	Outcome              *string `json:"outcome" binding:"omitempty,max=100"`
	Notes                *string `json:"notes" binding:"omitempty,max=2000"`
}

type OutcomeInput struct {
	Outcome string  `json:"outcome" binding:"required,max=100"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

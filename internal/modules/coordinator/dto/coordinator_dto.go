package dto

type Overview struct {
	UsersByRole         map[string]int64 `json:"users_by_role"`
	AnimalsBySpecies    map[string]int64 `json:"animals_by_species"`
	AnimalsByHealth     map[string]int64 `json:"animals_by_health"`
	CasesByStatus       map[string]int64 `json:"cases_by_status"`
	VaccinationsDue     int              `json:"vaccinations_due"`
	VaccinationsOverdue int              `json:"vaccinations_overdue"`
	ActiveListings      int64            `json:"active_listings"`
	OpenTickets         int64            `json:"open_tickets"`
	OnboardedFarmers    int64            `json:"onboarded_farmers"`
}

type RegionFilter struct {
	State string `form:"state" binding:"omitempty,max=100"`
}

// RegionRow aggregates one state, or one district when a state is given.
type RegionRow struct {
	State     string `json:"state"`
	District  string `json:"district,omitempty"`
	Farmers   int64  `json:"farmers"`
	Animals   int64  `json:"animals"`
	OpenCases int64  `json:"open_cases"`
}

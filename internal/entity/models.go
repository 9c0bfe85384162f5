package entity

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&UserRole{},
		&Animal{},
		&HealthRecord{},
		&Vaccination{},
		&BreedingRecord{},
		&FeedingSchedule{},
		&FeedInventory{},
		&MarketplaceListing{},
		&MarketplaceEnquiry{},
		&MarketplaceReview{},
		&ListingReport{},
		&HelpdeskTicket{},
		&HelpdeskResponse{},
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&ContentItem{},
		&Scheme{},
		&ImpersonationSession{},
		&AuditLog{},
	}
}

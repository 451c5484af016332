package migration

import "remotcyberhelp/internal/infrastructure/persistence/models"

// CoreModels are the tables every deployment needs: accounts, the ticket
// store and the number counters.
func CoreModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.CounterModel{},
		&models.TicketModel{},
		&models.TicketResponseModel{},
	}
}

// ContentModels back the public site sections.
func ContentModels() []interface{} {
	return []interface{}{
		&models.ContactMessageModel{},
		&models.ConsultationModel{},
		&models.BlogPostModel{},
		&models.GovernmentServiceModel{},
		&models.GovernmentRequestModel{},
		&models.WorkingDayModel{},
		&models.HolidayModel{},
		&models.SubscriberModel{},
	}
}

// AutoMigrateModels returns every gorm model in creation order.
func AutoMigrateModels() []interface{} {
	return append(CoreModels(), ContentModels()...)
}

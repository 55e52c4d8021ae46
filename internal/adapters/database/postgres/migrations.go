package postgres

import "github.com/aitbenali/medina-journeys/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.Event{},
	&entity.EventRegistration{},
	&entity.ClubMembership{},
	&entity.ContactMessage{},
}

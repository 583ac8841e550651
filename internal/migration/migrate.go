package migration

import (
	"github.com/nichewire/nichewire-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables owned by this service.
// AutoMigrate creates missing tables and columns and never drops anything.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Post{},
		&domain.AffiliateLink{},
		&domain.ClickEvent{},
		&domain.Subscriber{},
	)
}

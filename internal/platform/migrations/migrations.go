package migrations

import (
	"gorm.io/gorm"

	registrypostgres "github.com/Apurer/order-registry/internal/domains/registry/adapters/persistence/postgres"
)

// Run applies the schema for the registry tables. The postgres snapshot store does not migrate
// on its own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(registrypostgres.Models()...)
}

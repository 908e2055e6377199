package seeds

import (
	"gorm.io/gorm"

	demo "kerjaku_backend/internals/seeds/demo"
)

// RunAllSeeds fills an empty database with a working demo tenant.
// Every seed is idempotent so the runner is safe on restart.
func RunAllSeeds(db *gorm.DB) {
	demo.SeedDemoOrganization(db)
}

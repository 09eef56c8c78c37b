package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/biztime"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/id"
)

// defaultCategoryNames are the seeded categories every user sees. They have
// no owner and cannot be renamed or deleted.
var defaultCategoryNames = []string{"sleep", "shower"}

// SeedDefaultCategories inserts the default categories if they are missing.
// Safe to run on every startup.
func SeedDefaultCategories(db *gorm.DB) error {
	for _, name := range defaultCategoryNames {
		var count int64
		if err := db.Model(&models.CategoryModel{}).
			Where("user_id IS NULL AND name = ?", name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check default category %q: %w", name, err)
		}
		if count > 0 {
			continue
		}

		sid, err := id.Generate(id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate SID for default category %q: %w", name, err)
		}

		now := biztime.NowUTC()
		if err := db.Create(&models.CategoryModel{
			SID:       sid,
			UserID:    nil,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error; err != nil {
			return fmt.Errorf("failed to seed default category %q: %w", name, err)
		}
	}

	return nil
}

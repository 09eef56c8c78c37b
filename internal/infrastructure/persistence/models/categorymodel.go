package models

import (
	"time"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/constants"
)

// CategoryModel represents the database persistence model for recording
// categories. A nil UserID marks a seeded default category shared by all
// users.
type CategoryModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;size:50;not null"`
	UserID    *uint  `gorm:"index:idx_category_user"`
	Name      string `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (CategoryModel) TableName() string {
	return constants.TableCategories
}

package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dreamtalk-inc/dreamtalk/internal/domain/user"
	"github.com/dreamtalk-inc/dreamtalk/internal/infrastructure/persistence/models"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/errors"
)

// OAuthAccountRepository persists provider identity links. The domain
// struct is mapped inline since it has no invariants beyond construction.
type OAuthAccountRepository struct {
	db *gorm.DB
}

// NewOAuthAccountRepository creates a new OAuth account repository
func NewOAuthAccountRepository(db *gorm.DB) user.OAuthAccountRepository {
	return &OAuthAccountRepository{db: db}
}

func (r *OAuthAccountRepository) Create(account *user.OAuthAccount) error {
	model := oauthAccountToModel(account)
	if err := r.db.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("oauth account already linked")
		}
		return fmt.Errorf("failed to create oauth account: %w", err)
	}
	account.ID = model.ID
	return nil
}

func (r *OAuthAccountRepository) GetByProviderAndUserID(provider, providerUserID string) (*user.OAuthAccount, error) {
	var model models.OAuthAccountModel
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get oauth account: %w", err)
	}
	return oauthAccountToDomain(&model), nil
}

func (r *OAuthAccountRepository) GetByUserID(userID uint) ([]*user.OAuthAccount, error) {
	var accountModels []models.OAuthAccountModel
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth accounts by user ID: %w", err)
	}

	accounts := make([]*user.OAuthAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = oauthAccountToDomain(&accountModels[i])
	}
	return accounts, nil
}

func (r *OAuthAccountRepository) Update(account *user.OAuthAccount) error {
	model := oauthAccountToModel(account)
	result := r.db.Model(&models.OAuthAccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"provider_email":      model.ProviderEmail,
			"provider_avatar_url": model.ProviderAvatarURL,
			"raw_user_info":       model.RawUserInfo,
			"last_login_at":       model.LastLoginAt,
			"login_count":         model.LoginCount,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}

func (r *OAuthAccountRepository) Delete(accountID uint) error {
	result := r.db.Delete(&models.OAuthAccountModel{}, accountID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}

func oauthAccountToModel(account *user.OAuthAccount) *models.OAuthAccountModel {
	return &models.OAuthAccountModel{
		ID:                account.ID,
		UserID:            account.UserID,
		Provider:          account.Provider,
		ProviderUserID:    account.ProviderUserID,
		ProviderEmail:     account.ProviderEmail,
		ProviderAvatarURL: account.ProviderAvatarURL,
		RawUserInfo:       account.RawUserInfo,
		LastLoginAt:       account.LastLoginAt,
		LoginCount:        account.LoginCount,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}

func oauthAccountToDomain(model *models.OAuthAccountModel) *user.OAuthAccount {
	return &user.OAuthAccount{
		ID:                model.ID,
		UserID:            model.UserID,
		Provider:          model.Provider,
		ProviderUserID:    model.ProviderUserID,
		ProviderEmail:     model.ProviderEmail,
		ProviderAvatarURL: model.ProviderAvatarURL,
		RawUserInfo:       model.RawUserInfo,
		LastLoginAt:       model.LastLoginAt,
		LoginCount:        model.LoginCount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

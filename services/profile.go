package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shadow-ranch-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ProfileService owns UserProfile and AchievementBadge records, keyed by
// wallet address. It is the only writer of badge unlock state.
type ProfileService struct {
	DB      *gorm.DB
	Content *ContentService
}

func NewProfileService(db *gorm.DB, content *ContentService) *ProfileService {
	return &ProfileService{DB: db, Content: content}
}

// GetProfile fetches a profile with its badge gallery.
func (s *ProfileService) GetProfile(walletAddress string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.DB.Preload("Badges").Where("wallet_address = ?", walletAddress).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &profile, nil
}

// CreateProfile creates a profile with the default locked badge set: the
// starter badges plus one reward badge per challenge in the curriculum.
func (s *ProfileService) CreateProfile(walletAddress string) (*models.UserProfile, error) {
	short := walletAddress
	if len(short) > 6 {
		short = short[:6]
	}
	profile := models.UserProfile{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		Username:      "Rancher_" + short,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		badges := s.defaultBadges(walletAddress)
		if err := tx.Create(&badges).Error; err != nil {
			return err
		}
		profile.Badges = badges
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &profile, nil
}

// EnsureProfile fetches or creates, never failing on "not found".
func (s *ProfileService) EnsureProfile(walletAddress string) (*models.UserProfile, error) {
	profile, err := s.GetProfile(walletAddress)
	if errors.Is(err, ErrProfileNotFound) {
		return s.CreateProfile(walletAddress)
	}
	return profile, err
}

func (s *ProfileService) defaultBadges(walletAddress string) []models.AchievementBadge {
	badges := make([]models.AchievementBadge, 0, len(models.DefaultBadgeSeeds)+models.TotalChallenges)
	for _, seed := range models.DefaultBadgeSeeds {
		badges = append(badges, models.AchievementBadge{
			ID:            uuid.NewString(),
			WalletAddress: walletAddress,
			Code:          seed.Code,
			Name:          seed.Name,
			Description:   seed.Description,
			ImageURL:      seed.ImageURL,
			Rarity:        seed.Rarity,
		})
	}
	for _, ch := range s.Content.ListChallenges() {
		meta := models.AchievementMetadataFor(ch)
		badges = append(badges, models.AchievementBadge{
			ID:            uuid.NewString(),
			WalletAddress: walletAddress,
			Code:          slug.Make(ch.NFTBadge),
			Name:          meta.Name,
			Description:   meta.Description,
			ImageURL:      meta.Image,
			Rarity:        models.ChallengeBadgeRarity(ch),
		})
	}
	return badges
}

// ProfileUpdate carries the optional fields of a partial profile update.
type ProfileUpdate struct {
	Username        *string `json:"username"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UpdateProfile applies a partial update.
func (s *ProfileService) UpdateProfile(walletAddress string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetProfile(walletAddress)
	if err != nil {
		return nil, err
	}
	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.ProfileImageURL != nil {
		profile.ProfileImageURL = *update.ProfileImageURL
	}
	if err := s.DB.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return profile, nil
}

// UnlockBadge flips a badge to unlocked, stamping the first unlock time.
// Re-unlocking keeps the original timestamp (idempotent).
func (s *ProfileService) UnlockBadge(walletAddress, badgeCode string) error {
	var badge models.AchievementBadge
	err := s.DB.Where("wallet_address = ? AND code = ?", walletAddress, badgeCode).First(&badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("badge %q not found for %s", badgeCode, walletAddress)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if badge.Unlocked {
		return nil // keep the first unlock timestamp
	}

	now := time.Now()
	badge.Unlocked = true
	badge.UnlockedAt = &now
	if err := s.DB.Save(&badge).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	log.Printf("🎖️ Badge unlocked: %s → %s", badge.Name, walletAddress)
	return nil
}

// Badges lists a wallet's badge gallery.
func (s *ProfileService) Badges(walletAddress string) ([]models.AchievementBadge, error) {
	var badges []models.AchievementBadge
	if err := s.DB.Where("wallet_address = ?", walletAddress).Order("created_at ASC").Find(&badges).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return badges, nil
}

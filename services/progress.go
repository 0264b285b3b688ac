package services

import (
	"fmt"
	"math/bits"

	"shadow-ranch-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionStats is the derived view of a progress record: which bits are
// set and how far through the fixed 20-unit curriculum (16 challenges + 4
// modules) the user is.
type CompletionStats struct {
	CompletedChallengeIDs []int   `json:"completed_challenge_ids"`
	CompletedModuleIDs    []int   `json:"completed_module_ids"`
	Percentage            float64 `json:"percentage"`
}

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// GetProgress fetches the progress record for a wallet.
func (s *ProgressService) GetProgress(walletAddress string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("wallet_address = ?", walletAddress).First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &prog, nil
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent), with
// both bitmasks zeroed on creation.
func (s *ProgressService) EnsureProgressRecord(walletAddress string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("wallet_address = ?", walletAddress).First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		prog = models.UserProgress{
			ID:            uuid.NewString(),
			WalletAddress: walletAddress,
		}
		if err := s.DB.Create(&prog).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return &prog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &prog, nil
}

// MarkChallengeComplete sets the challenge's bit for the wallet. Setting an
// already-set bit is a no-op. challengeID is the bit index (0..15).
func (s *ProgressService) MarkChallengeComplete(walletAddress string, challengeID int) error {
	if challengeID < 0 || challengeID >= models.TotalChallenges {
		return ErrInvalidChallengeID
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var prog models.UserProgress
		if err := tx.Where("wallet_address = ?", walletAddress).First(&prog).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("progress record not found for %s", walletAddress)
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		mask := uint16(1) << uint(challengeID)
		if prog.ChallengesCompleted&mask != 0 {
			return nil // already complete
		}
		prog.ChallengesCompleted |= mask

		if err := tx.Save(&prog).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil
	})
}

// MarkModuleComplete sets the module's bit for the wallet (0..3). It does not
// verify that the module's member challenges are complete; that check belongs
// to the caller and to the program client.
func (s *ProgressService) MarkModuleComplete(walletAddress string, moduleID int) error {
	if moduleID < 0 || moduleID >= models.TotalModules {
		return ErrInvalidModuleID
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var prog models.UserProgress
		if err := tx.Where("wallet_address = ?", walletAddress).First(&prog).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("progress record not found for %s", walletAddress)
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		mask := uint8(1) << uint(moduleID)
		if prog.ModulesCompleted&mask != 0 {
			return nil
		}
		prog.ModulesCompleted |= mask

		if err := tx.Save(&prog).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return nil
	})
}

// ModuleChallengesDone reports whether every challenge in a module has its
// bit set on the given progress record.
func (s *ProgressService) ModuleChallengesDone(prog *models.UserProgress, moduleID int) bool {
	mask := models.ModuleChallengeMask(moduleID)
	return mask != 0 && prog.ChallengesCompleted&mask == mask
}

// ComputeCompletionStats derives set-bit lists and the overall percentage out
// of the fixed 20-unit total.
func ComputeCompletionStats(prog *models.UserProgress) CompletionStats {
	stats := CompletionStats{
		CompletedChallengeIDs: []int{},
		CompletedModuleIDs:    []int{},
	}
	for i := 0; i < models.TotalChallenges; i++ {
		if prog.ChallengesCompleted&(1<<uint(i)) != 0 {
			stats.CompletedChallengeIDs = append(stats.CompletedChallengeIDs, i)
		}
	}
	for i := 0; i < models.TotalModules; i++ {
		if prog.ModulesCompleted&(1<<uint(i)) != 0 {
			stats.CompletedModuleIDs = append(stats.CompletedModuleIDs, i)
		}
	}
	done := bits.OnesCount16(prog.ChallengesCompleted) + bits.OnesCount8(prog.ModulesCompleted)
	total := models.TotalChallenges + models.TotalModules
	stats.Percentage = 100 * float64(done) / float64(total)
	return stats
}

// ResetProgress bulk-clears a wallet's record (testing/admin only).
func (s *ProgressService) ResetProgress(walletAddress string) error {
	result := s.DB.Model(&models.UserProgress{}).
		Where("wallet_address = ?", walletAddress).
		Updates(map[string]interface{}{
			"challenges_completed": 0,
			"modules_completed":    0,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, result.Error)
	}
	return nil
}

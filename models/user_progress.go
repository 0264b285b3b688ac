package models

import (
	"time"

	"gorm.io/gorm"
)

// Fixed curriculum size: 16 challenges grouped into 4 modules of 4.
const (
	TotalChallenges     = 16
	TotalModules        = 4
	ChallengesPerModule = TotalChallenges / TotalModules
)

// UserProgress tracks completion state for each wallet (denormalized for performance).
// ChallengesCompleted and ModulesCompleted are bitmasks: bit n set means
// challenge/module n is complete.
type UserProgress struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string `gorm:"uniqueIndex;not null" json:"wallet_address"` // links to profile

	ChallengesCompleted uint16 `json:"challenges_completed" gorm:"default:0"`
	ModulesCompleted    uint8  `json:"modules_completed" gorm:"default:0"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ModuleChallengeIDs returns the challenge ids belonging to a module
// (module 0 → 0..3, module 1 → 4..7, ...). Invalid module → empty.
func ModuleChallengeIDs(moduleID int) []int {
	if moduleID < 0 || moduleID >= TotalModules {
		return nil
	}
	ids := make([]int, 0, ChallengesPerModule)
	for i := 0; i < ChallengesPerModule; i++ {
		ids = append(ids, moduleID*ChallengesPerModule+i)
	}
	return ids
}

// ModuleChallengeMask builds the bitmask covering every challenge in a module.
func ModuleChallengeMask(moduleID int) uint16 {
	var mask uint16
	for _, id := range ModuleChallengeIDs(moduleID) {
		mask |= 1 << uint(id)
	}
	return mask
}

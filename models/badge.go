package models

import (
	"time"
)

// BadgeRarity is the fixed ordered rarity scale shown in profiles.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityUncommon  BadgeRarity = "uncommon"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// AchievementBadge: one unlockable badge row per profile (created locked
// with the profile, flipped to unlocked by the reward pipeline).
type AchievementBadge struct {
	ID            string      `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string      `gorm:"index:idx_badge_wallet_code,unique;not null" json:"wallet_address"`
	Code          string      `gorm:"index:idx_badge_wallet_code,unique;not null" json:"code"` // e.g. "first-lesson", "the-architect"
	Name          string      `gorm:"not null" json:"name"`
	Description   string      `json:"description"`
	ImageURL      string      `gorm:"type:text" json:"image_url"`
	Rarity        BadgeRarity `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	Unlocked      bool        `gorm:"default:false" json:"unlocked"`
	UnlockedAt    *time.Time  `json:"unlocked_at,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// BadgeSeed is the authored shape a new profile's badges are stamped from.
type BadgeSeed struct {
	Code        string
	Name        string
	Description string
	ImageURL    string
	Rarity      BadgeRarity
}

// DefaultBadgeSeeds is the starter badge set every new profile receives, all locked.
var DefaultBadgeSeeds = []BadgeSeed{
	{
		Code:        "first-lesson",
		Name:        "First Steps",
		Description: "Complete your first Solana lesson",
		ImageURL:    "/badges/first-lesson.svg",
		Rarity:      RarityCommon,
	},
	{
		Code:        "cypherpunk-initiate",
		Name:        "Cypherpunk Initiate",
		Description: "Learn the fundamentals of cypherpunk philosophy",
		ImageURL:    "/badges/cypherpunk-initiate.svg",
		Rarity:      RarityUncommon,
	},
	{
		Code:        "wallet-connected",
		Name:        "Wallet Master",
		Description: "Successfully connect your Solana wallet",
		ImageURL:    "/badges/wallet-connected.svg",
		Rarity:      RarityCommon,
	},
	{
		Code:        "ranch-builder",
		Name:        "Ranch Builder",
		Description: "Build your first structure in Shadow Ranch",
		ImageURL:    "/badges/ranch-builder.svg",
		Rarity:      RarityRare,
	},
	{
		Code:        "code-slinger",
		Name:        "Code Slinger",
		Description: "Write and deploy your first Solana program",
		ImageURL:    "/badges/code-slinger.svg",
		Rarity:      RarityEpic,
	},
	{
		Code:        "mindmap-explorer",
		Name:        "Mindmap Explorer",
		Description: "Explore the full history of internet mindmap",
		ImageURL:    "/badges/mindmap-explorer.svg",
		Rarity:      RarityUncommon,
	},
}

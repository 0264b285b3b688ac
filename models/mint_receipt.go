package models

import (
	"time"

	"gorm.io/gorm"
)

// MintStatus indicates where a best-effort achievement mint stands.
type MintStatus string

const (
	MintStatusPending   MintStatus = "pending"
	MintStatusConfirmed MintStatus = "confirmed"
	MintStatusFailed    MintStatus = "failed"
)

// MintReceipt records the on-chain side channel of a reward. One row per
// (wallet, challenge); a confirmed row with a signature means the NFT was
// minted and must not be minted again. Pending rows are retried later.
type MintReceipt struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string     `gorm:"index:idx_mint_wallet_challenge,unique;not null" json:"wallet_address"`
	ChallengeID   int        `gorm:"index:idx_mint_wallet_challenge,unique;not null" json:"challenge_id"`
	ModuleID      int        `gorm:"not null" json:"module_id"`
	BadgeName     string     `json:"badge_name"`
	MetadataURI   string     `gorm:"type:text" json:"metadata_uri"`
	TxSignature   string     `gorm:"index" json:"tx_signature"`
	Status        MintStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	LastError     string     `gorm:"type:text" json:"last_error,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

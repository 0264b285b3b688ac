package models

// UserProfile is the per-wallet profile document mirrored by the UI
// (username, bio, avatar, badge gallery).
type UserProfile struct {
	ID              string `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress   string `gorm:"uniqueIndex;not null" json:"wallet_address"`
	Username        string `gorm:"not null" json:"username"`
	Bio             string `gorm:"type:text" json:"bio"`
	ProfileImageURL string `gorm:"type:text" json:"profile_image_url"`

	Badges []AchievementBadge `gorm:"foreignKey:WalletAddress;references:WalletAddress" json:"badges,omitempty"`

	Timestamps
}

package models

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
)

// Attribute is a single NFT trait (trait_type/value pair).
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// AchievementMetadata describes one achievement badge before packaging.
type AchievementMetadata struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ChallengeID int         `json:"challenge_id"`
	Attributes  []Attribute `json:"attributes"`
}

// NFTMetadataJSON is the standard metadata document shape "uploaded" to
// decentralized storage and referenced by the mint.
type NFTMetadataJSON struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalURL string      `json:"external_url,omitempty"`
	Attributes  []Attribute `json:"attributes"`
	Properties  struct {
		Files []struct {
			URI  string `json:"uri"`
			Type string `json:"type"`
		} `json:"files"`
		Category string `json:"category"`
		Creators []struct {
			Address string `json:"address"`
			Share   int    `json:"share"`
		} `json:"creators"`
	} `json:"properties"`
}

// UploadedMetadata is the result of an upload: a content-addressed URI plus
// the exact document that was stored.
type UploadedMetadata struct {
	URI        string          `json:"uri"`
	Metadata   NFTMetadataJSON `json:"metadata"`
	UploadedAt time.Time       `json:"uploaded_at"`
	Size       int             `json:"size"`
	Hash       string          `json:"hash"`
}

// Per-challenge achievement traits, by authored challenge id.
var achievementTraits = map[int]struct {
	Difficulty string
	Category   string
	Skill      string
}{
	1:  {"Beginner", "Foundation", "Program Architecture"},
	2:  {"Beginner", "Connection", "Instruction Basics"},
	3:  {"Intermediate", "Data Management", "State Reading"},
	4:  {"Intermediate", "Transaction", "Chain Writing"},
	5:  {"Advanced", "State Management", "State Modification"},
	6:  {"Advanced", "Instructions", "Custom Instructions"},
	7:  {"Expert", "Security", "Access Control"},
	8:  {"Expert", "Accounts", "PDA Derivation"},
	9:  {"Advanced", "Integration", "Cross-Program Invocation"},
	10: {"Advanced", "Economics", "Lamport Transfers"},
	11: {"Intermediate", "Safety", "Error Handling"},
	12: {"Intermediate", "Observability", "Event Emission"},
	13: {"Intermediate", "Runtime", "Sysvar Access"},
	14: {"Expert", "Tokens", "SPL Minting"},
	15: {"Advanced", "Lifecycle", "Account Closing"},
	16: {"Master", "Capstone", "Full Program Design"},
}

// rarityByDifficulty maps an achievement's difficulty to its badge rarity tier.
var rarityByDifficulty = map[string]BadgeRarity{
	"Beginner":     RarityCommon,
	"Intermediate": RarityUncommon,
	"Advanced":     RarityRare,
	"Expert":       RarityEpic,
	"Master":       RarityLegendary,
}

// RarityForDifficulty returns the badge rarity for a difficulty label,
// defaulting to common for anything unknown.
func RarityForDifficulty(difficulty string) BadgeRarity {
	if r, ok := rarityByDifficulty[difficulty]; ok {
		return r
	}
	return RarityCommon
}

// AchievementMetadataFor builds the badge metadata for one challenge.
func AchievementMetadataFor(ch ChallengeDefinition) AchievementMetadata {
	traits := achievementTraits[ch.ID]
	code := slug.Make(ch.NFTBadge)
	return AchievementMetadata{
		Name:        ch.NFTBadge + " Badge",
		Symbol:      badgeSymbol(ch.NFTBadge),
		Description: fmt.Sprintf("Awarded for completing %q, challenge %d of the Shadow Ranch curriculum.", ch.Title, ch.ID),
		Image:       fmt.Sprintf("/assets/nfts/%s-badge.svg", code),
		ChallengeID: ch.ID,
		Attributes: []Attribute{
			{TraitType: "Category", Value: traits.Category},
			{TraitType: "Difficulty", Value: traits.Difficulty},
			{TraitType: "Skill", Value: traits.Skill},
		},
	}
}

// ChallengeBadgeRarity derives the rarity tier of a challenge's reward badge.
func ChallengeBadgeRarity(ch ChallengeDefinition) BadgeRarity {
	return RarityForDifficulty(achievementTraits[ch.ID].Difficulty)
}

// badgeSymbol turns a badge name into a short uppercase ticker, taking the
// last word ("The Architect" → "ARCHITECT") the way the achievement set is
// authored.
func badgeSymbol(name string) string {
	parts := slug.Make(name)
	// slug gives "the-architect"; keep the final segment
	last := parts
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == '-' {
			last = parts[i+1:]
			break
		}
	}
	out := make([]byte, len(last))
	for i := 0; i < len(last); i++ {
		c := last[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

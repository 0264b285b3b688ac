package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"shadow-ranch-system/models"
)

// MetadataUploader stores packaged badge metadata somewhere content-addressed
// and hands back the URI. The stock implementation is a simulation; a real
// decentralized-storage backend substitutes here without touching the
// coordinator.
type MetadataUploader interface {
	UploadMetadata(ctx context.Context, meta models.AchievementMetadata) (*models.UploadedMetadata, error)
	UploadImage(ctx context.Context, imagePath string, challengeID int) (string, error)
}

// MockUploader fabricates decentralized-storage URIs without any storage at
// all: the hash is derived from the payload, the gateway rotates by challenge
// id, and a short delay stands in for the network. Development default.
type MockUploader struct {
	Delay       time.Duration
	ExternalURL string
	Creator     string
}

var mockGatewayBases = []string{
	"https://arweave.net",
	"https://ipfs.io/ipfs",
	"https://cloudflare-ipfs.com/ipfs",
	"https://gateway.pinata.cloud/ipfs",
}

func NewMockUploader(delay time.Duration) *MockUploader {
	return &MockUploader{
		Delay:       delay,
		ExternalURL: "https://shadow-ranch.xyz",
		Creator:     "ShadowRanchDevTeam1234567890123456789012",
	}
}

func (u *MockUploader) sleep(ctx context.Context) error {
	if u.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(u.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UploadImage "stores" the badge art and returns its gateway URI.
func (u *MockUploader) UploadImage(ctx context.Context, imagePath string, challengeID int) (string, error) {
	if err := u.sleep(ctx); err != nil {
		return "", err
	}
	payload := fmt.Sprintf("image_data_for_challenge_%d_%s", challengeID, imagePath)
	return fakeURI(challengeID, fakeHash(payload)), nil
}

// UploadMetadata packages the achievement into the standard NFT metadata
// document and "uploads" it, returning the document together with its
// synthetic URI, size and hash.
func (u *MockUploader) UploadMetadata(ctx context.Context, meta models.AchievementMetadata) (*models.UploadedMetadata, error) {
	if err := u.sleep(ctx); err != nil {
		return nil, err
	}

	imageURI, err := u.UploadImage(ctx, meta.Image, meta.ChallengeID)
	if err != nil {
		return nil, err
	}

	doc := PackageMetadata(meta, imageURI, u.ExternalURL, u.Creator)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata for %s: %w", meta.Name, err)
	}

	hash := fakeHash(string(raw))
	return &models.UploadedMetadata{
		URI:        fakeURI(meta.ChallengeID, hash),
		Metadata:   doc,
		UploadedAt: time.Now(),
		Size:       len(raw),
		Hash:       hash,
	}, nil
}

// PackageMetadata is the pure MetadataPackaging step: badge definition plus
// challenge id in, standard NFT metadata document out.
func PackageMetadata(meta models.AchievementMetadata, imageURI, externalURL, creator string) models.NFTMetadataJSON {
	difficulty := "Common"
	for _, attr := range meta.Attributes {
		if attr.TraitType == "Difficulty" {
			difficulty = attr.Value
		}
	}

	doc := models.NFTMetadataJSON{
		Name:        meta.Name,
		Symbol:      meta.Symbol,
		Description: meta.Description,
		Image:       imageURI,
		ExternalURL: externalURL,
		Attributes: append(append([]models.Attribute{}, meta.Attributes...),
			models.Attribute{TraitType: "Challenge ID", Value: fmt.Sprintf("%d", meta.ChallengeID)},
			models.Attribute{TraitType: "Collection", Value: "Shadow Ranch Achievements"},
			models.Attribute{TraitType: "Rarity", Value: string(models.RarityForDifficulty(difficulty))},
		),
	}
	doc.Properties.Files = []struct {
		URI  string `json:"uri"`
		Type string `json:"type"`
	}{{URI: imageURI, Type: "image/svg+xml"}}
	doc.Properties.Category = "image"
	doc.Properties.Creators = []struct {
		Address string `json:"address"`
		Share   int    `json:"share"`
	}{{Address: creator, Share: 100}}
	return doc
}

// fakeHash derives a 44-character hash-looking string from the payload.
// Deliberately not cryptographic; this is a stand-in for a CID.
func fakeHash(data string) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	out := make([]byte, 44)
	n := len(data)
	for i := range out {
		out[i] = chars[(n+i*7)%len(chars)]
	}
	return string(out)
}

func fakeURI(challengeID int, hash string) string {
	base := mockGatewayBases[challengeID%len(mockGatewayBases)]
	return base + "/" + hash
}

var decentralizedURIPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://arweave\.net/[a-zA-Z0-9_-]+$`),
	regexp.MustCompile(`^https://ipfs\.io/ipfs/[a-zA-Z0-9]+$`),
	regexp.MustCompile(`^https://cloudflare-ipfs\.com/ipfs/[a-zA-Z0-9]+$`),
	regexp.MustCompile(`^https://gateway\.pinata\.cloud/ipfs/[a-zA-Z0-9]+$`),
}

// ValidDecentralizedURI reports whether a URI has the shape of one of the
// supported storage gateways.
func ValidDecentralizedURI(uri string) bool {
	for _, p := range decentralizedURIPatterns {
		if p.MatchString(uri) {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"shadow-ranch-system/models"
	"shadow-ranch-system/utils"

	"github.com/gosimple/slug"
)

// R2MetadataUploader stores badge art and metadata documents in Cloudflare R2
// and serves them from the CDN. Requires utils.InitR2() to have run.
type R2MetadataUploader struct {
	ExternalURL string
	Creator     string
}

func NewR2MetadataUploader() *R2MetadataUploader {
	return &R2MetadataUploader{
		ExternalURL: "https://shadow-ranch.xyz",
		Creator:     "ShadowRanchDevTeam1234567890123456789012",
	}
}

func (u *R2MetadataUploader) UploadImage(ctx context.Context, imagePath string, challengeID int) (string, error) {
	key := fmt.Sprintf("badges/%d-%s", challengeID, slug.Make(imagePath))
	url, err := utils.UploadFileToR2(ctx, imagePath, key, "image/svg+xml")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return url, nil
}

func (u *R2MetadataUploader) UploadMetadata(ctx context.Context, meta models.AchievementMetadata) (*models.UploadedMetadata, error) {
	imageURI, err := u.UploadImage(ctx, meta.Image, meta.ChallengeID)
	if err != nil {
		return nil, err
	}

	doc := PackageMetadata(meta, imageURI, u.ExternalURL, u.Creator)

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata for %s: %w", meta.Name, err)
	}

	key := fmt.Sprintf("metadata/%d-%s.json", meta.ChallengeID, slug.Make(meta.Name))
	uri, err := utils.UploadBytesToR2(ctx, key, raw, "application/json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(raw))
	return &models.UploadedMetadata{
		URI:        uri,
		Metadata:   doc,
		UploadedAt: time.Now(),
		Size:       len(raw),
		Hash:       hash,
	}, nil
}

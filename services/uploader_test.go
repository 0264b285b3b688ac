package services

import (
	"context"
	"testing"
	"time"

	"shadow-ranch-system/models"
)

func TestMockUploaderRoundTrip(t *testing.T) {
	content := NewContentService()
	ch, err := content.GetChallenge(16)
	if err != nil {
		t.Fatal(err)
	}
	meta := models.AchievementMetadataFor(ch)

	u := NewMockUploader(0)
	uploaded, err := u.UploadMetadata(context.Background(), meta)
	if err != nil {
		t.Fatalf("UploadMetadata: %v", err)
	}

	if uploaded.Metadata.Name != "Trail Boss Badge" {
		t.Errorf("name = %q", uploaded.Metadata.Name)
	}
	if uploaded.Metadata.Symbol != "BOSS" {
		t.Errorf("symbol = %q, want BOSS", uploaded.Metadata.Symbol)
	}
	if uploaded.Metadata.Description != meta.Description {
		t.Error("description must survive packaging unchanged")
	}
	if !ValidDecentralizedURI(uploaded.URI) {
		t.Errorf("URI %q does not match any supported gateway", uploaded.URI)
	}
	if len(uploaded.Hash) != 44 {
		t.Errorf("hash length = %d, want 44", len(uploaded.Hash))
	}
	if uploaded.Size <= 0 {
		t.Error("size must reflect the stored document")
	}
}

func TestPackageMetadataAppendsStandardTraits(t *testing.T) {
	content := NewContentService()
	ch, _ := content.GetChallenge(16) // capstone, Master difficulty
	meta := models.AchievementMetadataFor(ch)

	doc := PackageMetadata(meta, "https://arweave.net/img", "https://shadow-ranch.xyz", "CreatorAddr")

	want := map[string]string{
		"Challenge ID": "16",
		"Collection":   "Shadow Ranch Achievements",
		"Rarity":       "legendary",
		"Difficulty":   "Master",
	}
	got := make(map[string]string, len(doc.Attributes))
	for _, attr := range doc.Attributes {
		got[attr.TraitType] = attr.Value
	}
	for trait, value := range want {
		if got[trait] != value {
			t.Errorf("attribute %q = %q, want %q", trait, got[trait], value)
		}
	}

	if len(doc.Properties.Creators) != 1 || doc.Properties.Creators[0].Share != 100 {
		t.Error("packaging must credit the single creator with a full share")
	}
	if len(doc.Properties.Files) != 1 || doc.Properties.Files[0].URI != "https://arweave.net/img" {
		t.Error("packaging must reference the uploaded image")
	}
}

func TestRarityForDifficulty(t *testing.T) {
	cases := []struct {
		difficulty string
		want       models.BadgeRarity
	}{
		{"Beginner", models.RarityCommon},
		{"Intermediate", models.RarityUncommon},
		{"Advanced", models.RarityRare},
		{"Expert", models.RarityEpic},
		{"Master", models.RarityLegendary},
		{"Impossible", models.RarityCommon}, // unknown defaults down
	}
	for _, tc := range cases {
		if got := models.RarityForDifficulty(tc.difficulty); got != tc.want {
			t.Errorf("RarityForDifficulty(%q) = %q, want %q", tc.difficulty, got, tc.want)
		}
	}
}

func TestValidDecentralizedURI(t *testing.T) {
	valid := []string{
		"https://arweave.net/abc123_-XYZ",
		"https://ipfs.io/ipfs/QmYwAPJzv5CZsnA",
		"https://cloudflare-ipfs.com/ipfs/QmYwAPJzv5CZsnA",
		"https://gateway.pinata.cloud/ipfs/QmYwAPJzv5CZsnA",
	}
	for _, uri := range valid {
		if !ValidDecentralizedURI(uri) {
			t.Errorf("%q should be valid", uri)
		}
	}

	invalid := []string{
		"http://arweave.net/abc",
		"https://arweave.net/",
		"https://example.com/ipfs/Qm123",
		"not a uri",
	}
	for _, uri := range invalid {
		if ValidDecentralizedURI(uri) {
			t.Errorf("%q should be rejected", uri)
		}
	}
}

func TestUploadRespectsCancellation(t *testing.T) {
	u := NewMockUploader(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := u.UploadMetadata(ctx, models.AchievementMetadata{Name: "x"}); err == nil {
		t.Error("cancelled context must abort the upload")
	}
}

package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"shadow-ranch-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChainSyncClient mirrors confirmed mint transactions from the chain indexer
// into the local mint_receipts table, so receipts survive even when the mint
// was confirmed out-of-band (retry from another session, explorer, etc).
type ChainSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewChainSyncClient(db *gorm.DB) *ChainSyncClient {
	baseURL := os.Getenv("CHAIN_INDEXER_URL")
	if baseURL == "" {
		log.Fatal("CHAIN_INDEXER_URL environment variable is required")
	}
	token := os.Getenv("RANCH_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("RANCH_SERVICE_TOKEN environment variable is required for chain sync")
	}

	return &ChainSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetConfirmedMints fetches mint transactions confirmed since the given time.
func (c *ChainSyncClient) GetConfirmedMints(ctx context.Context, since time.Time) ([]models.MintReceipt, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/mints", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chain indexer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("chain indexer returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Mints []models.MintReceipt `json:"mints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode chain indexer response: %w", err)
	}

	return response.Mints, nil
}

// PollMints periodically pulls confirmed mints and upserts them locally.
func PollMints(ctx context.Context, client *ChainSyncClient, pollInterval time.Duration) {
	log.Println("Starting mint receipt polling (DB-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Mint polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			mints, err := client.GetConfirmedMints(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling confirmed mints: %v", err)
				continue
			}

			count := len(mints)
			if count == 0 {
				continue
			}
			log.Printf("📥 Received %d confirmed mint(s) from chain indexer.", count)

			// Bulk upsert keyed on (wallet_address, challenge_id); a locally
			// pending receipt gets its signature filled in.
			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "wallet_address"}, {Name: "challenge_id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"tx_signature",
						"metadata_uri",
						"status",
						"confirmed_at",
						"updated_at",
					}),
				},
			).Create(&mints).Error; err != nil {
				log.Printf("❌ Failed to upsert %d mint receipt(s): %v", count, err)
				// Do NOT update lastSyncTime on failure — retry same window next tick
				continue
			}

			lastSyncTime = logTime
			log.Printf("✅ Upserted %d mint receipt(s).", count)
		}
	}
}

// GetReceiptBySignature looks a receipt up by its transaction signature.
func GetReceiptBySignature(db *gorm.DB, signature string) (models.MintReceipt, bool, error) {
	var receipt models.MintReceipt
	if err := db.Where("tx_signature = ?", signature).First(&receipt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return receipt, false, nil
		}
		return receipt, false, err
	}
	return receipt, true, nil
}

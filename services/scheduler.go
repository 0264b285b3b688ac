package services

import (
	"context"
	"errors"
	"log"
	"time"

	"shadow-ranch-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartMintRetryScheduler retries pending achievement mints every minute.
// Mints are a best-effort side channel: a wallet that was disconnected at
// completion time gets its NFT once it reconnects.
func (s *RewardService) StartMintRetryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.MintTimeout)
			defer cancel()
			s.retryPendingMints(ctx)
		}),
	)
}

// retryPendingMints runs one retry pass over unconfirmed receipts whose
// wallets are currently connected.
func (s *RewardService) retryPendingMints(ctx context.Context) {
	var pending []models.MintReceipt
	err := s.DB.Where("status = ? AND tx_signature = ''", models.MintStatusPending).
		Limit(50).
		Find(&pending).Error
	if err != nil {
		log.Printf("[MintRetry] DB error: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	for _, receipt := range pending {
		if !s.Chain.Connected(receipt.WalletAddress) {
			continue
		}
		ch, err := s.Content.GetChallenge(receipt.ChallengeID)
		if err != nil {
			log.Printf("[MintRetry] Receipt %s references unknown challenge %d", receipt.ID, receipt.ChallengeID)
			continue
		}
		meta := models.AchievementMetadataFor(ch)

		// The wallet may never have touched the chain before now (completed
		// its challenges disconnected), so the progress account may not exist.
		if _, err := s.Chain.InitializeUser(ctx, receipt.WalletAddress); err != nil && !errors.Is(err, ErrAlreadyInitialized) {
			receipt.LastError = err.Error()
			if err := s.DB.Save(&receipt).Error; err != nil {
				log.Printf("[MintRetry] Failed to save receipt %s: %v", receipt.ID, err)
			}
			continue
		}

		sig, err := s.Chain.MintAchievementNFT(ctx, receipt.WalletAddress, meta.Name, meta.Symbol, receipt.MetadataURI, receipt.ModuleID)
		if err != nil {
			receipt.LastError = err.Error()
			if err := s.DB.Save(&receipt).Error; err != nil {
				log.Printf("[MintRetry] Failed to save receipt %s: %v", receipt.ID, err)
			}
			continue
		}

		now := time.Now()
		receipt.TxSignature = sig
		receipt.Status = models.MintStatusConfirmed
		receipt.ConfirmedAt = &now
		receipt.LastError = ""
		if err := s.DB.Save(&receipt).Error; err != nil {
			log.Printf("[MintRetry] Failed to save receipt %s: %v", receipt.ID, err)
		} else {
			log.Printf("✅ Retried mint succeeded: %s for %s", receipt.BadgeName, receipt.WalletAddress)
		}
	}
}

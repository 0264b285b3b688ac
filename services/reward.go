package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shadow-ranch-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// StepStatus is the per-step outcome within a reward pipeline run.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// PipelineStep names the fixed stages of the reward pipeline, in order.
type PipelineStep struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// RewardOutcome reports one pipeline run: what was unlocked, what was
// minted, and any non-fatal warnings (upload/mint are best-effort).
type RewardOutcome struct {
	ChallengeID     int            `json:"challenge_id"`
	BadgeCode       string         `json:"badge_code"`
	MetadataURI     string         `json:"metadata_uri,omitempty"`
	TxSignature     string         `json:"tx_signature,omitempty"`
	ModuleCompleted *int           `json:"module_completed,omitempty"`
	Steps           []PipelineStep `json:"steps"`
	Warnings        []string       `json:"warnings,omitempty"`
}

// SubmissionResult is what a submit call returns to the UI: pass/fail with
// the authored message, plus the pipeline outcome when validation passed.
type SubmissionResult struct {
	Passed           bool           `json:"passed"`
	Message          string         `json:"message"`
	AlreadyCompleted bool           `json:"already_completed,omitempty"`
	Outcome          *RewardOutcome `json:"outcome,omitempty"`
}

// RewardService orchestrates what happens after a validated success:
// visual feedback → metadata packaging → asset upload → mint attempt →
// badge unlock → progress update, strictly in that order. Upload and mint
// are best-effort side channels; badge and progress are not.
type RewardService struct {
	DB        *gorm.DB
	Content   *ContentService
	Validator *AnswerValidator
	Progress  *ProgressService
	Profiles  *ProfileService
	Uploader  MetadataUploader
	Chain     ProgramClient

	// FeedbackDuration is the cosmetic celebration pause after validation.
	FeedbackDuration time.Duration
	// MintTimeout bounds the chain RPC; on expiry the pipeline proceeds and
	// the mint is left pending for the retry scheduler.
	MintTimeout time.Duration
}

func NewRewardService(
	db *gorm.DB,
	content *ContentService,
	validator *AnswerValidator,
	progress *ProgressService,
	profiles *ProfileService,
	uploader MetadataUploader,
	chain ProgramClient,
) *RewardService {
	return &RewardService{
		DB:               db,
		Content:          content,
		Validator:        validator,
		Progress:         progress,
		Profiles:         profiles,
		Uploader:         uploader,
		Chain:            chain,
		FeedbackDuration: 3 * time.Second,
		MintTimeout:      30 * time.Second,
	}
}

// SubmitCode validates a coding-challenge submission and, on success, runs
// the full reward pipeline. A failed validation returns the authored failure
// message; nothing is mutated and the pipeline never starts.
func (s *RewardService) SubmitCode(ctx context.Context, wallet string, challengeID int, code string) (*SubmissionResult, error) {
	ch, err := s.Content.GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}

	if !s.Validator.ValidateCode(code, ch) {
		return &SubmissionResult{Passed: false, Message: ch.FailureMessage}, nil
	}

	outcome, already, err := s.runPipeline(ctx, wallet, ch)
	if err != nil {
		return nil, err
	}
	return &SubmissionResult{
		Passed:           true,
		Message:          ch.SuccessMessage,
		AlreadyCompleted: already,
		Outcome:          outcome,
	}, nil
}

// SubmitQuiz validates a quiz answer. Knowledge checks do not touch the
// challenge bitmask; the first correct answer unlocks the initiate badge and
// re-submission is a no-op (badge timestamps preserved).
func (s *RewardService) SubmitQuiz(ctx context.Context, wallet string, quizID int, answer string) (*SubmissionResult, error) {
	q, err := s.Content.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if !s.Validator.ValidateQuiz(answer, q) {
		return &SubmissionResult{Passed: false, Message: q.FailureMessage}, nil
	}

	if _, err := s.Profiles.EnsureProfile(wallet); err != nil {
		return nil, err
	}
	if err := s.Profiles.UnlockBadge(wallet, "cypherpunk-initiate"); err != nil {
		return nil, err
	}
	return &SubmissionResult{Passed: true, Message: q.SuccessMessage}, nil
}

// runPipeline executes steps 2..7 for a validated challenge. Returns the
// outcome, whether the challenge had already been completed, and an error
// only when a non-best-effort step (badge unlock, progress update) fails.
func (s *RewardService) runPipeline(ctx context.Context, wallet string, ch models.ChallengeDefinition) (*RewardOutcome, bool, error) {
	outcome := &RewardOutcome{
		ChallengeID: ch.ID,
		BadgeCode:   slug.Make(ch.NFTBadge),
		Steps:       []PipelineStep{{Name: "validated", Status: StepOK}},
	}

	// First interaction creates the durable records.
	if _, err := s.Profiles.EnsureProfile(wallet); err != nil {
		return nil, false, err
	}
	prog, err := s.Progress.EnsureProgressRecord(wallet)
	if err != nil {
		return nil, false, err
	}
	already := prog.ChallengesCompleted&(1<<uint(ch.BitIndex())) != 0

	// 2. Visual feedback: cosmetic, time-boxed, always succeeds.
	if s.FeedbackDuration > 0 {
		select {
		case <-time.After(s.FeedbackDuration):
		case <-ctx.Done():
			return nil, already, ctx.Err()
		}
	}
	outcome.step("visual_feedback", StepOK, "")

	// 3. Metadata packaging: pure data transformation.
	meta := models.AchievementMetadataFor(ch)
	outcome.step("metadata_packaging", StepOK, "")

	// 4. Asset upload: best-effort.
	var metadataURI string
	uploaded, err := s.Uploader.UploadMetadata(ctx, meta)
	if err != nil {
		outcome.step("asset_upload", StepFailed, err.Error())
		outcome.warn("metadata upload failed: " + err.Error())
	} else {
		metadataURI = uploaded.URI
		outcome.MetadataURI = metadataURI
		outcome.step("asset_upload", StepOK, metadataURI)
	}

	// 5. Mint attempt: best-effort, never re-minted once a signature exists.
	s.attemptMint(ctx, wallet, ch, meta, metadataURI, outcome)

	// 6. Badge unlock: required.
	if err := s.Profiles.UnlockBadge(wallet, outcome.BadgeCode); err != nil {
		outcome.step("badge_unlock", StepFailed, err.Error())
		return outcome, already, err
	}
	outcome.step("badge_unlock", StepOK, outcome.BadgeCode)

	// 7. Progress update: required.
	if err := s.Progress.MarkChallengeComplete(wallet, ch.BitIndex()); err != nil {
		outcome.step("progress_update", StepFailed, err.Error())
		return outcome, already, err
	}

	prog, err = s.Progress.GetProgress(wallet)
	if err != nil {
		outcome.step("progress_update", StepFailed, err.Error())
		return outcome, already, err
	}
	moduleID := ch.ModuleID()
	if s.Progress.ModuleChallengesDone(prog, moduleID) && prog.ModulesCompleted&(1<<uint(moduleID)) == 0 {
		if err := s.Progress.MarkModuleComplete(wallet, moduleID); err != nil {
			outcome.step("progress_update", StepFailed, err.Error())
			return outcome, already, err
		}
		outcome.ModuleCompleted = &moduleID
		log.Printf("🏆 Module %d completed by %s", moduleID, wallet)
	}
	outcome.step("progress_update", StepOK, "")

	// Mirror completion to the chain, best-effort.
	s.mirrorToChain(ctx, wallet, ch, outcome)

	return outcome, already, nil
}

// attemptMint runs the mint side channel. Wallet disconnected or RPC errors
// leave a pending receipt for the retry scheduler and surface a non-fatal
// MintUnavailable notice; steps 1-4 are never rolled back.
func (s *RewardService) attemptMint(ctx context.Context, wallet string, ch models.ChallengeDefinition, meta models.AchievementMetadata, metadataURI string, outcome *RewardOutcome) {
	var receipt models.MintReceipt
	err := s.DB.Where("wallet_address = ? AND challenge_id = ?", wallet, ch.ID).First(&receipt).Error
	switch {
	case err == nil:
		if receipt.TxSignature != "" {
			outcome.TxSignature = receipt.TxSignature
			outcome.step("mint_attempt", StepSkipped, "already minted")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		receipt = models.MintReceipt{
			ID:            uuid.NewString(),
			WalletAddress: wallet,
			ChallengeID:   ch.ID,
			ModuleID:      ch.ModuleID(),
			BadgeName:     ch.NFTBadge,
			Status:        models.MintStatusPending,
		}
		if err := s.DB.Create(&receipt).Error; err != nil {
			outcome.step("mint_attempt", StepFailed, err.Error())
			outcome.warn("could not record mint receipt: " + err.Error())
			return
		}
	default:
		outcome.step("mint_attempt", StepFailed, err.Error())
		outcome.warn("could not read mint receipt: " + err.Error())
		return
	}

	if metadataURI != "" && receipt.MetadataURI != metadataURI {
		receipt.MetadataURI = metadataURI
		s.DB.Save(&receipt)
	}

	if !s.Chain.Connected(wallet) {
		outcome.step("mint_attempt", StepSkipped, ErrWalletNotConnected.Error())
		outcome.warn(fmt.Sprintf("%v: badge saved, NFT mint will be retried", ErrMintUnavailable))
		return
	}

	mintCtx, cancel := context.WithTimeout(ctx, s.MintTimeout)
	defer cancel()

	// First-ever chain interaction for this wallet creates its progress account.
	if _, err := s.Chain.InitializeUser(mintCtx, wallet); err != nil && !errors.Is(err, ErrAlreadyInitialized) {
		receipt.LastError = err.Error()
		s.DB.Save(&receipt)
		outcome.step("mint_attempt", StepFailed, err.Error())
		outcome.warn(fmt.Sprintf("%v: %v — progress still saved", ErrMintUnavailable, err))
		return
	}

	sig, err := s.Chain.MintAchievementNFT(mintCtx, wallet, meta.Name, meta.Symbol, metadataURI, ch.ModuleID())
	if err != nil {
		receipt.Status = models.MintStatusPending
		receipt.LastError = err.Error()
		s.DB.Save(&receipt)
		outcome.step("mint_attempt", StepFailed, err.Error())
		outcome.warn(fmt.Sprintf("%v: %v — progress still saved", ErrMintUnavailable, err))
		log.Printf("⚠️ Mint failed for %s challenge %d: %v (will retry)", wallet, ch.ID, err)
		return
	}

	now := time.Now()
	receipt.TxSignature = sig
	receipt.Status = models.MintStatusConfirmed
	receipt.ConfirmedAt = &now
	receipt.LastError = ""
	if err := s.DB.Save(&receipt).Error; err != nil {
		outcome.warn("mint succeeded but receipt save failed: " + err.Error())
	}
	outcome.TxSignature = sig
	outcome.step("mint_attempt", StepOK, sig)
	log.Printf("✅ Minted %q for %s (sig %.12s…)", meta.Name, wallet, sig)
}

// mirrorToChain pushes completion to the on-chain progress account. Entirely
// best-effort: chain unavailability must never block learning progress.
func (s *RewardService) mirrorToChain(ctx context.Context, wallet string, ch models.ChallengeDefinition, outcome *RewardOutcome) {
	if !s.Chain.Connected(wallet) {
		return
	}
	chainCtx, cancel := context.WithTimeout(ctx, s.MintTimeout)
	defer cancel()

	// Ignore already-initialized: initialization is first-interaction only.
	if _, err := s.Chain.InitializeUser(chainCtx, wallet); err != nil && !errors.Is(err, ErrAlreadyInitialized) {
		outcome.warn("chain init failed: " + err.Error())
		return
	}
	if _, err := s.Chain.CompleteChallenge(chainCtx, wallet, ch.BitIndex()); err != nil {
		outcome.warn("chain challenge sync failed: " + err.Error())
		return
	}
	if outcome.ModuleCompleted != nil {
		if _, err := s.Chain.CompleteModule(chainCtx, wallet, *outcome.ModuleCompleted); err != nil {
			outcome.warn("chain module sync failed: " + err.Error())
		}
	}
}

func (o *RewardOutcome) step(name string, status StepStatus, detail string) {
	o.Steps = append(o.Steps, PipelineStep{Name: name, Status: status, Detail: detail})
}

func (o *RewardOutcome) warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

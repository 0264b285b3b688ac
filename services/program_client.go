package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shadow-ranch-system/models"

	"github.com/google/uuid"
)

// Program-client errors mirror the on-chain program's error codes.
var (
	ErrChainInvalidChallengeID = errors.New("chain: invalid challenge id, must be between 0 and 15")
	ErrChainInvalidModuleID    = errors.New("chain: invalid module id, must be between 0 and 3")
	ErrChainUnauthorized       = errors.New("chain: only the account authority can perform this action")
	ErrModuleNotComplete       = errors.New("chain: all challenges in the module must be completed first")
	ErrWalletNotConnected      = errors.New("chain: wallet not connected")
	ErrUserNotInitialized      = errors.New("chain: user progress account not found")
	ErrAlreadyInitialized      = errors.New("chain: user progress account already exists")
)

// ProgramClient is the opaque blockchain collaborator. The reward coordinator
// only consumes these four operations; failures are downgraded to a
// non-blocking mint warning.
type ProgramClient interface {
	InitializeUser(ctx context.Context, wallet string) (string, error)
	CompleteChallenge(ctx context.Context, wallet string, challengeID int) (string, error)
	CompleteModule(ctx context.Context, wallet string, moduleID int) (string, error)
	MintAchievementNFT(ctx context.Context, wallet string, title, symbol, uri string, moduleID int) (string, error)
	Connected(wallet string) bool
}

// chainAccount is the simulated on-chain user_progress PDA.
type chainAccount struct {
	authority           string
	challengesCompleted uint16
	modulesCompleted    uint8
	createdAt           int64
	updatedAt           int64
}

// SimulatedProgramClient reproduces the deployed program's semantics in
// memory: per-wallet progress accounts, the same bitmask updates, and the
// module-mask prerequisite check before module completion or a mint.
// Handlers and the retry scheduler share one instance, hence the mutex.
type SimulatedProgramClient struct {
	mu         sync.Mutex
	accounts   map[string]*chainAccount
	connected  map[string]bool
	rpcLatency time.Duration
	signatures []string // every signature ever issued, for the sync worker
}

func NewSimulatedProgramClient(rpcLatency time.Duration) *SimulatedProgramClient {
	return &SimulatedProgramClient{
		accounts:   make(map[string]*chainAccount),
		connected:  make(map[string]bool),
		rpcLatency: rpcLatency,
	}
}

// SetConnected flips the simulated wallet session state.
func (c *SimulatedProgramClient) SetConnected(wallet string, connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected[wallet] = connected
}

func (c *SimulatedProgramClient) Connected(wallet string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected[wallet]
}

// Signatures returns a copy of all issued transaction signatures.
func (c *SimulatedProgramClient) Signatures() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.signatures))
	copy(out, c.signatures)
	return out
}

// Account returns the simulated on-chain bitmasks for a wallet.
func (c *SimulatedProgramClient) Account(wallet string) (challenges uint16, modules uint8, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	acct, ok := c.accounts[wallet]
	if !ok {
		return 0, 0, false
	}
	return acct.challengesCompleted, acct.modulesCompleted, true
}

// wait models RPC latency while honoring cancellation.
func (c *SimulatedProgramClient) wait(ctx context.Context) error {
	if c.rpcLatency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(c.rpcLatency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *SimulatedProgramClient) requireConnected(wallet string) error {
	if !c.connected[wallet] {
		return ErrWalletNotConnected
	}
	return nil
}

func (c *SimulatedProgramClient) InitializeUser(ctx context.Context, wallet string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireConnected(wallet); err != nil {
		return "", err
	}
	if _, exists := c.accounts[wallet]; exists {
		return "", fmt.Errorf("%w for %s", ErrAlreadyInitialized, wallet)
	}
	now := time.Now().Unix()
	c.accounts[wallet] = &chainAccount{
		authority: wallet,
		createdAt: now,
		updatedAt: now,
	}
	return c.issueSignature(), nil
}

func (c *SimulatedProgramClient) CompleteChallenge(ctx context.Context, wallet string, challengeID int) (string, error) {
	if challengeID < 0 || challengeID >= models.TotalChallenges {
		return "", ErrChainInvalidChallengeID
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireConnected(wallet); err != nil {
		return "", err
	}
	acct, err := c.account(wallet)
	if err != nil {
		return "", err
	}
	acct.challengesCompleted |= 1 << uint(challengeID)
	acct.updatedAt = time.Now().Unix()
	return c.issueSignature(), nil
}

func (c *SimulatedProgramClient) CompleteModule(ctx context.Context, wallet string, moduleID int) (string, error) {
	if moduleID < 0 || moduleID >= models.TotalModules {
		return "", ErrChainInvalidModuleID
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireConnected(wallet); err != nil {
		return "", err
	}
	acct, err := c.account(wallet)
	if err != nil {
		return "", err
	}
	mask := models.ModuleChallengeMask(moduleID)
	if acct.challengesCompleted&mask != mask {
		return "", ErrModuleNotComplete
	}
	acct.modulesCompleted |= 1 << uint(moduleID)
	acct.updatedAt = time.Now().Unix()
	return c.issueSignature(), nil
}

func (c *SimulatedProgramClient) MintAchievementNFT(ctx context.Context, wallet string, title, symbol, uri string, moduleID int) (string, error) {
	if moduleID < 0 || moduleID >= models.TotalModules {
		return "", ErrChainInvalidModuleID
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireConnected(wallet); err != nil {
		return "", err
	}
	if _, err := c.account(wallet); err != nil {
		return "", err
	}
	return c.issueSignature(), nil
}

func (c *SimulatedProgramClient) account(wallet string) (*chainAccount, error) {
	acct, ok := c.accounts[wallet]
	if !ok {
		return nil, ErrUserNotInitialized
	}
	if acct.authority != wallet {
		return nil, ErrChainUnauthorized
	}
	return acct, nil
}

// issueSignature fabricates a base58-looking transaction signature.
// Callers must hold the mutex.
func (c *SimulatedProgramClient) issueSignature() string {
	sig := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	c.signatures = append(c.signatures, sig)
	return sig
}

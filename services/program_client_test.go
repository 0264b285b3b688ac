package services

import (
	"context"
	"errors"
	"testing"
)

func newChain() *SimulatedProgramClient {
	return NewSimulatedProgramClient(0)
}

func TestChainRequiresConnection(t *testing.T) {
	c := newChain()
	ctx := context.Background()

	if _, err := c.InitializeUser(ctx, testWallet); !errors.Is(err, ErrWalletNotConnected) {
		t.Errorf("InitializeUser without session = %v, want ErrWalletNotConnected", err)
	}
	if _, err := c.MintAchievementNFT(ctx, testWallet, "t", "S", "uri", 0); !errors.Is(err, ErrWalletNotConnected) {
		t.Errorf("MintAchievementNFT without session = %v, want ErrWalletNotConnected", err)
	}
}

func TestChainRequiresInitialization(t *testing.T) {
	c := newChain()
	c.SetConnected(testWallet, true)
	ctx := context.Background()

	if _, err := c.CompleteChallenge(ctx, testWallet, 0); !errors.Is(err, ErrUserNotInitialized) {
		t.Errorf("CompleteChallenge before init = %v, want ErrUserNotInitialized", err)
	}
}

func TestChainInitializeOnce(t *testing.T) {
	c := newChain()
	c.SetConnected(testWallet, true)
	ctx := context.Background()

	sig, err := c.InitializeUser(ctx, testWallet)
	if err != nil {
		t.Fatalf("InitializeUser: %v", err)
	}
	if sig == "" {
		t.Error("initialization must return a transaction signature")
	}

	if _, err := c.InitializeUser(ctx, testWallet); err == nil {
		t.Error("second initialization must fail")
	}
}

func TestChainChallengeBounds(t *testing.T) {
	c := newChain()
	c.SetConnected(testWallet, true)
	ctx := context.Background()
	if _, err := c.InitializeUser(ctx, testWallet); err != nil {
		t.Fatal(err)
	}

	if _, err := c.CompleteChallenge(ctx, testWallet, 16); !errors.Is(err, ErrChainInvalidChallengeID) {
		t.Errorf("CompleteChallenge(16) = %v, want ErrChainInvalidChallengeID", err)
	}
	if _, err := c.CompleteModule(ctx, testWallet, 4); !errors.Is(err, ErrChainInvalidModuleID) {
		t.Errorf("CompleteModule(4) = %v, want ErrChainInvalidModuleID", err)
	}
}

func TestChainModulePrerequisite(t *testing.T) {
	c := newChain()
	c.SetConnected(testWallet, true)
	ctx := context.Background()
	if _, err := c.InitializeUser(ctx, testWallet); err != nil {
		t.Fatal(err)
	}

	// Three of four challenges is not enough.
	for _, id := range []int{0, 1, 2} {
		if _, err := c.CompleteChallenge(ctx, testWallet, id); err != nil {
			t.Fatalf("CompleteChallenge(%d): %v", id, err)
		}
	}
	if _, err := c.CompleteModule(ctx, testWallet, 0); !errors.Is(err, ErrModuleNotComplete) {
		t.Errorf("CompleteModule with missing challenge = %v, want ErrModuleNotComplete", err)
	}

	if _, err := c.CompleteChallenge(ctx, testWallet, 3); err != nil {
		t.Fatal(err)
	}
	sig, err := c.CompleteModule(ctx, testWallet, 0)
	if err != nil {
		t.Fatalf("CompleteModule after all challenges: %v", err)
	}
	if sig == "" {
		t.Error("module completion must return a signature")
	}

	challenges, modules, ok := c.Account(testWallet)
	if !ok {
		t.Fatal("account should exist")
	}
	if challenges != 0b1111 {
		t.Errorf("on-chain challenges = %016b, want bits 0..3", challenges)
	}
	if modules != 0b0001 {
		t.Errorf("on-chain modules = %08b, want bit 0", modules)
	}
}

func TestChainSignaturesAreUnique(t *testing.T) {
	c := newChain()
	c.SetConnected(testWallet, true)
	ctx := context.Background()
	if _, err := c.InitializeUser(ctx, testWallet); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := c.CompleteChallenge(ctx, testWallet, i); err != nil {
			t.Fatal(err)
		}
	}

	sigs := c.Signatures()
	if len(sigs) != 5 {
		t.Fatalf("got %d signatures, want 5", len(sigs))
	}
	seen := make(map[string]bool, len(sigs))
	for _, sig := range sigs {
		if seen[sig] {
			t.Errorf("duplicate signature %s", sig)
		}
		seen[sig] = true
	}
}

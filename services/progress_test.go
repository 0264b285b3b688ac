package services

import (
	"errors"
	"testing"

	"shadow-ranch-system/models"
)

const testWallet = "7Np41yDZkEbqCJPVVrVrtwGrBQpWCkviRRSKrBqWkSdS"

func TestEnsureProgressRecordIdempotent(t *testing.T) {
	s := NewProgressService(newTestDB(t))

	first, err := s.EnsureProgressRecord(testWallet)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if first.ChallengesCompleted != 0 || first.ModulesCompleted != 0 {
		t.Errorf("fresh record must have zeroed bitmasks, got %016b / %08b",
			first.ChallengesCompleted, first.ModulesCompleted)
	}

	second, err := s.EnsureProgressRecord(testWallet)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if second.ID != first.ID {
		t.Error("ensure must return the existing record, not create another")
	}
}

func TestMarkChallengeCompleteIdempotent(t *testing.T) {
	s := NewProgressService(newTestDB(t))
	if _, err := s.EnsureProgressRecord(testWallet); err != nil {
		t.Fatal(err)
	}

	if err := s.MarkChallengeComplete(testWallet, 5); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := s.MarkChallengeComplete(testWallet, 5); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	prog, err := s.GetProgress(testWallet)
	if err != nil {
		t.Fatal(err)
	}
	if prog.ChallengesCompleted != 1<<5 {
		t.Errorf("ChallengesCompleted = %016b, want only bit 5", prog.ChallengesCompleted)
	}
}

func TestMarkChallengeCompleteOutOfRange(t *testing.T) {
	s := NewProgressService(newTestDB(t))
	if _, err := s.EnsureProgressRecord(testWallet); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int{-1, models.TotalChallenges, 100} {
		if err := s.MarkChallengeComplete(testWallet, id); !errors.Is(err, ErrInvalidChallengeID) {
			t.Errorf("MarkChallengeComplete(%d) = %v, want ErrInvalidChallengeID", id, err)
		}
	}

	prog, _ := s.GetProgress(testWallet)
	if prog.ChallengesCompleted != 0 {
		t.Errorf("rejected ids must not mutate the record, got %016b", prog.ChallengesCompleted)
	}
}

func TestMarkModuleCompleteOutOfRange(t *testing.T) {
	s := NewProgressService(newTestDB(t))
	if _, err := s.EnsureProgressRecord(testWallet); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int{-1, models.TotalModules} {
		if err := s.MarkModuleComplete(testWallet, id); !errors.Is(err, ErrInvalidModuleID) {
			t.Errorf("MarkModuleComplete(%d) = %v, want ErrInvalidModuleID", id, err)
		}
	}
}

func TestModuleChallengesDone(t *testing.T) {
	s := NewProgressService(newTestDB(t))
	prog := &models.UserProgress{ChallengesCompleted: 0b0000_0000_0000_1111}

	if !s.ModuleChallengesDone(prog, 0) {
		t.Error("module 0 should be done with bits 0..3 set")
	}
	if s.ModuleChallengesDone(prog, 1) {
		t.Error("module 1 should not be done")
	}

	prog.ChallengesCompleted = 0b0000_0000_0000_0111
	if s.ModuleChallengesDone(prog, 0) {
		t.Error("three of four challenges is not a complete module")
	}

	if s.ModuleChallengesDone(prog, 7) {
		t.Error("out-of-range module must report not done")
	}
}

func TestComputeCompletionStats(t *testing.T) {
	fresh := ComputeCompletionStats(&models.UserProgress{})
	if fresh.Percentage != 0 {
		t.Errorf("fresh percentage = %v, want 0", fresh.Percentage)
	}
	if fresh.CompletedChallengeIDs == nil || fresh.CompletedModuleIDs == nil {
		t.Error("id lists must be empty, not nil")
	}

	// Three challenges and one module out of a fixed 20 units.
	prog := &models.UserProgress{
		ChallengesCompleted: 0b0000_0000_0000_0111,
		ModulesCompleted:    0b0000_0001,
	}
	stats := ComputeCompletionStats(prog)
	if stats.Percentage != 20 {
		t.Errorf("percentage = %v, want 20", stats.Percentage)
	}
	if len(stats.CompletedChallengeIDs) != 3 || stats.CompletedChallengeIDs[2] != 2 {
		t.Errorf("CompletedChallengeIDs = %v, want [0 1 2]", stats.CompletedChallengeIDs)
	}
	if len(stats.CompletedModuleIDs) != 1 || stats.CompletedModuleIDs[0] != 0 {
		t.Errorf("CompletedModuleIDs = %v, want [0]", stats.CompletedModuleIDs)
	}

	everything := ComputeCompletionStats(&models.UserProgress{
		ChallengesCompleted: 0xFFFF,
		ModulesCompleted:    0x0F,
	})
	if everything.Percentage != 100 {
		t.Errorf("full completion = %v, want 100", everything.Percentage)
	}
}

func TestResetProgress(t *testing.T) {
	s := NewProgressService(newTestDB(t))
	if _, err := s.EnsureProgressRecord(testWallet); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkChallengeComplete(testWallet, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkModuleComplete(testWallet, 0); err != nil {
		t.Fatal(err)
	}

	if err := s.ResetProgress(testWallet); err != nil {
		t.Fatalf("reset: %v", err)
	}
	prog, err := s.GetProgress(testWallet)
	if err != nil {
		t.Fatal(err)
	}
	if prog.ChallengesCompleted != 0 || prog.ModulesCompleted != 0 {
		t.Errorf("reset left bits set: %016b / %08b", prog.ChallengesCompleted, prog.ModulesCompleted)
	}
}

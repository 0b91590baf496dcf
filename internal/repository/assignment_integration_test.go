//go:build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/toolkeep/toolkeep/internal/model"
	"github.com/toolkeep/toolkeep/internal/testutil"
)

func TestIntegrationAssignmentRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	borrower := seedUser(t, ctx, repo, "borrower")
	tool := testutil.NewTestTool(t, testutil.UniqueID("tool"), owner.ID)
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}

	created := seedAssignment(t, ctx, repo, tool.ID, borrower.ID)

	retrieved, err := repo.GetAssignment(ctx, tool.ID, borrower.ID)
	if err != nil {
		t.Fatalf("GetAssignment failed: %v", err)
	}
	if retrieved.ID != created.ID {
		t.Errorf("ID mismatch: got %q, want %q", retrieved.ID, created.ID)
	}
	if retrieved.LastUsedAt != nil {
		t.Error("LastUsedAt should start unset")
	}
}

func TestIntegrationAssignmentRepository_DuplicatePair(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	borrower := seedUser(t, ctx, repo, "borrower")
	tool := testutil.NewTestTool(t, testutil.UniqueID("tool"), owner.ID)
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}
	seedAssignment(t, ctx, repo, tool.ID, borrower.ID)

	dup := &model.Assignment{
		ID:         testutil.UniqueID("assign2"),
		ToolID:     tool.ID,
		UserID:     borrower.ID,
		AssignedAt: time.Now().UTC(),
	}
	err := repo.CreateAssignment(ctx, dup)
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Errorf("Expected ErrAlreadyAssigned, got: %v", err)
	}
}

func TestIntegrationAssignmentRepository_SetLastUsed(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	borrower := seedUser(t, ctx, repo, "borrower")
	tool := testutil.NewTestTool(t, testutil.UniqueID("tool"), owner.ID)
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}
	seedAssignment(t, ctx, repo, tool.ID, borrower.ID)

	today := model.DateOf(time.Now().UTC())
	if err := repo.SetLastUsed(ctx, tool.ID, borrower.ID, today); err != nil {
		t.Fatalf("SetLastUsed failed: %v", err)
	}

	retrieved, err := repo.GetAssignment(ctx, tool.ID, borrower.ID)
	if err != nil {
		t.Fatalf("GetAssignment failed: %v", err)
	}
	if retrieved.LastUsedAt == nil {
		t.Fatal("LastUsedAt should be set")
	}
	if !model.DateOf(*retrieved.LastUsedAt).Equal(today) {
		t.Errorf("LastUsedAt mismatch: got %v, want %v", retrieved.LastUsedAt, today)
	}

	// The tool's own marker moves too.
	refreshed, err := repo.GetToolByID(ctx, tool.ID)
	if err != nil {
		t.Fatalf("GetToolByID failed: %v", err)
	}
	if refreshed.LastUsed == nil || !model.DateOf(*refreshed.LastUsed).Equal(today) {
		t.Errorf("tool LastUsed not refreshed: %v", refreshed.LastUsed)
	}

	// Recording again on the same day is a no-op write, not an error.
	if err := repo.SetLastUsed(ctx, tool.ID, borrower.ID, today); err != nil {
		t.Fatalf("repeat SetLastUsed failed: %v", err)
	}
}

func TestIntegrationAssignmentRepository_SetLastUsed_NotAssigned(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	stranger := seedUser(t, ctx, repo, "stranger")
	tool := testutil.NewTestTool(t, testutil.UniqueID("tool"), owner.ID)
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}

	err := repo.SetLastUsed(ctx, tool.ID, stranger.ID, model.DateOf(time.Now().UTC()))
	if !errors.Is(err, ErrNotAssigned) {
		t.Errorf("Expected ErrNotAssigned, got: %v", err)
	}
}

func TestIntegrationAssignmentRepository_ListByTool_JoinsEmail(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	b1 := seedUser(t, ctx, repo, "b1")
	b2 := seedUser(t, ctx, repo, "b2")
	tool := testutil.NewTestTool(t, testutil.UniqueID("tool"), owner.ID)
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool failed: %v", err)
	}

	a1 := seedAssignment(t, ctx, repo, tool.ID, b1.ID)
	a2 := &model.Assignment{
		ID:         testutil.UniqueID("assign"),
		ToolID:     tool.ID,
		UserID:     b2.ID,
		AssignedAt: a1.AssignedAt.Add(time.Second),
	}
	if err := repo.CreateAssignment(ctx, a2); err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}

	assignments, err := repo.ListAssignmentsByTool(ctx, tool.ID)
	if err != nil {
		t.Fatalf("ListAssignmentsByTool failed: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	if assignments[0].UserID != b1.ID || assignments[1].UserID != b2.ID {
		t.Errorf("unexpected assignment order: %q, %q", assignments[0].UserID, assignments[1].UserID)
	}
	if assignments[0].UserEmail != b1.Email {
		t.Errorf("UserEmail not joined: got %q, want %q", assignments[0].UserEmail, b1.Email)
	}
}

func TestIntegrationAssignmentRepository_ListByOwner_SpansTools(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := seedUser(t, ctx, repo, "owner")
	other := seedUser(t, ctx, repo, "other")
	borrower := seedUser(t, ctx, repo, "borrower")

	t1 := testutil.NewTestTool(t, testutil.UniqueID("t1"), owner.ID)
	t2 := testutil.NewTestTool(t, testutil.UniqueID("t2"), owner.ID)
	foreign := testutil.NewTestTool(t, testutil.UniqueID("t3"), other.ID)
	for _, tool := range []*model.Tool{t1, t2, foreign} {
		if err := repo.CreateTool(ctx, tool); err != nil {
			t.Fatalf("CreateTool failed: %v", err)
		}
	}

	seedAssignment(t, ctx, repo, t1.ID, borrower.ID)
	seedAssignment(t, ctx, repo, t2.ID, borrower.ID)
	seedAssignment(t, ctx, repo, foreign.ID, borrower.ID)

	assignments, err := repo.ListAssignmentsByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListAssignmentsByOwner failed: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments across owner's tools, got %d", len(assignments))
	}
	for _, a := range assignments {
		if a.ToolID == foreign.ID {
			t.Error("foreign tool's assignment leaked into owner listing")
		}
	}
}

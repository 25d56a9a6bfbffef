package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Write release notes", "- draft\n- review")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated ID")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Write release notes" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Details != "- draft\n- review" {
		t.Errorf("details = %q", got.Details)
	}
	if got.Done {
		t.Error("new task should not be done")
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Create(context.Background(), "", ""); err == nil {
		t.Error("expected an error for empty title")
	}
}

func TestUpdateDetails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Task", "old")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.UpdateDetails(ctx, created.ID, "new **details**"); err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Details != "new **details**" {
		t.Errorf("details = %q", got.Details)
	}
}

func TestUpdateDetailsUnknownID(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpdateDetails(context.Background(), "missing", "x"); err == nil {
		t.Error("expected an error for unknown task")
	}
}

func TestSetDoneAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, "first", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "second", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetDone(ctx, first.ID, true); err != nil {
		t.Fatalf("SetDone: %v", err)
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	var doneCount int
	for _, task := range tasks {
		if task.Done {
			doneCount++
		}
	}
	if doneCount != 1 {
		t.Errorf("expected 1 done task, got %d", doneCount)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "doomed", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); err == nil {
		t.Error("expected an error after delete")
	}
}

package conversation

import (
	"strings"
	"testing"
	"time"
)

func TestStoreInsertOptimistic(t *testing.T) {
	store := newConversationStore()

	tempID, err := store.InsertOptimistic("how to grow rice", LanguageEnglish)
	if err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	if !strings.HasPrefix(tempID, "temp_") {
		t.Fatalf("expected temp id prefix, got %q", tempID)
	}

	history := store.Snapshot()
	if len(history) != 1 {
		t.Fatalf("expected one message, got %d", len(history))
	}
	if history[0].ID != tempID || history[0].Status != MessageStatusPending {
		t.Fatalf("expected pending message with temp id, got %+v", history[0])
	}
	if !store.HasPending() {
		t.Fatalf("expected a pending message")
	}
}

func TestStoreRejectsSecondPendingInsert(t *testing.T) {
	store := newConversationStore()

	if _, err := store.InsertOptimistic("first", LanguageEnglish); err != nil {
		t.Fatalf("expected first insert to succeed, got %v", err)
	}
	if _, err := store.InsertOptimistic("second", LanguageEnglish); err != ErrPendingMessageExists {
		t.Fatalf("expected ErrPendingMessageExists, got %v", err)
	}
}

func TestStoreConfirmReplacesPendingEntry(t *testing.T) {
	store := newConversationStore()
	tempID, _ := store.InsertOptimistic("question", LanguageMalayalam)

	confirmedAt := time.Now()
	if !store.Confirm(tempID, "msg-42", "answer", confirmedAt, LanguageMalayalam) {
		t.Fatalf("expected confirm to succeed")
	}

	history := store.Snapshot()
	if len(history) != 1 {
		t.Fatalf("expected one message, got %d", len(history))
	}
	msg := history[0]
	if msg.ID != "msg-42" || msg.Response != "answer" || msg.Status != MessageStatusConfirmed {
		t.Fatalf("expected confirmed message with server id, got %+v", msg)
	}
	if store.HasPending() {
		t.Fatalf("expected no pending message after confirm")
	}

	if store.Confirm(tempID, "msg-42", "answer", confirmedAt, LanguageMalayalam) {
		t.Fatalf("expected repeated confirm to be a no-op")
	}
}

func TestStoreConfirmUnknownTempIDIsNoop(t *testing.T) {
	store := newConversationStore()
	if store.Confirm("temp_missing", "msg-1", "answer", time.Now(), LanguageEnglish) {
		t.Fatalf("expected confirm of unknown id to be a no-op")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty history, got %d messages", store.Len())
	}
}

func TestStoreConfirmDuplicateServerIDDropsPending(t *testing.T) {
	store := newConversationStore()

	tempID, _ := store.InsertOptimistic("first", LanguageEnglish)
	store.Confirm(tempID, "msg-1", "answer", time.Now(), LanguageEnglish)

	tempID, _ = store.InsertOptimistic("second", LanguageEnglish)
	if !store.Confirm(tempID, "msg-1", "other answer", time.Now(), LanguageEnglish) {
		t.Fatalf("expected duplicate confirm to reconcile")
	}

	history := store.Snapshot()
	if len(history) != 1 || history[0].ID != "msg-1" {
		t.Fatalf("expected a single msg-1 entry, got %+v", history)
	}
	if store.HasPending() {
		t.Fatalf("expected pending flag to clear")
	}
}

func TestStoreRollbackRemovesPendingAndReturnsText(t *testing.T) {
	store := newConversationStore()
	tempID, _ := store.InsertOptimistic("unsent question", LanguageEnglish)

	text, ok := store.Rollback(tempID)
	if !ok {
		t.Fatalf("expected rollback to succeed")
	}
	if text != "unsent question" {
		t.Fatalf("expected rollback to return the original text, got %q", text)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty history after rollback, got %d messages", store.Len())
	}
	if store.HasPending() {
		t.Fatalf("expected no pending message after rollback")
	}

	if _, ok := store.Rollback(tempID); ok {
		t.Fatalf("expected repeated rollback to be a no-op")
	}
}

func TestStoreRollbackKeepsConfirmedMessages(t *testing.T) {
	store := newConversationStore()

	tempID, _ := store.InsertOptimistic("first", LanguageEnglish)
	store.Confirm(tempID, "msg-1", "answer", time.Now(), LanguageEnglish)

	tempID, _ = store.InsertOptimistic("second", LanguageEnglish)
	if _, ok := store.Rollback(tempID); !ok {
		t.Fatalf("expected rollback to succeed")
	}

	history := store.Snapshot()
	if len(history) != 1 || history[0].ID != "msg-1" {
		t.Fatalf("expected confirmed message to survive rollback, got %+v", history)
	}
}

func TestStoreHydrateReplacesHistory(t *testing.T) {
	store := newConversationStore()
	tempID, _ := store.InsertOptimistic("old", LanguageEnglish)
	store.Confirm(tempID, "msg-old", "answer", time.Now(), LanguageEnglish)

	if !store.Hydrate([]Message{
		{ID: "msg-1", Text: "q1", Response: "a1", Language: LanguageEnglish},
		{ID: "msg-2", Text: "q2", Response: "a2", Language: LanguageMalayalam},
	}) {
		t.Fatalf("expected hydrate to succeed")
	}

	history := store.Snapshot()
	if len(history) != 2 || history[0].ID != "msg-1" || history[1].ID != "msg-2" {
		t.Fatalf("expected hydrated history, got %+v", history)
	}
	for _, msg := range history {
		if msg.Status != MessageStatusConfirmed {
			t.Fatalf("expected hydrated entries to be confirmed, got %+v", msg)
		}
	}
}

func TestStoreHydrateSkippedWhilePending(t *testing.T) {
	store := newConversationStore()
	store.InsertOptimistic("in flight", LanguageEnglish)

	if store.Hydrate([]Message{{ID: "msg-1", Text: "q1"}}) {
		t.Fatalf("expected hydrate to be skipped while a message is pending")
	}
	if store.Len() != 1 {
		t.Fatalf("expected pending message to survive, got %d messages", store.Len())
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := newConversationStore()
	tempID, _ := store.InsertOptimistic("question", LanguageEnglish)

	snapshot := store.Snapshot()
	snapshot[0].Text = "mutated"

	if store.Snapshot()[0].Text != "question" {
		t.Fatalf("expected snapshot mutation not to affect the store")
	}

	store.Confirm(tempID, "msg-1", "answer", time.Now(), LanguageEnglish)
	if snapshot[0].Status != MessageStatusPending {
		t.Fatalf("expected earlier snapshot to be unaffected by confirm")
	}
}

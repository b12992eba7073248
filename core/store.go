package conversation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	ErrPendingMessageExists = errors.New("optimistic insert rejected: a pending message already exists")
)

type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusConfirmed MessageStatus = "confirmed"
)

// Message is one exchange in the conversation history. While pending it
// carries a temp_-prefixed local id and no response; confirmation swaps in
// the server-issued id and the assistant's reply.
type Message struct {
	ID        string
	Text      string
	Response  string
	Timestamp time.Time
	Language  Language
	Status    MessageStatus
}

// conversationStore owns the ordered history. Mutation happens only through
// InsertOptimistic, Confirm, Rollback and Hydrate, all called from the
// controller; readers get deep-copied snapshots.
//
// Reconciliation is backed by an id index so confirm/rollback stay O(1)
// regardless of history length.
type conversationStore struct {
	mu sync.RWMutex

	messages []Message
	index    map[string]int

	// pendingID holds the temp id of the single in-flight optimistic entry,
	// empty when none exists.
	pendingID string
}

func newConversationStore() *conversationStore {
	return &conversationStore{index: map[string]int{}}
}

// InsertOptimistic appends a pending entry and returns its temp id for later
// reconciliation. At most one pending entry may exist at a time.
func (s *conversationStore) InsertOptimistic(text string, language Language) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingID != "" {
		return "", ErrPendingMessageExists
	}

	tempID := fmt.Sprintf("temp_%s", uuid.NewString())
	s.messages = append(s.messages, Message{
		ID:        tempID,
		Text:      text,
		Timestamp: time.Now(),
		Language:  language,
		Status:    MessageStatusPending,
	})
	s.index[tempID] = len(s.messages) - 1
	s.pendingID = tempID
	return tempID, nil
}

// Confirm replaces the pending entry matching tempID with the confirmed
// server-issued message. Unknown or already-reconciled ids are a no-op.
func (s *conversationStore) Confirm(tempID, serverID, response string, timestamp time.Time, language Language) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[tempID]
	if !ok || s.messages[i].Status != MessageStatusPending {
		return false
	}
	if _, taken := s.index[serverID]; taken {
		// The server id is already in history (duplicate delivery); drop the
		// pending entry instead of violating id uniqueness.
		s.removeAtLocked(i, tempID)
		return true
	}

	delete(s.index, tempID)
	s.messages[i].ID = serverID
	s.messages[i].Response = response
	s.messages[i].Timestamp = timestamp
	s.messages[i].Language = language
	s.messages[i].Status = MessageStatusConfirmed
	s.index[serverID] = i
	s.pendingID = ""
	return true
}

// Rollback removes the pending entry matching tempID and returns its text so
// the caller can restore it into the draft slot. Unknown ids are a no-op.
func (s *conversationStore) Rollback(tempID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[tempID]
	if !ok || s.messages[i].Status != MessageStatusPending {
		return "", false
	}

	text := s.messages[i].Text
	s.removeAtLocked(i, tempID)
	return text, true
}

// Hydrate replaces history wholesale with server-provided entries. It is
// skipped while an optimistic entry is in flight so a history load racing a
// submit cannot drop the pending message.
func (s *conversationStore) Hydrate(entries []Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingID != "" {
		return false
	}

	s.messages = s.messages[:0]
	s.index = map[string]int{}
	for _, entry := range entries {
		if _, taken := s.index[entry.ID]; taken {
			continue
		}
		entry.Status = MessageStatusConfirmed
		s.messages = append(s.messages, entry)
		s.index[entry.ID] = len(s.messages) - 1
	}
	return true
}

// Snapshot returns a deep copy of the history for rendering.
func (s *conversationStore) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0, len(s.messages))
	_ = copier.Copy(&out, &s.messages)
	return out
}

func (s *conversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *conversationStore) HasPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingID != ""
}

func (s *conversationStore) removeAtLocked(i int, id string) {
	delete(s.index, id)
	s.messages = append(s.messages[:i], s.messages[i+1:]...)
	for j := i; j < len(s.messages); j++ {
		s.index[s.messages[j].ID] = j
	}
	if s.pendingID == id {
		s.pendingID = ""
	}
}

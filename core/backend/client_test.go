package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientChat(t *testing.T) {
	respondedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("expected POST /api/chat, got %s %s", r.Method, r.URL.Path)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("expected decodable request body, got %v", err)
		}
		if req.Message != "how to grow rice" || req.SessionID != "session_1_abc" || req.Language != "english" {
			t.Errorf("unexpected chat request %+v", req)
		}

		json.NewEncoder(w).Encode(ChatResponse{ID: "msg-1", Response: "use good seed", Timestamp: respondedAt})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Chat(context.Background(), ChatRequest{
		Message:   "how to grow rice",
		SessionID: "session_1_abc",
		Language:  "english",
	})
	if err != nil {
		t.Fatalf("expected chat to succeed, got %v", err)
	}
	if resp.ID != "msg-1" || resp.Response != "use good seed" || !resp.Timestamp.Equal(respondedAt) {
		t.Fatalf("unexpected chat response %+v", resp)
	}
}

func TestClientChatRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Chat(context.Background(), ChatRequest{Message: "hello"}); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestClientFAQ(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/faq/malayalam" {
			t.Errorf("expected /api/faq/malayalam, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]FAQItem{
			{ID: "faq-1", Question: "എങ്ങനെ നെല്ല് കൃഷി ചെയ്യാം"},
			{ID: "faq-2", Question: "വളം എപ്പോൾ ഇടണം"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	items, err := client.FAQ(context.Background(), "malayalam")
	if err != nil {
		t.Fatalf("expected faq load to succeed, got %v", err)
	}
	if len(items) != 2 || items[0].ID != "faq-1" || items[1].Question != "വളം എപ്പോൾ ഇടണം" {
		t.Fatalf("unexpected faq items %+v", items)
	}
}

func TestClientHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat-history/session_1_abc" {
			t.Errorf("expected history path for session, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]HistoryEntry{
			{ID: "msg-1", Message: "q1", Response: "a1", Language: "english"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.History(context.Background(), "session_1_abc")
	if err != nil {
		t.Fatalf("expected history load to succeed, got %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "msg-1" || entries[0].Language != "english" {
		t.Fatalf("unexpected history entries %+v", entries)
	}
}

func TestClientHistoryEscapesSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/chat-history/a%2Fb" {
			t.Errorf("expected escaped session id, got %s", r.URL.EscapedPath())
		}
		json.NewEncoder(w).Encode([]HistoryEntry{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.History(context.Background(), "a/b"); err != nil {
		t.Fatalf("expected history load to succeed, got %v", err)
	}
}

// Package conversation implements the client-side core of the bilingual
// farmer assistant: conversation history with optimistic submission, the
// English/Malayalam language policy, and the voice input/output glue.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sadhana-0705/farmerbot/core/backend"
	"github.com/sadhana-0705/farmerbot/core/events"
	"github.com/sadhana-0705/farmerbot/core/speechtotext"
	"github.com/sadhana-0705/farmerbot/core/texttospeech"
	"github.com/sadhana-0705/farmerbot/internal/observability"
)

const name = "farmerbot/conversation"

var (
	ErrEmptyMessage         = errors.New("cannot submit an empty message")
	ErrBackendNotConfigured = errors.New("no chat backend is configured")
	ErrAlreadyStarted       = errors.New("controller is already started")
)

// FAQItem is a suggested question shown to the user.
type FAQItem = events.FAQItem

// ChatBackend is the controller's view of the assistant backend.
type ChatBackend interface {
	Chat(ctx context.Context, req backend.ChatRequest) (backend.ChatResponse, error)
	FAQ(ctx context.Context, language string) ([]backend.FAQItem, error)
	History(ctx context.Context, sessionID string) ([]backend.HistoryEntry, error)
}

// Controller coordinates the conversation session: it owns the history
// store, the draft slot, the explicit language selection and the voice
// adapters, and reports every state change as an event.
type Controller struct {
	sessionID string

	store       *conversationStore
	backend     ChatBackend
	recognizer  *speechtotext.Recognizer
	synthesizer *texttospeech.Synthesizer
	metrics     *observability.Metrics

	logger *slog.Logger
	tracer trace.Tracer

	mu        sync.Mutex
	language  Language
	faq       []FAQItem
	draft     string
	inFlight  bool
	listening bool
	started   bool
	emitEvent eventEmitter
}

func New(opts ...ControllerOption) *Controller {
	c := &Controller{
		sessionID: newSessionID(),
		store:     newConversationStore(),
		language:  LanguageEnglish,
		logger:    otelslog.NewLogger(name),
		tracer:    otel.Tracer(name),
		emitEvent: noopEventEmitter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newSessionID mirrors the backend's expected session id shape:
// session_<unix millis>_<random suffix>.
func newSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// Start wires the presentation hooks and kicks off the initial FAQ and
// history loads. It can be called once per controller.
func (c *Controller) Start(ctx context.Context, opts ...StartOption) error {
	options := StartOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.emitEvent = newCallbackEventEmitter(options)
	c.mu.Unlock()

	if c.backend != nil {
		go c.loadFAQ(ctx)
		go c.loadHistory(ctx)
	}
	return nil
}

// Submit sends text as a user message. The message is inserted into history
// optimistically and reconciled when the backend responds; the draft slot is
// cleared immediately. At most one submission may be in flight.
func (c *Controller) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if c.backend == nil {
		return ErrBackendNotConfigured
	}

	language := EffectiveLanguage(c.Language(), text)

	tempID, err := c.store.InsertOptimistic(text, language)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.inFlight = true
	c.draft = ""
	c.mu.Unlock()

	c.emit(events.NewDraftUpdated(""))
	c.emit(events.NewMessagePending(tempID, text, string(language)))

	go c.send(ctx, tempID, text, language)
	return nil
}

// SubmitDraft submits whatever is currently in the draft slot.
func (c *Controller) SubmitDraft(ctx context.Context) error {
	return c.Submit(ctx, c.Draft())
}

// SubmitSuggestion submits a FAQ question as if the user had typed it.
func (c *Controller) SubmitSuggestion(ctx context.Context, item FAQItem) error {
	return c.Submit(ctx, item.Question)
}

func (c *Controller) send(ctx context.Context, tempID, text string, language Language) {
	ctx, span := c.tracer.Start(ctx, "chat submit")
	defer span.End()

	startedAt := time.Now()
	resp, err := c.backend.Chat(ctx, backend.ChatRequest{
		Message:   text,
		SessionID: c.sessionID,
		Language:  string(language),
	})
	c.metrics.ObserveChatLatency(time.Since(startedAt))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat request failed")
		c.logger.ErrorContext(ctx, "chat request failed", "error", err, "session_id", c.sessionID)
		c.metrics.CountSubmit(string(language), "failed")

		restored, _ := c.store.Rollback(tempID)

		c.mu.Lock()
		c.inFlight = false
		if c.draft == "" {
			c.draft = restored
		} else {
			// The user already started composing something new; do not
			// clobber it.
			restored = c.draft
		}
		notifyLanguage := c.language
		c.mu.Unlock()

		c.emit(events.NewMessageFailed(tempID, text))
		c.emit(events.NewDraftUpdated(restored))
		c.emit(events.NewNotification(events.NotificationError, sendFailedMessage(notifyLanguage)))
		return
	}

	c.metrics.CountSubmit(string(language), "confirmed")
	c.store.Confirm(tempID, resp.ID, resp.Response, resp.Timestamp, language)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	c.emit(events.NewMessageConfirmed(tempID, resp.ID, resp.Response, string(language)))

	c.speak(ctx, resp.Response, language)
}

// speak plays text in the given language's voice. Synthesis failures are
// non-fatal; the response stays visible as text.
func (c *Controller) speak(ctx context.Context, text string, language Language) {
	if !c.synthesizer.Supported() {
		return
	}

	utteranceID := uuid.NewString()
	languageTag := language.Tag()

	voiceName := ""
	if voice := c.synthesizer.ResolveVoice(languageTag); voice != nil {
		voiceName = voice.Name
	}

	_, err := c.synthesizer.Speak(ctx, text, languageTag,
		texttospeech.WithEndedCallback(func() {
			c.emit(events.NewSynthesisEnded(utteranceID))
		}),
		texttospeech.WithErrorCallback(func(err error) {
			c.logger.ErrorContext(ctx, "speech synthesis failed", "error", err)
			c.metrics.CountSynthesisError()
			c.emit(events.NewSynthesisFailed(utteranceID, err))
			c.emit(events.NewNotification(events.NotificationError, audioFailedMessage(c.Language())))
		}),
	)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to start speech synthesis", "error", err)
		c.metrics.CountSynthesisError()
		c.emit(events.NewNotification(events.NotificationError, audioFailedMessage(c.Language())))
		return
	}

	c.metrics.CountSynthesisUtterance()
	c.emit(events.NewSynthesisStarted(utteranceID, languageTag, voiceName))
}

// SetLanguage switches the explicit language selection. The draft is
// cleared, an active listening session is stopped, the FAQ is reloaded and a
// localized confirmation is shown and spoken.
func (c *Controller) SetLanguage(ctx context.Context, language Language) error {
	if !language.IsValid() {
		return fmt.Errorf("unsupported language %q", language)
	}

	c.mu.Lock()
	if c.language == language {
		c.mu.Unlock()
		return nil
	}
	c.language = language
	c.draft = ""
	c.mu.Unlock()

	if c.recognizer.Listening() {
		if err := c.recognizer.Stop(); err != nil {
			c.logger.ErrorContext(ctx, "failed to stop listening on language switch", "error", err)
		}
	}

	c.emit(events.NewDraftUpdated(""))
	c.emit(events.NewLanguageChanged(string(language)))
	c.emit(events.NewNotification(events.NotificationSuccess, languageSwitchedMessage(language)))

	if c.backend != nil {
		go c.loadFAQ(ctx)
	}
	c.speak(ctx, languageSwitchedMessage(language), language)
	return nil
}

// ToggleVoiceInput starts listening in the current language, or stops the
// active session. Recognized text lands in the draft slot, replacing its
// previous contents on every update.
func (c *Controller) ToggleVoiceInput(ctx context.Context) error {
	if !c.recognizer.Supported() {
		c.emit(events.NewNotification(events.NotificationError, noMicrophoneMessage(c.Language())))
		return speechtotext.ErrNotSupported
	}

	if c.recognizer.Listening() {
		if err := c.recognizer.Stop(); err != nil {
			return fmt.Errorf("failed to stop listening: %w", err)
		}
		c.emit(events.NewNotification(events.NotificationInfo, listeningStoppedMessage(c.Language())))
		return nil
	}

	language := c.Language()
	err := c.recognizer.Start(ctx, language.Tag(), speechtotext.Callbacks{
		OnInterimTranscription: c.SetDraft,
		OnTranscription:        c.SetDraft,
		OnStarted: func(languageTag string) {
			c.mu.Lock()
			c.listening = true
			c.mu.Unlock()
			c.metrics.CountRecognitionSession()
			c.emit(events.NewRecognitionStarted(languageTag))
		},
		OnStopped: func() {
			c.mu.Lock()
			c.listening = false
			c.mu.Unlock()
			c.emit(events.NewRecognitionStopped())
		},
		OnError: func(err error) {
			c.logger.ErrorContext(ctx, "speech recognition failed", "error", err)
			c.emit(events.NewNotification(events.NotificationError, voiceFailedMessage(c.Language())))
		},
	})
	if err != nil {
		c.emit(events.NewNotification(events.NotificationError, voiceFailedMessage(language)))
		return fmt.Errorf("failed to start listening: %w", err)
	}

	c.emit(events.NewNotification(events.NotificationSuccess, listeningMessage(language)))
	return nil
}

// SetDraft replaces the draft slot, used both by typed input and by
// recognition transcripts.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
	c.emit(events.NewDraftUpdated(text))
}

func (c *Controller) loadFAQ(ctx context.Context) {
	language := c.Language()

	items, err := c.backend.FAQ(ctx, string(language))
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to load faq", "error", err, "language", language)
		c.emit(events.NewNotification(events.NotificationError, faqLoadFailedMessage()))
		return
	}

	faq := make([]FAQItem, 0, len(items))
	for _, item := range items {
		faq = append(faq, FAQItem{ID: item.ID, Question: item.Question})
	}

	c.mu.Lock()
	if c.language != language {
		// The user switched languages while the load was in flight; a
		// fresh load for the new language is already underway.
		c.mu.Unlock()
		return
	}
	c.faq = faq
	c.mu.Unlock()

	c.emit(events.NewFAQUpdated(faq))
}

func (c *Controller) loadHistory(ctx context.Context) {
	entries, err := c.backend.History(ctx, c.sessionID)
	if err != nil {
		// A fresh session legitimately has no stored history; do not
		// surface this to the user.
		c.logger.WarnContext(ctx, "failed to load chat history", "error", err, "session_id", c.sessionID)
		return
	}
	if len(entries) == 0 {
		return
	}

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, Message{
			ID:        entry.ID,
			Text:      entry.Message,
			Response:  entry.Response,
			Timestamp: entry.Timestamp,
			Language:  Language(entry.Language),
			Status:    MessageStatusConfirmed,
		})
	}

	if c.store.Hydrate(messages) {
		c.emit(events.NewHistoryHydrated(len(messages)))
	}
}

func (c *Controller) emit(event events.Event) {
	c.mu.Lock()
	emitEvent := c.emitEvent
	c.mu.Unlock()
	emitEvent(event)
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

func (c *Controller) Language() Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// History returns a deep-copied snapshot of the conversation, oldest first.
func (c *Controller) History() []Message {
	return c.store.Snapshot()
}

func (c *Controller) FAQ() []FAQItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]FAQItem, len(c.faq))
	copy(out, c.faq)
	return out
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

func (c *Controller) VoiceInputSupported() bool {
	return c.recognizer.Supported()
}

func (c *Controller) VoiceOutputSupported() bool {
	return c.synthesizer.Supported()
}

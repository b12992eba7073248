package conversation

import (
	"github.com/sadhana-0705/farmerbot/core/events"
	"github.com/sadhana-0705/farmerbot/core/speechtotext"
	"github.com/sadhana-0705/farmerbot/core/texttospeech"
	"github.com/sadhana-0705/farmerbot/internal/observability"
)

type ControllerOption func(*Controller)

// WithBackend sets the chat backend. Without one, submissions fail and
// FAQ/history loads are skipped.
func WithBackend(backend ChatBackend) ControllerOption {
	return func(c *Controller) { c.backend = backend }
}

// WithRecognizer enables voice input.
func WithRecognizer(recognizer *speechtotext.Recognizer) ControllerOption {
	return func(c *Controller) { c.recognizer = recognizer }
}

// WithSynthesizer enables spoken responses.
func WithSynthesizer(synthesizer *texttospeech.Synthesizer) ControllerOption {
	return func(c *Controller) { c.synthesizer = synthesizer }
}

// WithLanguage sets the initial explicit language. Invalid values keep the
// default.
func WithLanguage(language Language) ControllerOption {
	return func(c *Controller) {
		if language.IsValid() {
			c.language = language
		}
	}
}

func WithMetrics(metrics *observability.Metrics) ControllerOption {
	return func(c *Controller) { c.metrics = metrics }
}

// WithSessionID overrides the generated session id, mainly so a known
// session's history can be rejoined.
func WithSessionID(sessionID string) ControllerOption {
	return func(c *Controller) {
		if sessionID != "" {
			c.sessionID = sessionID
		}
	}
}

// StartOptions bundle the presentation hooks wired up at session start. The
// raw event stream and the convenience callbacks can be combined freely.
type StartOptions struct {
	onEvent            func(events.Event)
	onNotification     func(events.Notification)
	onDraftUpdated     func(text string)
	onHistoryChanged   func()
	onFAQUpdated       func(items []events.FAQItem)
	onLanguageChanged  func(language Language)
	onListeningChanged func(listening bool)
}

type StartOption func(*StartOptions)

// WithEventHandler receives every event the controller emits.
func WithEventHandler(handler func(events.Event)) StartOption {
	return func(o *StartOptions) { o.onEvent = handler }
}

func WithNotificationCallback(callback func(events.Notification)) StartOption {
	return func(o *StartOptions) { o.onNotification = callback }
}

func WithDraftUpdatedCallback(callback func(text string)) StartOption {
	return func(o *StartOptions) { o.onDraftUpdated = callback }
}

func WithHistoryChangedCallback(callback func()) StartOption {
	return func(o *StartOptions) { o.onHistoryChanged = callback }
}

func WithFAQUpdatedCallback(callback func(items []events.FAQItem)) StartOption {
	return func(o *StartOptions) { o.onFAQUpdated = callback }
}

func WithLanguageChangedCallback(callback func(language Language)) StartOption {
	return func(o *StartOptions) { o.onLanguageChanged = callback }
}

func WithListeningChangedCallback(callback func(listening bool)) StartOption {
	return func(o *StartOptions) { o.onListeningChanged = callback }
}

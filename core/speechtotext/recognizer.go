// Package speechtotext wraps a streaming recognition provider as a single
// start/stoppable listening session with a replace-current-draft transcript
// contract.
package speechtotext

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sadhana-0705/farmerbot/core/audio"
)

var ErrNotSupported = errors.New("speech recognition is not available")

// Client is the streaming recognition provider contract.
type Client interface {
	Transcribe(ctx context.Context, opts ...TranscriptionOption) error
	SendAudio(audio []byte) error
	StopStream() error
}

// AudioSource feeds microphone audio into the active recognition session.
type AudioSource interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
}

// Callbacks are the per-session consumer hooks. Interim and final callbacks
// both carry the full current utterance text; the latest call always
// supersedes the previous one.
type Callbacks struct {
	OnInterimTranscription func(transcript string)
	OnTranscription        func(transcript string)
	OnStarted              func(languageTag string)
	OnStopped              func()
	OnError                func(err error)
}

type recognizerState string

const (
	stateIdle      recognizerState = "idle"
	stateListening recognizerState = "listening"
	stateStopping  recognizerState = "stopping"
)

type startRequest struct {
	ctx         context.Context
	languageTag string
	callbacks   Callbacks
}

// Recognizer is the recognition facade. It serializes sessions: a Start
// issued while the previous session is still terminating is queued and fired
// from the termination callback, so two sessions never report into the same
// draft slot.
type Recognizer struct {
	client Client
	source AudioSource

	mu           sync.Mutex
	state        recognizerState
	callbacks    Callbacks
	pendingStart *startRequest
}

type RecognizerOption func(*Recognizer)

func WithAudioSource(source AudioSource) RecognizerOption {
	return func(r *Recognizer) { r.source = source }
}

func NewRecognizer(client Client, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{client: client, state: stateIdle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Supported reports whether a recognition provider is configured. Queried
// once by the controller and exposed as a capability flag.
func (r *Recognizer) Supported() bool {
	return r != nil && r.client != nil
}

func (r *Recognizer) Listening() bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == stateListening
}

// Start opens a listening session for the given language tag. While a prior
// session is terminating the start is queued until termination is observed.
func (r *Recognizer) Start(ctx context.Context, languageTag string, callbacks Callbacks) error {
	if !r.Supported() {
		return ErrNotSupported
	}

	r.mu.Lock()
	switch r.state {
	case stateListening:
		r.mu.Unlock()
		return nil
	case stateStopping:
		r.pendingStart = &startRequest{ctx: ctx, languageTag: languageTag, callbacks: callbacks}
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	return r.start(ctx, languageTag, callbacks)
}

func (r *Recognizer) start(ctx context.Context, languageTag string, callbacks Callbacks) error {
	encodingInfo := audio.GetDefaultEncodingInfo()
	if r.source != nil {
		encodingInfo = r.source.EncodingInfo()
	}

	r.mu.Lock()
	r.callbacks = callbacks
	r.state = stateListening
	r.mu.Unlock()

	err := r.client.Transcribe(ctx,
		WithLanguageTag(languageTag),
		WithEncodingInfo(encodingInfo),
		WithInterimTranscriptionCallback(r.invokeInterimTranscription),
		WithTranscriptionCallback(r.invokeTranscription),
		WithSessionEndedCallback(r.onSessionEnded),
		WithErrorCallback(r.invokeError),
	)
	if err != nil {
		r.mu.Lock()
		r.state = stateIdle
		r.mu.Unlock()
		return fmt.Errorf("failed to start transcribing: %w", err)
	}

	if r.source != nil {
		if err := r.source.StartCapture(ctx, r.sendAudio); err != nil {
			_ = r.client.StopStream()
			return fmt.Errorf("failed to start audio capture: %w", err)
		}
	}

	if callbacks.OnStarted != nil {
		callbacks.OnStarted(languageTag)
	}
	return nil
}

// Stop ends the active session. The session is not considered terminated
// until the provider's session-ended callback fires.
func (r *Recognizer) Stop() error {
	if !r.Supported() {
		return nil
	}

	r.mu.Lock()
	if r.state != stateListening {
		r.mu.Unlock()
		return nil
	}
	r.state = stateStopping
	r.mu.Unlock()

	if r.source != nil {
		if err := r.source.StopCapture(); err != nil {
			r.revertToListening()
			return fmt.Errorf("failed to stop audio capture: %w", err)
		}
	}

	if err := r.client.StopStream(); err != nil {
		r.revertToListening()
		return fmt.Errorf("failed to stop transcription stream: %w", err)
	}
	return nil
}

// revertToListening unwinds a failed Stop: the session is still live, so the
// caller can retry instead of the facade wedging in the stopping state.
func (r *Recognizer) revertToListening() {
	r.mu.Lock()
	if r.state == stateStopping {
		r.state = stateListening
	}
	r.mu.Unlock()
}

func (r *Recognizer) SendAudio(audio []byte) error {
	if !r.Supported() {
		return nil
	}
	return r.client.SendAudio(audio)
}

func (r *Recognizer) sendAudio(chunk []byte) {
	_ = r.client.SendAudio(chunk)
}

func (r *Recognizer) onSessionEnded() {
	r.mu.Lock()
	callbacks := r.callbacks
	pending := r.pendingStart
	r.pendingStart = nil
	r.state = stateIdle
	r.mu.Unlock()

	if callbacks.OnStopped != nil {
		callbacks.OnStopped()
	}

	if pending != nil {
		if err := r.start(pending.ctx, pending.languageTag, pending.callbacks); err != nil && pending.callbacks.OnError != nil {
			pending.callbacks.OnError(err)
		}
	}
}

func (r *Recognizer) invokeInterimTranscription(transcript string) {
	r.mu.Lock()
	callback := r.callbacks.OnInterimTranscription
	r.mu.Unlock()
	if callback != nil {
		callback(transcript)
	}
}

func (r *Recognizer) invokeTranscription(transcript string) {
	r.mu.Lock()
	callback := r.callbacks.OnTranscription
	r.mu.Unlock()
	if callback != nil {
		callback(transcript)
	}
}

func (r *Recognizer) invokeError(err error) {
	r.mu.Lock()
	callback := r.callbacks.OnError
	r.mu.Unlock()
	if callback != nil {
		callback(err)
	}
}

// Package texttospeech wraps a synthesis provider behind a single-utterance
// facade: new requests preempt whatever is playing, voice selection is
// delegated to the resolver, and failures degrade to text-only display.
package texttospeech

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var ErrNotSupported = errors.New("speech synthesis is not available")

// Client is the synthesis provider contract. Speak starts producing and
// playing audio for one utterance; the returned playback can be cancelled.
type Client interface {
	Speak(ctx context.Context, req SpeechRequest, opts ...SpeakOption) (Playback, error)
}

type Playback interface {
	Cancel()
}

// Utterance is the cancellable handle for one spoken response.
type Utterance struct {
	ID string

	mu       sync.Mutex
	playback Playback
	once     sync.Once
}

func (u *Utterance) Cancel() {
	if u == nil {
		return
	}
	u.mu.Lock()
	playback := u.playback
	u.mu.Unlock()
	if playback != nil {
		playback.Cancel()
	}
}

func (u *Utterance) setPlayback(playback Playback) {
	u.mu.Lock()
	u.playback = playback
	u.mu.Unlock()
}

// Synthesizer owns the process-wide single-active-utterance state.
type Synthesizer struct {
	client   Client
	resolver *Resolver
	prosody  map[string]Prosody

	// speakMu serializes whole Speak calls, so two concurrent requests
	// cannot both observe an empty current slot and leave each other
	// uncancelled.
	speakMu sync.Mutex

	mu      sync.Mutex
	current *Utterance
}

type SynthesizerOption func(*Synthesizer)

func WithResolver(resolver *Resolver) SynthesizerOption {
	return func(s *Synthesizer) { s.resolver = resolver }
}

// WithProsody overrides the default speech shaping for one language tag.
func WithProsody(languageTag string, prosody Prosody) SynthesizerOption {
	return func(s *Synthesizer) { s.prosody[languageTag] = prosody }
}

func NewSynthesizer(client Client, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{client: client, prosody: map[string]Prosody{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supported reports whether a synthesis provider is configured.
func (s *Synthesizer) Supported() bool {
	return s != nil && s.client != nil
}

// Speak cancels any in-progress utterance and starts playing text in the
// given language. Completion and error callbacks are terminal and fire at
// most once. A nil voice resolution falls back to the provider default.
func (s *Synthesizer) Speak(ctx context.Context, text, languageTag string, opts ...SpeakOption) (*Utterance, error) {
	if !s.Supported() {
		return nil, ErrNotSupported
	}

	options := SpeakOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	s.speakMu.Lock()
	defer s.speakMu.Unlock()

	utterance := &Utterance{ID: uuid.NewString()}

	// Register before calling the provider, so a terminal callback firing
	// mid-call clears this utterance instead of leaving it behind as
	// current.
	s.mu.Lock()
	if s.current != nil {
		s.current.Cancel()
	}
	s.current = utterance
	s.mu.Unlock()

	prosody, ok := s.prosody[languageTag]
	if !ok {
		prosody = DefaultProsody(languageTag)
	}

	req := SpeechRequest{
		Text:        text,
		LanguageTag: languageTag,
		Voice:       s.resolver.Resolve(languageTag),
		Prosody:     prosody,
	}

	playback, err := s.client.Speak(ctx, req,
		WithEndedCallback(func() {
			utterance.once.Do(func() {
				s.clear(utterance)
				if options.EndedCallback != nil {
					options.EndedCallback()
				}
			})
		}),
		WithErrorCallback(func(err error) {
			utterance.once.Do(func() {
				s.clear(utterance)
				if options.ErrorCallback != nil {
					options.ErrorCallback(err)
				}
			})
		}),
	)
	if err != nil {
		s.clear(utterance)
		return nil, fmt.Errorf("failed to start speech synthesis: %w", err)
	}

	utterance.setPlayback(playback)
	return utterance, nil
}

// ResolveVoice exposes the resolver result for the given tag, nil when no
// voice matched or no resolver is configured.
func (s *Synthesizer) ResolveVoice(languageTag string) *Voice {
	if s == nil {
		return nil
	}
	return s.resolver.Resolve(languageTag)
}

// Cancel stops the current utterance, if any.
func (s *Synthesizer) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	current := s.current
	s.current = nil
	s.mu.Unlock()
	current.Cancel()
}

func (s *Synthesizer) clear(utterance *Utterance) {
	s.mu.Lock()
	if s.current == utterance {
		s.current = nil
	}
	s.mu.Unlock()
}

package texttospeech

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestSynthesizerSpeakAppliesProsodyAndVoice(t *testing.T) {
	clientStub := &synthesisClientStub{}
	source := &voiceSourceStub{voices: []Voice{{Name: "Malayalam India", Lang: "ml-IN"}}}
	synthesizer := NewSynthesizer(clientStub, WithResolver(NewResolver(source)))

	utterance, err := synthesizer.Speak(context.Background(), "നന്ദി", "ml-IN")
	if err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}
	if utterance.ID == "" {
		t.Fatalf("expected utterance id to be assigned")
	}

	req := clientStub.requests[0]
	if req.Text != "നന്ദി" || req.LanguageTag != "ml-IN" {
		t.Fatalf("expected request to carry text and language, got %+v", req)
	}
	if req.Voice == nil || req.Voice.Lang != "ml-IN" {
		t.Fatalf("expected resolved voice, got %+v", req.Voice)
	}
	if req.Prosody.Rate != 0.6 || req.Prosody.Pitch != 1.1 {
		t.Fatalf("expected malayalam prosody, got %+v", req.Prosody)
	}
}

func TestSynthesizerSpeakWithoutResolverUsesNilVoice(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub)

	if _, err := synthesizer.Speak(context.Background(), "hello", "en-US"); err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}
	if clientStub.requests[0].Voice != nil {
		t.Fatalf("expected nil voice without resolver, got %+v", clientStub.requests[0].Voice)
	}
	if clientStub.requests[0].Prosody.Rate != 0.8 {
		t.Fatalf("expected english prosody, got %+v", clientStub.requests[0].Prosody)
	}
}

func TestSynthesizerProsodyOverride(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub,
		WithProsody("ml-IN", Prosody{Rate: 0.5, Pitch: 1.0, Volume: 1.0}),
	)

	if _, err := synthesizer.Speak(context.Background(), "നന്ദി", "ml-IN"); err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}
	if clientStub.requests[0].Prosody.Rate != 0.5 {
		t.Fatalf("expected overridden prosody, got %+v", clientStub.requests[0].Prosody)
	}
}

func TestSynthesizerSpeakPreemptsCurrentUtterance(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub)

	if _, err := synthesizer.Speak(context.Background(), "first", "en-US"); err != nil {
		t.Fatalf("expected first speak to succeed, got %v", err)
	}
	if _, err := synthesizer.Speak(context.Background(), "second", "en-US"); err != nil {
		t.Fatalf("expected second speak to succeed, got %v", err)
	}

	if clientStub.playbacks[0].cancelCalls != 1 {
		t.Fatalf("expected first playback to be cancelled, got %d cancels", clientStub.playbacks[0].cancelCalls)
	}
	if clientStub.playbacks[1].cancelCalls != 0 {
		t.Fatalf("expected second playback to keep playing, got %d cancels", clientStub.playbacks[1].cancelCalls)
	}
}

func TestSynthesizerConcurrentSpeaksKeepSingleUtterance(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := synthesizer.Speak(context.Background(), "text", "en-US"); err != nil {
				t.Errorf("expected speak to succeed, got %v", err)
			}
		}()
	}
	wg.Wait()

	if len(clientStub.playbacks) != 2 {
		t.Fatalf("expected two playbacks, got %d", len(clientStub.playbacks))
	}
	cancelled := 0
	for _, playback := range clientStub.playbacks {
		cancelled += playback.cancelCalls
	}
	if cancelled != 1 {
		t.Fatalf("expected exactly one of the two utterances to be cancelled, got %d cancels", cancelled)
	}
}

func TestSynthesizerUtteranceEndedDuringStartIsNotLeftCurrent(t *testing.T) {
	clientStub := &synthesisClientStub{endImmediately: true}
	synthesizer := NewSynthesizer(clientStub)

	ended := 0
	if _, err := synthesizer.Speak(context.Background(), "hello", "en-US",
		WithEndedCallback(func() { ended++ }),
	); err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}
	if ended != 1 {
		t.Fatalf("expected ended callback once, got %d", ended)
	}

	synthesizer.Cancel()
	if clientStub.playbacks[0].cancelCalls != 0 {
		t.Fatalf("expected finished utterance not to be registered as current, got %d cancels", clientStub.playbacks[0].cancelCalls)
	}
}

func TestSynthesizerTerminalCallbacksFireOnce(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub)

	ended := 0
	failed := 0
	if _, err := synthesizer.Speak(context.Background(), "hello", "en-US",
		WithEndedCallback(func() { ended++ }),
		WithErrorCallback(func(error) { failed++ }),
	); err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}

	options := clientStub.options[0]
	options.EndedCallback()
	options.EndedCallback()
	options.ErrorCallback(errors.New("late failure"))

	if ended != 1 {
		t.Fatalf("expected ended callback once, got %d", ended)
	}
	if failed != 0 {
		t.Fatalf("expected no error callback after completion, got %d", failed)
	}
}

func TestSynthesizerCancelStopsCurrentUtterance(t *testing.T) {
	clientStub := &synthesisClientStub{}
	synthesizer := NewSynthesizer(clientStub)

	if _, err := synthesizer.Speak(context.Background(), "hello", "en-US"); err != nil {
		t.Fatalf("expected speak to succeed, got %v", err)
	}

	synthesizer.Cancel()
	if clientStub.playbacks[0].cancelCalls != 1 {
		t.Fatalf("expected playback cancel, got %d", clientStub.playbacks[0].cancelCalls)
	}

	synthesizer.Cancel()
	if clientStub.playbacks[0].cancelCalls != 1 {
		t.Fatalf("expected repeated cancel to be a no-op, got %d", clientStub.playbacks[0].cancelCalls)
	}
}

func TestSynthesizerUnsupportedWithoutClient(t *testing.T) {
	synthesizer := NewSynthesizer(nil)
	if synthesizer.Supported() {
		t.Fatalf("expected synthesizer without client to be unsupported")
	}
	if _, err := synthesizer.Speak(context.Background(), "hello", "en-US"); err != ErrNotSupported {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

type synthesisClientStub struct {
	requests       []SpeechRequest
	options        []SpeakOptions
	playbacks      []*playbackStub
	speakErr       error
	endImmediately bool
}

func (stub *synthesisClientStub) Speak(_ context.Context, req SpeechRequest, opts ...SpeakOption) (Playback, error) {
	if stub.speakErr != nil {
		return nil, stub.speakErr
	}

	options := SpeakOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	playback := &playbackStub{}
	stub.requests = append(stub.requests, req)
	stub.options = append(stub.options, options)
	stub.playbacks = append(stub.playbacks, playback)
	if stub.endImmediately && options.EndedCallback != nil {
		options.EndedCallback()
	}
	return playback, nil
}

type playbackStub struct {
	cancelCalls int
}

func (stub *playbackStub) Cancel() {
	stub.cancelCalls++
}

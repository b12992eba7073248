package speechtotext

import (
	"context"
	"errors"
	"testing"
)

func TestRecognizerStartForwardsTranscripts(t *testing.T) {
	clientStub := &recognitionClientStub{}
	recognizer := NewRecognizer(clientStub)

	interim := []string{}
	finals := []string{}
	startedTags := []string{}

	err := recognizer.Start(context.Background(), "ml-IN", Callbacks{
		OnInterimTranscription: func(transcript string) { interim = append(interim, transcript) },
		OnTranscription:        func(transcript string) { finals = append(finals, transcript) },
		OnStarted:              func(languageTag string) { startedTags = append(startedTags, languageTag) },
	})
	if err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	if clientStub.options.LanguageTag != "ml-IN" {
		t.Fatalf("expected language tag to reach the provider, got %q", clientStub.options.LanguageTag)
	}
	if len(startedTags) != 1 || startedTags[0] != "ml-IN" {
		t.Fatalf("expected started callback with the language tag, got %v", startedTags)
	}
	if !recognizer.Listening() {
		t.Fatalf("expected recognizer to be listening")
	}

	clientStub.options.InterimTranscriptionCallback("എങ്ങനെ")
	clientStub.options.InterimTranscriptionCallback("എങ്ങനെ നെല്ല്")
	clientStub.options.TranscriptionCallback("എങ്ങനെ നെല്ല് കൃഷി ചെയ്യാം")

	if len(interim) != 2 || interim[1] != "എങ്ങനെ നെല്ല്" {
		t.Fatalf("expected interim transcripts to be forwarded, got %v", interim)
	}
	if len(finals) != 1 || finals[0] != "എങ്ങനെ നെല്ല് കൃഷി ചെയ്യാം" {
		t.Fatalf("expected final transcript to be forwarded, got %v", finals)
	}
}

func TestRecognizerStopReportsStoppedOnSessionEnd(t *testing.T) {
	clientStub := &recognitionClientStub{}
	recognizer := NewRecognizer(clientStub)

	stopped := 0
	if err := recognizer.Start(context.Background(), "en-US", Callbacks{
		OnStopped: func() { stopped++ },
	}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	if err := recognizer.Stop(); err != nil {
		t.Fatalf("expected stop to succeed, got %v", err)
	}
	if clientStub.stopCalls != 1 {
		t.Fatalf("expected one stop-stream call, got %d", clientStub.stopCalls)
	}
	if stopped != 0 {
		t.Fatalf("expected stopped callback to wait for session end, got %d calls", stopped)
	}
	if recognizer.Listening() {
		t.Fatalf("expected recognizer not to report listening while stopping")
	}

	clientStub.options.SessionEndedCallback()
	if stopped != 1 {
		t.Fatalf("expected one stopped callback after session end, got %d", stopped)
	}
}

func TestRecognizerQueuesStartWhileStopping(t *testing.T) {
	clientStub := &recognitionClientStub{}
	recognizer := NewRecognizer(clientStub)

	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err != nil {
		t.Fatalf("expected first start to succeed, got %v", err)
	}
	if err := recognizer.Stop(); err != nil {
		t.Fatalf("expected stop to succeed, got %v", err)
	}

	started := []string{}
	if err := recognizer.Start(context.Background(), "ml-IN", Callbacks{
		OnStarted: func(languageTag string) { started = append(started, languageTag) },
	}); err != nil {
		t.Fatalf("expected queued start to succeed, got %v", err)
	}
	if len(started) != 0 {
		t.Fatalf("expected queued start not to fire before session end, got %v", started)
	}
	if clientStub.transcribeCalls != 1 {
		t.Fatalf("expected one transcribe call before session end, got %d", clientStub.transcribeCalls)
	}

	clientStub.options.SessionEndedCallback()

	if clientStub.transcribeCalls != 2 {
		t.Fatalf("expected queued session to open after session end, got %d transcribe calls", clientStub.transcribeCalls)
	}
	if len(started) != 1 || started[0] != "ml-IN" {
		t.Fatalf("expected queued start for ml-IN, got %v", started)
	}
	if !recognizer.Listening() {
		t.Fatalf("expected recognizer to be listening after queued start")
	}
}

func TestRecognizerFailedStopLeavesSessionActive(t *testing.T) {
	clientStub := &recognitionClientStub{}
	recognizer := NewRecognizer(clientStub)

	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}

	clientStub.stopErr = errors.New("write failed")
	if err := recognizer.Stop(); err == nil {
		t.Fatalf("expected stop failure to propagate")
	}
	if !recognizer.Listening() {
		t.Fatalf("expected recognizer to stay listening after failed stop")
	}

	clientStub.stopErr = nil
	if err := recognizer.Stop(); err != nil {
		t.Fatalf("expected retried stop to succeed, got %v", err)
	}
	if recognizer.Listening() {
		t.Fatalf("expected recognizer to leave the listening state after retried stop")
	}
	if clientStub.stopCalls != 2 {
		t.Fatalf("expected two stop-stream attempts, got %d", clientStub.stopCalls)
	}
}

func TestRecognizerStartWhileListeningIsNoop(t *testing.T) {
	clientStub := &recognitionClientStub{}
	recognizer := NewRecognizer(clientStub)

	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err != nil {
		t.Fatalf("expected start to succeed, got %v", err)
	}
	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err != nil {
		t.Fatalf("expected repeated start to be a no-op, got %v", err)
	}
	if clientStub.transcribeCalls != 1 {
		t.Fatalf("expected a single transcribe call, got %d", clientStub.transcribeCalls)
	}
}

func TestRecognizerUnsupportedWithoutClient(t *testing.T) {
	recognizer := NewRecognizer(nil)
	if recognizer.Supported() {
		t.Fatalf("expected recognizer without client to be unsupported")
	}
	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err != ErrNotSupported {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
	if err := recognizer.Stop(); err != nil {
		t.Fatalf("expected stop without client to be a no-op, got %v", err)
	}
}

func TestRecognizerStartFailurePropagates(t *testing.T) {
	clientStub := &recognitionClientStub{transcribeErr: errors.New("connection refused")}
	recognizer := NewRecognizer(clientStub)

	if err := recognizer.Start(context.Background(), "en-US", Callbacks{}); err == nil {
		t.Fatalf("expected start failure to propagate")
	}
	if recognizer.Listening() {
		t.Fatalf("expected recognizer to stay idle after start failure")
	}
}

type recognitionClientStub struct {
	options         TranscriptionOptions
	transcribeCalls int
	stopCalls       int
	transcribeErr   error
	stopErr         error
}

func (stub *recognitionClientStub) Transcribe(_ context.Context, opts ...TranscriptionOption) error {
	stub.transcribeCalls++
	if stub.transcribeErr != nil {
		return stub.transcribeErr
	}

	options := TranscriptionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	stub.options = options
	return nil
}

func (stub *recognitionClientStub) SendAudio([]byte) error {
	return nil
}

func (stub *recognitionClientStub) StopStream() error {
	stub.stopCalls++
	return stub.stopErr
}

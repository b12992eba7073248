// Command farmerbot is a terminal client for the bilingual farmer
// assistant. It talks to the assistant backend over HTTP and, when a
// Deepgram key is configured, adds voice input and spoken responses.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	conversation "github.com/sadhana-0705/farmerbot/core"
	"github.com/sadhana-0705/farmerbot/core/audio/miniaudio"
	"github.com/sadhana-0705/farmerbot/core/audio/portaudio"
	"github.com/sadhana-0705/farmerbot/core/backend"
	"github.com/sadhana-0705/farmerbot/core/events"
	"github.com/sadhana-0705/farmerbot/core/speechtotext"
	deepgramstt "github.com/sadhana-0705/farmerbot/core/speechtotext/deepgram"
	"github.com/sadhana-0705/farmerbot/core/texttospeech"
	deepgramtts "github.com/sadhana-0705/farmerbot/core/texttospeech/deepgram"
	"github.com/sadhana-0705/farmerbot/internal/config"
	"github.com/sadhana-0705/farmerbot/internal/observability"
)

const captureBufferSize = 1024

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "farmerbot:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	options := []conversation.ControllerOption{
		conversation.WithBackend(backend.NewClient(cfg.BackendURL)),
		conversation.WithLanguage(conversation.Language(cfg.DefaultLanguage)),
		conversation.WithMetrics(metrics),
	}

	var closers []func()
	if cfg.VoiceEnabled {
		recognizer, synthesizer, cleanup, err := buildVoice(ctx, cfg)
		if err != nil {
			slog.Warn("voice setup failed, continuing text-only", "error", err)
		} else {
			options = append(options,
				conversation.WithRecognizer(recognizer),
				conversation.WithSynthesizer(synthesizer),
			)
			closers = append(closers, cleanup)
		}
	}

	controller := conversation.New(options...)
	program := tea.NewProgram(newModel(controller), tea.WithAltScreen())

	err = controller.Start(ctx, conversation.WithEventHandler(func(event events.Event) {
		program.Send(coreEventMsg{event: event})
	}))
	if err != nil {
		return err
	}

	_, err = program.Run()
	for _, closeFn := range closers {
		closeFn()
	}
	return err
}

// buildVoice wires the audio backend and Deepgram clients. The portaudio
// backend is capture-only, so it enables voice input but not spoken
// responses.
func buildVoice(ctx context.Context, cfg config.Config) (*speechtotext.Recognizer, *texttospeech.Synthesizer, func(), error) {
	sttClient := deepgramstt.NewTranscriptionClient(deepgramstt.WithAPIKey(cfg.DeepgramAPIKey))

	prosodyOptions := []texttospeech.SynthesizerOption{
		texttospeech.WithProsody("ml-IN", texttospeech.Prosody{
			Rate: cfg.MalayalamRate, Pitch: cfg.MalayalamPitch, Volume: cfg.MalayalamVolume,
		}),
		texttospeech.WithProsody("en-US", texttospeech.Prosody{
			Rate: cfg.EnglishRate, Pitch: cfg.EnglishPitch, Volume: cfg.EnglishVolume,
		}),
	}

	if cfg.AudioBackend == "portaudio" {
		audioClient, err := portaudio.NewClient(captureBufferSize)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open portaudio: %w", err)
		}
		recognizer := speechtotext.NewRecognizer(sttClient, speechtotext.WithAudioSource(audioClient))
		synthesizer := texttospeech.NewSynthesizer(nil, prosodyOptions...)
		return recognizer, synthesizer, func() { audioClient.Close() }, nil
	}

	audioClient, err := miniaudio.NewClient()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open miniaudio: %w", err)
	}

	recognizer := speechtotext.NewRecognizer(sttClient, speechtotext.WithAudioSource(audioClient))

	catalog := deepgramtts.NewVoiceCatalog(ctx, deepgramtts.WithCatalogAPIKey(cfg.DeepgramAPIKey))
	ttsClient := deepgramtts.NewTextToSpeechClient(audioClient,
		deepgramtts.WithAPIKey(cfg.DeepgramAPIKey),
		deepgramtts.WithEncodingInfo(audioClient.EncodingInfo()),
	)
	synthesizer := texttospeech.NewSynthesizer(ttsClient,
		append(prosodyOptions, texttospeech.WithResolver(texttospeech.NewResolver(catalog)))...,
	)

	return recognizer, synthesizer, func() { audioClient.Close() }, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics endpoint failed", "error", err)
	}
}

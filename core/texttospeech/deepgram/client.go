// Package deepgram implements speech synthesis over the Deepgram realtime
// websocket API, streaming generated audio into a playback sink.
package deepgram

import (
	"context"
	"os"

	"github.com/sadhana-0705/farmerbot/core/audio"
	"github.com/sadhana-0705/farmerbot/core/texttospeech"
)

const defaultVoice = "aura-asteria-en"

// AudioSink receives synthesized audio frames; ClearBuffer drops whatever is
// queued when an utterance is preempted.
type AudioSink interface {
	SendAudio(audio []byte) error
	ClearBuffer()
}

type TextToSpeechClient struct {
	apiKey       string
	sink         AudioSink
	encodingInfo audio.EncodingInfo
}

type ClientOption func(*TextToSpeechClient)

func WithAPIKey(apiKey string) ClientOption {
	return func(c *TextToSpeechClient) { c.apiKey = apiKey }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) ClientOption {
	return func(c *TextToSpeechClient) {
		if !encodingInfo.IsZero() {
			c.encodingInfo = encodingInfo
		}
	}
}

func NewTextToSpeechClient(sink AudioSink, opts ...ClientOption) *TextToSpeechClient {
	client := &TextToSpeechClient{
		sink:         sink,
		encodingInfo: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.apiKey == "" {
		client.apiKey, _ = os.LookupEnv("DEEPGRAM_API_KEY")
	}
	return client
}

// Speak opens a websocket stream for one utterance. The request's resolved
// voice picks the model; without one the default voice is used.
func (c *TextToSpeechClient) Speak(ctx context.Context, req texttospeech.SpeechRequest, opts ...texttospeech.SpeakOption) (texttospeech.Playback, error) {
	options := texttospeech.SpeakOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	voice := defaultVoice
	if req.Voice != nil {
		voice = req.Voice.Name
	}

	return newStreamingRequest(ctx, c, voice, req.Text, options)
}

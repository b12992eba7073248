package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sadhana-0705/farmerbot/core/texttospeech"
)

type streamingRequest struct {
	ws *websocket.Conn
	mu sync.Mutex

	sink    AudioSink
	options streamingOptions

	cancelled bool
	closed    bool
}

type streamingOptions struct {
	ended  func()
	failed func(error)
}

func newStreamingRequest(ctx context.Context, c *TextToSpeechClient, voice, text string, options texttospeech.SpeakOptions) (*streamingRequest, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	speakUrl, _ := url.Parse("wss://api.deepgram.com/v1/speak")
	urlValues := url.Values{}
	urlValues.Set("encoding", c.encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(c.encodingInfo.SampleRate))
	urlValues.Set("model", voice)
	urlValues.Set("container", "none")
	speakUrl.RawQuery = urlValues.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(speakUrl.String(),
		http.Header{"Authorization": {"Token " + c.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	req := &streamingRequest{
		ws:   conn,
		sink: c.sink,
		options: streamingOptions{
			ended:  func() {},
			failed: func(error) {},
		},
	}
	if options.EndedCallback != nil {
		req.options.ended = options.EndedCallback
	}
	if options.ErrorCallback != nil {
		req.options.failed = options.ErrorCallback
	}

	if err := req.writeJSON(map[string]string{"type": "Speak", "text": text}); err != nil {
		req.close()
		return nil, fmt.Errorf("failed to send text to deepgram: %w", err)
	}
	if err := req.writeJSON(map[string]string{"type": "Flush"}); err != nil {
		req.close()
		return nil, fmt.Errorf("failed to flush deepgram stream: %w", err)
	}

	go req.processIncomingMessages(ctx)

	return req, nil
}

// Cancel preempts the utterance: clears the generation buffer, drops queued
// playback audio and closes the stream.
func (r *streamingRequest) Cancel() {
	r.mu.Lock()
	if r.cancelled || r.closed {
		r.mu.Unlock()
		return
	}
	r.cancelled = true
	r.mu.Unlock()

	_ = r.writeJSON(map[string]string{"type": "Clear"})
	if r.sink != nil {
		r.sink.ClearBuffer()
	}
	r.close()
}

func (r *streamingRequest) processIncomingMessages(ctx context.Context) {
	for {
		msgType, msg, err := r.ws.ReadMessage()
		if err != nil {
			r.mu.Lock()
			cancelled := r.cancelled
			closed := r.closed
			r.closed = true
			r.mu.Unlock()

			if !cancelled && !closed && err.Error() != "websocket: close 1000 (normal)" {
				log.Println("Failed to read deepgram websocket message", "error", err)
				r.options.failed(err)
			}
			r.ws.Close()
			return
		}

		select {
		case <-ctx.Done():
			r.Cancel()
			return
		default:
		}

		if msgType == websocket.BinaryMessage {
			if r.sink != nil {
				if err := r.sink.SendAudio(msg); err != nil {
					log.Println("Failed to send synthesized audio to sink", err)
				}
			}
			continue
		}

		var parsedMsg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &parsedMsg); err != nil {
			log.Println("Failed to unmarshal deepgram message", "error", err)
			continue
		}

		switch parsedMsg.Type {
		case "Flushed":
			r.options.ended()
			r.close()
			return
		case "Error":
			var errMsg struct {
				Description string `json:"description"`
			}
			_ = json.Unmarshal(msg, &errMsg)
			r.options.failed(fmt.Errorf("deepgram synthesis error: %s", errMsg.Description))
			r.close()
			return
		}
	}
}

func (r *streamingRequest) writeJSON(payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.ws.WriteJSON(payload)
}

func (r *streamingRequest) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	_ = r.ws.Close()
}

package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/sadhana-0705/farmerbot/core/texttospeech"
)

// VoiceCatalog implements texttospeech.VoiceSource over the Deepgram models
// API. The list is fetched asynchronously; until it arrives Voices returns
// an empty slice and subscribers are notified once it lands.
type VoiceCatalog struct {
	apiKey     string
	httpClient *http.Client

	mu        sync.Mutex
	voices    []texttospeech.Voice
	listeners []func()
}

type CatalogOption func(*VoiceCatalog)

func WithCatalogAPIKey(apiKey string) CatalogOption {
	return func(c *VoiceCatalog) { c.apiKey = apiKey }
}

func WithHTTPClient(httpClient *http.Client) CatalogOption {
	return func(c *VoiceCatalog) { c.httpClient = httpClient }
}

func NewVoiceCatalog(ctx context.Context, opts ...CatalogOption) *VoiceCatalog {
	catalog := &VoiceCatalog{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(catalog)
	}
	if catalog.apiKey == "" {
		catalog.apiKey, _ = os.LookupEnv("DEEPGRAM_API_KEY")
	}

	go func() {
		if err := catalog.load(ctx); err != nil {
			log.Println("Failed to load deepgram voice catalog", err)
		}
	}()

	return catalog
}

func (c *VoiceCatalog) Voices() []texttospeech.Voice {
	c.mu.Lock()
	defer c.mu.Unlock()

	voices := make([]texttospeech.Voice, len(c.voices))
	copy(voices, c.voices)
	return voices
}

func (c *VoiceCatalog) OnVoicesChanged(callback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, callback)
}

func (c *VoiceCatalog) load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.deepgram.com/v1/models", nil)
	if err != nil {
		return fmt.Errorf("failed to build models request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch deepgram models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status fetching deepgram models: %s", resp.Status)
	}

	var payload struct {
		TTS []struct {
			CanonicalName string   `json:"canonical_name"`
			Languages     []string `json:"languages"`
		} `json:"tts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode deepgram models: %w", err)
	}

	voices := make([]texttospeech.Voice, 0, len(payload.TTS))
	for _, model := range payload.TTS {
		lang := ""
		if len(model.Languages) > 0 {
			lang = model.Languages[0]
		}
		voices = append(voices, texttospeech.Voice{Name: model.CanonicalName, Lang: lang})
	}

	c.mu.Lock()
	c.voices = voices
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, notify := range listeners {
		notify()
	}
	return nil
}

package texttospeech

import (
	"strings"
	"sync"
)

// Voice is an opaque handle to one installed synthesis voice.
type Voice struct {
	Name string
	Lang string
}

// VoiceSource exposes the host platform's voice list. The list is populated
// asynchronously and may be empty on first query; OnVoicesChanged registers
// a callback for when it changes.
type VoiceSource interface {
	Voices() []Voice
	OnVoicesChanged(func())
}

// FallbackChain configures the search order for one target language tag.
// Tags are tried first (exact or primary-subtag match, in order), then
// case-insensitive name keywords, then a last-resort language-tag prefix.
type FallbackChain struct {
	Tags     []string
	Keywords []string
	Prefix   string
}

// defaultFallbacks encodes the Malayalam voice search: a native ml voice,
// then Hindi as the designated substitute, then name-keyword matches, then
// any Tamil voice as the linguistically closest remaining option.
var defaultFallbacks = map[string]FallbackChain{
	"ml-IN": {
		Tags:     []string{"ml-IN", "ml", "hi-IN", "hi"},
		Keywords: []string{"malayalam", "hindi"},
		Prefix:   "ta",
	},
	"en-US": {
		Tags:     []string{"en-US", "en"},
		Keywords: []string{"english"},
	},
}

// Resolver deterministically selects the best voice for a language tag over
// the source's dynamically-loaded, unordered voice list. Results are cached
// per tag; the cache is dropped wholesale when the source reports a change.
type Resolver struct {
	source VoiceSource

	mu        sync.Mutex
	cache     map[string]*Voice
	fallbacks map[string]FallbackChain
}

type ResolverOption func(*Resolver)

// WithFallbackChain overrides the search configuration for one language tag.
func WithFallbackChain(languageTag string, chain FallbackChain) ResolverOption {
	return func(r *Resolver) { r.fallbacks[languageTag] = chain }
}

func NewResolver(source VoiceSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:    source,
		cache:     map[string]*Voice{},
		fallbacks: map[string]FallbackChain{},
	}
	for tag, chain := range defaultFallbacks {
		r.fallbacks[tag] = chain
	}
	for _, opt := range opts {
		opt(r)
	}
	if source != nil {
		source.OnVoicesChanged(r.invalidate)
	}
	return r
}

// Resolve returns the best voice for languageTag, or nil when none matches.
// It never blocks: an empty voice list resolves to nil immediately and the
// caller proceeds with the platform default.
func (r *Resolver) Resolve(languageTag string) *Voice {
	if r == nil || r.source == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if voice, ok := r.cache[languageTag]; ok {
		return voice
	}

	voice := r.search(languageTag, r.source.Voices())
	r.cache[languageTag] = voice
	return voice
}

func (r *Resolver) search(languageTag string, voices []Voice) *Voice {
	if len(voices) == 0 {
		return nil
	}

	chain, ok := r.fallbacks[languageTag]
	if !ok {
		chain = FallbackChain{Tags: []string{languageTag, primarySubtag(languageTag)}}
	}

	for _, tag := range chain.Tags {
		for i, voice := range voices {
			if voice.Lang == tag || primarySubtag(voice.Lang) == tag {
				return &voices[i]
			}
		}
	}

	for _, keyword := range chain.Keywords {
		for i, voice := range voices {
			if strings.Contains(strings.ToLower(voice.Name), keyword) {
				return &voices[i]
			}
		}
	}

	if chain.Prefix != "" {
		for i, voice := range voices {
			if strings.HasPrefix(voice.Lang, chain.Prefix) {
				return &voices[i]
			}
		}
	}

	return nil
}

func (r *Resolver) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = map[string]*Voice{}
}

func primarySubtag(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

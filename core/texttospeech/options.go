package texttospeech

// Prosody carries the per-utterance speech shaping parameters. Rate and
// pitch are multipliers around the engine default, volume is 0..1.
type Prosody struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultProsody returns the shaping used for a language tag. Malayalam is
// spoken slower with a slightly raised pitch to aid comprehension; both sets
// are tunable through synthesizer options.
func DefaultProsody(languageTag string) Prosody {
	if languageTag == "ml-IN" {
		return Prosody{Rate: 0.6, Pitch: 1.1, Volume: 0.9}
	}
	return Prosody{Rate: 0.8, Pitch: 1.0, Volume: 0.9}
}

// SpeechRequest is one utterance handed to a synthesis provider. Voice is
// nil when no installed voice resolved; the provider then uses its default
// voice with the request's language tag.
type SpeechRequest struct {
	Text        string
	LanguageTag string
	Voice       *Voice
	Prosody     Prosody
}

type SpeakOptions struct {
	// EndedCallback fires once when the utterance finished playing.
	EndedCallback func()
	// ErrorCallback fires once if synthesis or playback fails. Errors are
	// non-fatal; the conversation degrades to text-only.
	ErrorCallback func(err error)
}

type SpeakOption func(*SpeakOptions)

func WithEndedCallback(callback func()) SpeakOption {
	return func(o *SpeakOptions) { o.EndedCallback = callback }
}

func WithErrorCallback(callback func(err error)) SpeakOption {
	return func(o *SpeakOptions) { o.ErrorCallback = callback }
}

package speechtotext

import "github.com/sadhana-0705/farmerbot/core/audio"

type TranscriptionOptions struct {
	// InterimTranscriptionCallback delivers the full in-progress utterance
	// text. Each call replaces the previous value; consumers never merge.
	InterimTranscriptionCallback func(transcript string)
	// TranscriptionCallback delivers the full finalized utterance text.
	TranscriptionCallback func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	// SessionEndedCallback fires exactly once when the recognition session
	// has fully terminated, whether stopped explicitly or ended by the
	// engine.
	SessionEndedCallback func()
	ErrorCallback        func(err error)

	LanguageTag  string
	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithSessionEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SessionEndedCallback = callback
	}
}

func WithErrorCallback(callback func(err error)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.ErrorCallback = callback
	}
}

func WithLanguageTag(languageTag string) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.LanguageTag = languageTag
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}

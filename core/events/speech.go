package events

const (
	KindDraftUpdated       Kind = "draft.updated"
	KindRecognitionStarted Kind = "recognition.started"
	KindRecognitionStopped Kind = "recognition.stopped"
	KindSynthesisStarted   Kind = "synthesis.started"
	KindSynthesisEnded     Kind = "synthesis.ended"
	KindSynthesisFailed    Kind = "synthesis.failed"
)

type DraftUpdated struct {
	Base
	Text string
}

func NewDraftUpdated(text string) DraftUpdated {
	return DraftUpdated{Base: NewBase(KindDraftUpdated), Text: text}
}

type RecognitionStarted struct {
	Base
	LanguageTag string
}

func NewRecognitionStarted(languageTag string) RecognitionStarted {
	return RecognitionStarted{Base: NewBase(KindRecognitionStarted), LanguageTag: languageTag}
}

type RecognitionStopped struct {
	Base
}

func NewRecognitionStopped() RecognitionStopped {
	return RecognitionStopped{Base: NewBase(KindRecognitionStopped)}
}

type SynthesisStarted struct {
	Base
	UtteranceID string
	LanguageTag string
	VoiceName   string
}

func NewSynthesisStarted(utteranceID, languageTag, voiceName string) SynthesisStarted {
	return SynthesisStarted{Base: NewBase(KindSynthesisStarted), UtteranceID: utteranceID, LanguageTag: languageTag, VoiceName: voiceName}
}

type SynthesisEnded struct {
	Base
	UtteranceID string
}

func NewSynthesisEnded(utteranceID string) SynthesisEnded {
	return SynthesisEnded{Base: NewBase(KindSynthesisEnded), UtteranceID: utteranceID}
}

type SynthesisFailed struct {
	Base
	UtteranceID string
	Err         error
}

func NewSynthesisFailed(utteranceID string, err error) SynthesisFailed {
	return SynthesisFailed{Base: NewBase(KindSynthesisFailed), UtteranceID: utteranceID, Err: err}
}

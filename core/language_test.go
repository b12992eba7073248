package conversation

import "testing"

func TestEffectiveLanguageKeepsExplicitChoiceForLatinText(t *testing.T) {
	if got := EffectiveLanguage(LanguageEnglish, "How do I treat leaf spot?"); got != LanguageEnglish {
		t.Fatalf("expected english, got %q", got)
	}
	if got := EffectiveLanguage(LanguageMalayalam, "hello there"); got != LanguageMalayalam {
		t.Fatalf("expected malayalam to stick for latin text, got %q", got)
	}
}

func TestEffectiveLanguageDetectsMalayalamScript(t *testing.T) {
	if got := EffectiveLanguage(LanguageEnglish, "എങ്ങനെ നെല്ല് കൃഷി ചെയ്യാം"); got != LanguageMalayalam {
		t.Fatalf("expected malayalam for malayalam script, got %q", got)
	}
}

func TestEffectiveLanguageDetectsMixedScriptAsMalayalam(t *testing.T) {
	if got := EffectiveLanguage(LanguageEnglish, "rice കൃഷി tips"); got != LanguageMalayalam {
		t.Fatalf("expected malayalam for mixed script, got %q", got)
	}
}

func TestEffectiveLanguageEmptyText(t *testing.T) {
	if got := EffectiveLanguage(LanguageEnglish, ""); got != LanguageEnglish {
		t.Fatalf("expected explicit language for empty text, got %q", got)
	}
}

func TestLanguageTag(t *testing.T) {
	if got := LanguageMalayalam.Tag(); got != "ml-IN" {
		t.Fatalf("expected ml-IN, got %q", got)
	}
	if got := LanguageEnglish.Tag(); got != "en-US" {
		t.Fatalf("expected en-US, got %q", got)
	}
}

func TestLanguageIsValid(t *testing.T) {
	if !LanguageEnglish.IsValid() || !LanguageMalayalam.IsValid() {
		t.Fatalf("expected both supported languages to be valid")
	}
	if Language("hindi").IsValid() {
		t.Fatalf("expected unknown language to be invalid")
	}
}

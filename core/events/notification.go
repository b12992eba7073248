package events

const (
	KindLanguageChanged Kind = "language.changed"
	KindFAQUpdated      Kind = "faq.updated"
	KindNotification    Kind = "notification"
)

type LanguageChanged struct {
	Base
	Language string
}

func NewLanguageChanged(language string) LanguageChanged {
	return LanguageChanged{Base: NewBase(KindLanguageChanged), Language: language}
}

type FAQItem struct {
	ID       string
	Question string
}

type FAQUpdated struct {
	Base
	Items []FAQItem
}

func NewFAQUpdated(items []FAQItem) FAQUpdated {
	return FAQUpdated{Base: NewBase(KindFAQUpdated), Items: items}
}

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

type Notification struct {
	Base
	Level NotificationLevel
	Text  string
}

func NewNotification(level NotificationLevel, text string) Notification {
	return Notification{Base: NewBase(KindNotification), Level: level, Text: text}
}

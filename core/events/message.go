package events

const (
	KindMessagePending   Kind = "message.pending"
	KindMessageConfirmed Kind = "message.confirmed"
	KindMessageFailed    Kind = "message.failed"
	KindHistoryHydrated  Kind = "history.hydrated"
)

type MessagePending struct {
	Base
	TempID   string
	Text     string
	Language string
}

func NewMessagePending(tempID, text, language string) MessagePending {
	return MessagePending{Base: NewBase(KindMessagePending), TempID: tempID, Text: text, Language: language}
}

type MessageConfirmed struct {
	Base
	TempID   string
	ID       string
	Response string
	Language string
}

func NewMessageConfirmed(tempID, id, response, language string) MessageConfirmed {
	return MessageConfirmed{Base: NewBase(KindMessageConfirmed), TempID: tempID, ID: id, Response: response, Language: language}
}

type MessageFailed struct {
	Base
	TempID string
	Text   string
}

func NewMessageFailed(tempID, text string) MessageFailed {
	return MessageFailed{Base: NewBase(KindMessageFailed), TempID: tempID, Text: text}
}

// HistoryHydrated reports that history was replaced wholesale from the
// server-side record.
type HistoryHydrated struct {
	Base
	Count int
}

func NewHistoryHydrated(count int) HistoryHydrated {
	return HistoryHydrated{Base: NewBase(KindHistoryHydrated), Count: count}
}

package conversation

import "github.com/sadhana-0705/farmerbot/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts StartOptions) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch event.Kind() {
		case events.KindMessagePending, events.KindMessageConfirmed,
			events.KindMessageFailed, events.KindHistoryHydrated:
			if opts.onHistoryChanged != nil {
				opts.onHistoryChanged()
			}
		case events.KindRecognitionStarted:
			if opts.onListeningChanged != nil {
				opts.onListeningChanged(true)
			}
		case events.KindRecognitionStopped:
			if opts.onListeningChanged != nil {
				opts.onListeningChanged(false)
			}
		}

		switch typedEvent := event.(type) {
		case events.DraftUpdated:
			if opts.onDraftUpdated != nil {
				opts.onDraftUpdated(typedEvent.Text)
			}
		case events.LanguageChanged:
			if opts.onLanguageChanged != nil {
				opts.onLanguageChanged(Language(typedEvent.Language))
			}
		case events.FAQUpdated:
			if opts.onFAQUpdated != nil {
				opts.onFAQUpdated(typedEvent.Items)
			}
		case events.Notification:
			if opts.onNotification != nil {
				opts.onNotification(typedEvent)
			}
		}
	}
}

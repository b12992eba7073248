// Package events defines the typed event contract between the conversation
// controller and its presentation layer.
//
// Event kinds are grouped by concern-facing namespaces:
//
//   - message.*
//   - history.*
//   - draft.*
//   - recognition.*
//   - synthesis.*
//   - language.*
//   - faq.*
//   - notification
//
// Semantics used across the package:
//
//   - Pending: an optimistic entry that has not been confirmed by the
//     backend yet.
//   - Updated: mutable point-in-time snapshot that replaces the previous
//     value wholesale (no merging downstream).
//   - Terminal events (synthesis ended/failed, recognition stopped) are
//     delivered at most once per correlation id.
//
// message events
//
//   - MessagePending (message.pending): optimistic entry inserted; carries
//     the temp id used for later reconciliation.
//   - MessageConfirmed (message.confirmed): backend accepted the message;
//     carries both the temp id it replaces and the server-issued id.
//   - MessageFailed (message.failed): backend call failed and the optimistic
//     entry was rolled back; carries the composed text so it can be restored.
//   - HistoryHydrated (history.hydrated): history was replaced wholesale
//     from the server-side record.
//
// draft events
//
//   - DraftUpdated (draft.updated): mutable recognized-but-unsubmitted text
//     snapshot; each event replaces the current draft.
//
// recognition events
//
//   - RecognitionStarted (recognition.started): a listening session became
//     active for the given language tag.
//   - RecognitionStopped (recognition.stopped): the listening session ended,
//     explicitly or because the engine terminated it.
//
// synthesis events
//
//   - SynthesisStarted (synthesis.started): an utterance began playing;
//     includes the resolved voice name, empty when the platform default was
//     used.
//   - SynthesisEnded (synthesis.ended): utterance playback completed.
//   - SynthesisFailed (synthesis.failed): utterance playback failed;
//     non-fatal, the conversation continues text-only.
//
// language events
//
//   - LanguageChanged (language.changed): the explicit language preference
//     changed.
//
// faq events
//
//   - FAQUpdated (faq.updated): the suggested-questions list was reloaded.
//
// notification
//
//   - Notification (notification): localized, toast-style user-facing text.
package events

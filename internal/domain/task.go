package domain

// TaskKind identifies a background work item.
type TaskKind string

const (
	// TaskConferenceEmail sends the conference-creation confirmation email.
	TaskConferenceEmail TaskKind = "conference_confirmation_email"
	// TaskSessionEmail sends the session-creation confirmation email.
	TaskSessionEmail TaskKind = "session_confirmation_email"
	// TaskSpeakerRepeat runs the per-conference speaker-repeat check.
	TaskSpeakerRepeat TaskKind = "speaker_repeat_check"
)

// Task is a fire-and-forget work item. Tasks are submitted only after the
// triggering write has committed; delivery is best-effort within the process
// lifetime and failures are logged, never surfaced to the caller.
type Task struct {
	Kind         TaskKind
	Email        string
	Info         string
	ConferenceID string
	Speaker      string
}

// TaskDispatcher accepts work items for asynchronous execution.
type TaskDispatcher interface {
	Submit(task Task)
}

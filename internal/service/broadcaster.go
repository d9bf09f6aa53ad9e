package service

// Alert event names sent to notifiers on state transitions.
const (
	AlertRoundStart     = "round_start"
	AlertRoundEnd       = "round_end"
	AlertWinner         = "winner"
	AlertLetterRevealed = "letter_revealed"
	AlertDoublePoints   = "double_points"
	AlertTimerWarning   = "timer_warning"
)

// Notifier receives fire-and-forget notifications on game state transitions
// (avoids import cycle with the transport layer). Implementations must never
// block and must swallow their own failures.
type Notifier interface {
	Notify(event string, payload map[string]interface{})
}

// NoopNotifier discards all notifications. Used in tests and when no sink is
// configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(event string, payload map[string]interface{}) {}

// MultiNotifier fans a notification out to several sinks.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(event string, payload map[string]interface{}) {
	for _, n := range m {
		n.Notify(event, payload)
	}
}

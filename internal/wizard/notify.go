package wizard

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, toast-style message.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier receives notifications from the controller. Implementations
// must not call back into the controller synchronously.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

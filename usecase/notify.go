package usecase

import "sync"

// Level is the tone of a user notification.
type Level string

const (
	LevelPositive Level = "positive"
	LevelNegative Level = "negative"
	LevelWarning  Level = "warning"
	LevelInfo     Level = "info"
)

// Notifier shows short messages to the user. Stores report every action
// outcome through it; the result itself is returned to the caller.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// Nop discards notifications.
var Nop Notifier = NotifierFunc(func(Level, string) {})

// Notice is a recorded notification.
type Notice struct {
	Level   Level
	Message string
}

// Recorder keeps every notification, for tests and batch output.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	r.notices = append(r.notices, Notice{Level: level, Message: message})
	r.mu.Unlock()
}

func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

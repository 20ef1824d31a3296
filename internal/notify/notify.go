// Package notify is the one-line notification channel the admin workflows
// emit success and error messages to. The presentation of a notice (toast,
// log line, JSON field) is the consumer's business.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Recorder collects notices until drained. The console hands the drained
// batch back to the operator with each response; tests assert on it.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) { r.add(Notice{Level: LevelSuccess, Message: msg}) }
func (r *Recorder) Error(msg string)   { r.add(Notice{Level: LevelError, Message: msg}) }

func (r *Recorder) add(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Drain returns all collected notices and resets the recorder.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Tee fans each notice out to every given notifier.
func Tee(ns ...Notifier) Notifier { return tee(ns) }

type tee []Notifier

func (t tee) Success(msg string) {
	for _, n := range t {
		n.Success(msg)
	}
}

func (t tee) Error(msg string) {
	for _, n := range t {
		n.Error(msg)
	}
}

type logNotifier struct {
	log *zap.Logger
}

// NewLogNotifier routes notices to a zap logger, for headless runs.
func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Success(msg string) { n.log.Info(msg) }
func (n *logNotifier) Error(msg string)   { n.log.Warn(msg) }

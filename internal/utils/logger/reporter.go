package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reporter is the diagnostics sink handed to pipeline components.
// Reporter 是传递给流水线各组件的诊断输出接口。
type Reporter interface {
	Report(level zapcore.Level, msg string, keysAndValues ...interface{})
}

type zapReporter struct {
	log *zap.SugaredLogger
}

// NewReporter returns a Reporter backed by the given zap logger.
// NewReporter 返回基于 zap 日志记录器的 Reporter。
func NewReporter(l *zap.SugaredLogger) Reporter {
	if l == nil {
		l = Get(nil)
	}
	return &zapReporter{log: l}
}

func (r *zapReporter) Report(level zapcore.Level, msg string, keysAndValues ...interface{}) {
	r.log.Logw(level, msg, keysAndValues...)
}

// Condition is one diagnostic captured by a Recorder.
type Condition struct {
	Level  zapcore.Level
	Msg    string
	Fields map[string]interface{}
}

// Recorder keeps every reported condition in memory.
// Recorder 在内存中保存所有上报的诊断信息，主要用于测试。
type Recorder struct {
	mu         sync.Mutex
	conditions []Condition
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(level zapcore.Level, msg string, keysAndValues ...interface{}) {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions = append(r.conditions, Condition{Level: level, Msg: msg, Fields: fields})
}

// Conditions returns a copy of the recorded conditions in report order.
func (r *Recorder) Conditions() []Condition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Condition, len(r.conditions))
	copy(out, r.conditions)
	return out
}

// Count returns how many conditions were recorded with the given message.
func (r *Recorder) Count(msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.conditions {
		if c.Msg == msg {
			n++
		}
	}
	return n
}

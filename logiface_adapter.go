package dscheck

import (
	"fmt"
	"io"

	"github.com/joeycumines/logiface"
)

// logifaceEvent is a minimal logiface.Event implementation adapting
// dscheck's own LogEntry shape into logiface's Event/field model.
type logifaceEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	fields map[string]any
}

func (e *logifaceEvent) Level() logiface.Level { return e.level }

func (e *logifaceEvent) AddField(key string, val any) {
	if e.fields == nil {
		e.fields = make(map[string]any, 4)
	}
	e.fields[key] = val
}

func (e *logifaceEvent) AddMessage(msg string) bool {
	e.AddField("message", msg)
	return true
}

func (e *logifaceEvent) AddError(err error) bool {
	e.AddField("error", err.Error())
	return true
}

type logifaceEventFactory struct{}

func (logifaceEventFactory) NewEvent(level logiface.Level) *logifaceEvent {
	return &logifaceEvent{level: level}
}

type logifaceEventWriter struct {
	out io.Writer
}

func (w *logifaceEventWriter) Write(e *logifaceEvent) error {
	_, err := fmt.Fprintf(w.out, "%s category=%v fields=%v\n", e.level, e.fields["category"], e.fields)
	return err
}

// logifaceBridge adapts a logiface.Logger[*logifaceEvent] to dscheck's own
// Logger interface, so a caller already standardised on logiface can reuse
// it here instead of DefaultLogger.
type logifaceBridge struct {
	logger *logiface.Logger[*logifaceEvent]
}

// NewLogifaceWriterLogger builds a Logger that emits through logiface,
// writing rendered events to out.
func NewLogifaceWriterLogger(out io.Writer, level Level) Logger {
	l := logiface.New[*logifaceEvent](
		logiface.WithEventFactory[*logifaceEvent](logifaceEventFactory{}),
		logiface.WithWriter[*logifaceEvent](&logifaceEventWriter{out: out}),
		logiface.WithLevel[*logifaceEvent](toLogifaceLevel(level)),
	)
	return &logifaceBridge{logger: l}
}

func (b *logifaceBridge) IsEnabled(level Level) bool {
	return b.logger.Level().Enabled() && toLogifaceLevel(level) <= b.logger.Level()
}

func (b *logifaceBridge) Log(entry LogEntry) {
	builder := b.logger.Build(toLogifaceLevel(entry.Level))
	builder = builder.Str("category", entry.Category)
	if entry.RunID != 0 {
		builder = builder.Int("run", entry.RunID)
	}
	if entry.ProcID != 0 {
		builder = builder.Int("proc", entry.ProcID)
	}
	if entry.AtomicID != 0 {
		builder = builder.Int("atomic", entry.AtomicID)
	}
	if entry.Err != nil {
		builder = builder.Err(entry.Err)
	}
	builder.Log(entry.Message)
}

// toLogifaceLevel maps dscheck's four-level scheme onto logiface's syslog
// levels, the same mapping logiface.Level.String documents for loggers that
// only distinguish DEBUG/INFO/WARN/ERROR.
func toLogifaceLevel(level Level) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

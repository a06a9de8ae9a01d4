package action

import (
	"io"
	"log/slog"
	"time"
)

// OpEvent captures lightweight execution telemetry for one board operation.
type OpEvent struct {
	Name     string
	TaskIDs  int
	Duration time.Duration
	Success  bool
	Err      error
}

// Observer receives operation events.
type Observer interface {
	ObserveOp(event OpEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveOp(OpEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes operation events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveOp(event OpEvent) {
	attrs := []any{
		"op", event.Name,
		"task_count", event.TaskIDs,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.Error("board_op", attrs...)
		return
	}
	o.logger.Info("board_op", attrs...)
}

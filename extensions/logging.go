// Package extensions provides reference nexus.ManagerExtension
// implementations: structured logging and a topology-on-failure debug
// dump. Grounded on the teacher's extensions/logging.go and
// extensions/graph_debug.go.
package extensions

import (
	"log/slog"
	"time"

	"github.com/nexusfabric/nexus"
)

// LoggingExtension logs every submission, Hook.Link fusion, and isolation at
// Info (success) or Warn (failure); Hook.LinkMany fusions are not logged,
// since they call no extension method. Grounded on the teacher's LoggingExtension
// (extensions/logging.go), re-targeted from its print-based Wrap middleware
// to nexus.ManagerExtension's Before/After hook pairs and from fmt.Printf to
// structured log/slog.
type LoggingExtension struct {
	nexus.BaseExtension
	logger *slog.Logger
	start  time.Time
}

// NewLoggingExtension builds a LoggingExtension writing through logger.
func NewLoggingExtension(logger *slog.Logger) *LoggingExtension {
	return &LoggingExtension{logger: logger}
}

func (e *LoggingExtension) BeforeSubmit(op *nexus.SubmitOp) {
	e.start = time.Now()
	e.logger.Debug("nexus: submit starting", slog.Int("hooks", len(op.Hooks)))
}

func (e *LoggingExtension) AfterSubmit(op *nexus.SubmitOp) {
	dur := time.Since(e.start)
	if op.Err != nil {
		e.logger.Warn("nexus: submit failed",
			slog.Duration("duration", dur), slog.String("error", op.Err.Error()))
		return
	}
	e.logger.Info("nexus: submit committed",
		slog.Duration("duration", dur), slog.Int("affected", len(op.Affected)))
}

func (e *LoggingExtension) BeforeFusion(a, b *nexus.Hook) {
	e.logger.Debug("nexus: fusion starting", slog.String("a", a.ID()), slog.String("b", b.ID()))
}

func (e *LoggingExtension) AfterFusion(a, b *nexus.Hook, err error) {
	if err != nil {
		e.logger.Warn("nexus: fusion rejected",
			slog.String("a", a.ID()), slog.String("b", b.ID()), slog.String("error", err.Error()))
		return
	}
	e.logger.Info("nexus: fusion committed", slog.String("a", a.ID()), slog.String("b", b.ID()))
}

func (e *LoggingExtension) BeforeIsolate(h *nexus.Hook) {
	e.logger.Debug("nexus: isolate starting", slog.String("hook", h.ID()))
}

func (e *LoggingExtension) AfterIsolate(h *nexus.Hook, err error) {
	if err != nil {
		e.logger.Warn("nexus: isolate failed", slog.String("hook", h.ID()), slog.String("error", err.Error()))
		return
	}
	e.logger.Info("nexus: isolate committed", slog.String("hook", h.ID()))
}

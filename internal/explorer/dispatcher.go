package explorer

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// DeleteHandler deletes one category of tree item.
type DeleteHandler interface {
	// Name identifies the handler in logs and metrics.
	Name() string
	CanHandle(ec EditingContext, item TreeItem) bool
	Handle(ctx context.Context, ec EditingContext, item TreeItem) Outcome
}

// Dispatcher selects and invokes the first DeleteHandler that claims an item.
type Dispatcher struct {
	handlers []DeleteHandler
	logger   *slog.Logger
	metrics  *Metrics
}

// New creates a Dispatcher with the standard handlers registered in order:
// documents first, then representations.
func New(docs DocumentStore, logger *slog.Logger, metrics *Metrics) *Dispatcher {
	return NewDispatcher(
		logger,
		metrics,
		NewDocumentHandler(docs, logger),
		NewRepresentationHandler(logger),
	)
}

// NewDispatcher creates a Dispatcher over handlers in registration order.
// Metrics may be nil.
func NewDispatcher(logger *slog.Logger, metrics *Metrics, handlers ...DeleteHandler) *Dispatcher {
	return &Dispatcher{
		handlers: slices.Clone(handlers),
		logger:   logger.With("system", "explorer"),
		metrics:  metrics,
	}
}

// Handlers returns the registered handlers in dispatch order.
func (d *Dispatcher) Handlers() []DeleteHandler {
	return slices.Clone(d.handlers)
}

// Dispatch invokes the first handler whose CanHandle reports true and returns
// its Outcome. If none matches, it returns Failure(ErrUnsupportedItem).
func (d *Dispatcher) Dispatch(ctx context.Context, ec EditingContext, item TreeItem) Outcome {
	start := time.Now()

	for _, h := range d.handlers {
		if !h.CanHandle(ec, item) {
			continue
		}

		out := h.Handle(ctx, ec, item)
		d.record(h.Name(), item, out, time.Since(start))
		return out
	}

	out := Failure(ErrUnsupportedItem)
	d.record(unhandled, item, out, time.Since(start))
	return out
}

func (d *Dispatcher) record(handler string, item TreeItem, out Outcome, elapsed time.Duration) {
	d.metrics.observe(handler, out, elapsed)

	if out.Succeeded {
		msg := "tree item deleted"
		if out.ChangeKind == RepresentationToDelete {
			msg = "tree item deletion dispatched"
		}

		d.logger.Info(
			msg,
			"handler", handler,
			"kind", item.Kind,
			"id", item.ID,
			"change_kind", out.ChangeKind,
		)
		return
	}

	d.logger.Warn(
		"tree item deletion failed",
		"handler", handler,
		"kind", item.Kind,
		"id", item.ID,
		"error", out.Message,
	)
}

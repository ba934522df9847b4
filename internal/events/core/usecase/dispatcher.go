package usecase

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"calq-destination-service/internal/events/core/domain"
	"calq-destination-service/internal/events/core/mapper"
	"calq-destination-service/internal/events/core/ports"

	"github.com/google/uuid"
)

const (
	PathTrack    = "/track"
	PathProfile  = "/profile"
	PathTransfer = "/transfer"
)

var ErrInvalidEvent = errors.New("invalid event")

// Dispatcher maps one canonical event and hands it to the integration runtime.
// It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	settings   domain.Settings
	mapper     *mapper.Mapper
	submitter  ports.SubmitterPort
	deliveries ports.DeliveryLogPort
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

type Option func(*Dispatcher)

// WithDeliveryLog records the outcome of every call. Recording failures are
// logged and never change what the caller gets back.
func WithDeliveryLog(log ports.DeliveryLogPort) Option {
	return func(d *Dispatcher) { d.deliveries = log }
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// NewDispatcher validates settings up front so that a bad configuration never
// reaches the network.
func NewDispatcher(settings domain.Settings, submitter ports.SubmitterPort, opts ...Option) (*Dispatcher, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}

	d := &Dispatcher{
		settings:  settings,
		mapper:    mapper.New(settings),
		submitter: submitter,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dispatcher) Track(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	return d.deliver(ctx, domain.TypeTrack, PathTrack, e, d.mapper.Track)
}

// Identify sends a profile update. Without any recognised trait there is
// nothing to update, so it returns (nil, nil) and makes no request.
func (d *Dispatcher) Identify(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	if err := d.admit(e); err != nil {
		return nil, err
	}

	payload := d.mapper.Identify(e)
	if domain.IsEmpty(payload["properties"]) {
		d.logger.Debug("identify skipped, no traits to send", slog.String("actor", e.Actor()))
		d.record(ctx, domain.TypeIdentify, "", e, payload, nil, nil)
		return nil, nil
	}

	return d.send(ctx, domain.TypeIdentify, PathProfile, e, payload)
}

func (d *Dispatcher) Alias(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	return d.deliver(ctx, domain.TypeAlias, PathTransfer, e, d.mapper.Alias)
}

func (d *Dispatcher) Page(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	return d.view(ctx, domain.TypePage, e, d.mapper.Page)
}

func (d *Dispatcher) Screen(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	return d.view(ctx, domain.TypeScreen, e, d.mapper.Screen)
}

// Dispatch routes e by its Type.
func (d *Dispatcher) Dispatch(ctx context.Context, e *domain.Event) (*ports.Response, error) {
	if e == nil {
		return nil, ErrInvalidEvent
	}
	switch e.Type {
	case domain.TypeTrack:
		return d.Track(ctx, e)
	case domain.TypeIdentify:
		return d.Identify(ctx, e)
	case domain.TypeAlias:
		return d.Alias(ctx, e)
	case domain.TypePage:
		return d.Page(ctx, e)
	case domain.TypeScreen:
		return d.Screen(ctx, e)
	default:
		return nil, ErrInvalidEvent
	}
}

// view is the delivery path shared by page and screen: both are track calls on
// the Calq side.
func (d *Dispatcher) view(ctx context.Context, op domain.EventType, e *domain.Event, mapFn func(*domain.Event) domain.Payload) (*ports.Response, error) {
	return d.deliver(ctx, op, PathTrack, e, mapFn)
}

func (d *Dispatcher) deliver(
	ctx context.Context,
	op domain.EventType,
	path string,
	e *domain.Event,
	mapFn func(*domain.Event) domain.Payload,
) (*ports.Response, error) {
	if err := d.admit(e); err != nil {
		return nil, err
	}
	return d.send(ctx, op, path, e, mapFn(e))
}

func (d *Dispatcher) admit(e *domain.Event) error {
	if e == nil {
		return ErrInvalidEvent
	}
	if !d.settings.AcceptsChannel(e.Channel) {
		return domain.ErrChannelNotSupported
	}
	return nil
}

func (d *Dispatcher) send(
	ctx context.Context,
	op domain.EventType,
	path string,
	e *domain.Event,
	payload domain.Payload,
) (*ports.Response, error) {
	resp, err := d.submitter.Submit(ctx, http.MethodPost, path, payload)
	if err != nil {
		d.logger.Warn("delivery failed",
			slog.String("operation", string(op)),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	} else {
		d.logger.Debug("delivered",
			slog.String("operation", string(op)),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
	}

	d.record(ctx, op, path, e, payload, resp, err)
	return resp, err
}

func (d *Dispatcher) record(
	ctx context.Context,
	op domain.EventType,
	path string,
	e *domain.Event,
	payload domain.Payload,
	resp *ports.Response,
	sendErr error,
) {
	if d.deliveries == nil {
		return
	}

	rec := &domain.Delivery{
		ID:          d.newID(),
		Operation:   op,
		Path:        path,
		Actor:       e.Actor(),
		Payload:     redact(payload),
		DeliveredAt: d.now().UTC(),
	}
	rec.ActionName, _ = payload["action_name"].(string)
	if resp != nil {
		rec.StatusCode = resp.StatusCode
	}

	switch {
	case path == "":
		rec.Outcome = domain.OutcomeSkipped
	case sendErr != nil:
		rec.Outcome = domain.OutcomeFailed
		rec.Error = sendErr.Error()
	default:
		rec.Outcome = domain.OutcomeDelivered
	}

	if err := d.deliveries.RecordDelivery(ctx, rec); err != nil {
		d.logger.Warn("record delivery failed",
			slog.String("delivery_id", rec.ID),
			slog.String("error", err.Error()),
		)
	}
}

// redact returns a copy of p without the write key; delivery rows must not
// carry the destination credential.
func redact(p domain.Payload) domain.Payload {
	out := maps.Clone(p)
	delete(out, "write_key")
	return out
}

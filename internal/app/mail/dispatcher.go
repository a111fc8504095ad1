package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/mail"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/metrics"
	"go.uber.org/zap"
)

var ErrUnknownKind = errors.New("unknown job kind")

// HandlerFunc processes the payload of one job kind.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// Dispatcher routes jobs to the handler registered for their kind.
type Dispatcher struct {
	sender   domain.Sender
	handlers map[domain.Kind]HandlerFunc
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewDispatcher(sender domain.Sender, log *zap.Logger, m *metrics.Metrics) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		sender:   sender,
		handlers: make(map[domain.Kind]HandlerFunc),
		log:      log,
		metrics:  m,
	}
	d.Register(domain.KindRegistrationEmail, d.sendRegistrationEmail)
	return d
}

// Register installs h for kind, replacing any previous handler.
func (d *Dispatcher) Register(kind domain.Kind, h HandlerFunc) {
	d.handlers[kind] = h
}

func (d *Dispatcher) Dispatch(ctx context.Context, job domain.Job) (err error) {
	defer func() { d.metrics.Mail(string(job.Kind), err) }()

	h, ok := d.handlers[job.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, job.Kind)
	}
	return h(ctx, job.Payload)
}

func (d *Dispatcher) sendRegistrationEmail(ctx context.Context, payload json.RawMessage) error {
	var p domain.RegistrationEmail
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode registration payload: %w", err)
	}

	msg, err := RegistrationMessage(p)
	if err != nil {
		return err
	}

	d.log.Info("sending registration email", lg.Email("user", p.Email))
	return d.sender.Send(ctx, msg)
}

// RegistrationMessage renders the welcome email for a new user.
func RegistrationMessage(p domain.RegistrationEmail) (domain.Message, error) {
	html, err := renderHTML(registrationTemplate, struct{ Username string }{p.Username})
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		To:      p.Email,
		Subject: registrationSubject,
		Text:    registrationText.ExecuteString(map[string]interface{}{"username": p.Username}),
		HTML:    html,
	}, nil
}

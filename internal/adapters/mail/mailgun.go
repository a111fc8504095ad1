package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/mail"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"go.uber.org/zap"
)

// ErrDeliveryFailed marks a message that never reached Mailgun.
var ErrDeliveryFailed = errors.New("mail delivery failed")

type MailgunConfig struct {
	BaseURL  string
	Domain   string
	APIKey   string
	FromName string
	Timeout  time.Duration
}

// MailgunSender delivers messages through the Mailgun messages API.
type MailgunSender struct {
	cfg    MailgunConfig
	client *http.Client
	log    *zap.Logger
}

func NewMailgunSender(cfg MailgunConfig, log *zap.Logger) *MailgunSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MailgunSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

func (m *MailgunSender) endpoint() string {
	return strings.TrimRight(m.cfg.BaseURL, "/") + "/" + m.cfg.Domain + "/messages"
}

func (m *MailgunSender) from() string {
	return fmt.Sprintf("%s <postmaster@%s>", m.cfg.FromName, m.cfg.Domain)
}

// Send posts msg to Mailgun. Transport failures are logged and reported as
// ErrDeliveryFailed; a non-2xx answer is returned as a plain error.
func (m *MailgunSender) Send(ctx context.Context, msg domain.Message) error {
	form := url.Values{}
	form.Set("from", m.from())
	form.Add("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Text)
	if msg.HTML != "" {
		form.Set("html", msg.HTML)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build mailgun request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Warn("mailgun request failed", lg.Email("to", msg.To), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailgun: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

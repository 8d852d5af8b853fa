package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stitchcairo/storefront-backend/pkg/config"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

const defaultTimeout = 10 * time.Second

var errLoggerRequired = errors.New("email logger is required")

// Doer abstracts the HTTP transport for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends transactional emails through the EmailJS REST endpoint.
// EmailJS has no Go SDK, so the wrapper speaks its JSON API directly.
type Client struct {
	http     Doer
	endpoint string
	cfg      config.EmailConfig
	logger   *logger.Logger
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewClient initializes the EmailJS wrapper and validates the credentials.
func NewClient(cfg config.EmailConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("emailjs endpoint is required")
	}

	return &Client{
		http:     &http.Client{Timeout: defaultTimeout},
		endpoint: endpoint,
		cfg:      cfg,
		logger:   logg,
	}, nil
}

// WithHTTPClient swaps the transport. Used by tests.
func (c *Client) WithHTTPClient(doer Doer) *Client {
	if doer != nil {
		c.http = doer
	}
	return c
}

// Enabled reports whether the client has credentials to send.
func (c *Client) Enabled() bool {
	if c == nil {
		return false
	}
	return c.cfg.Enabled()
}

// Send posts a templated message to EmailJS. Template params carry the
// rendered order fields; the template itself lives in the EmailJS dashboard.
func (c *Client) Send(ctx context.Context, params map[string]string) error {
	if c == nil {
		return errors.New("email client is not initialized")
	}
	if !c.Enabled() {
		return pkgerrors.New(pkgerrors.CodeDependency, "email sending is not configured")
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding email payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building email request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emailjs send failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("emailjs send failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}

	c.logger.Info(c.logger.WithField(ctx, "template_id", c.cfg.TemplateID), "email sent")
	return nil
}

package email

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

// referenceHeader lets mail clients keep separate reports out of one thread.
const referenceHeader = "X-Entity-Ref-ID"

// Auth and validation rejections will fail the same way on every retry.
var permanentSendFailure = regexp.MustCompile(`(?i)\b(401|403|422)\b|unauthori[sz]ed|forbidden|validation|invalid|bad request`)

// Resend only accepts ASCII letters, digits, underscores and dashes in tags.
var tagUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ResendConfig configures the Resend sender.
type ResendConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	BaseURL   string // Empty uses the public API
}

// ResendClient sends report emails through Resend.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient builds a sender from its configuration.
func NewResendClient(cfg ResendConfig) (*ResendClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("resend api key is required")
	}

	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	return &ResendClient{client: client, from: from}, nil
}

// Send delivers one message. Failures come back as EmailError with a permanent or
// temporary code.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		Tags:    resendTags(input.Tags),
	}
	if input.Reference != "" {
		params.Headers = map[string]string{referenceHeader: input.Reference}
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent email failure", err)
		}
		return nil, domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
	}

	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

func isPermanentError(err error) bool {
	return err != nil && permanentSendFailure.MatchString(err.Error())
}

func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]resend.Tag, 0, len(names))
	for _, name := range names {
		value := tagUnsafe.ReplaceAllString(tags[name], "_")
		if value == "" {
			continue
		}
		out = append(out, resend.Tag{Name: tagUnsafe.ReplaceAllString(name, "_"), Value: value})
	}
	return out
}

var _ adapter.EmailSender = (*ResendClient)(nil)

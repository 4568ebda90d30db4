package mailer

import (
	"context"
	"sync"
	"usatag/src/config"
	"usatag/src/lib"
	"usatag/src/lib/aws"
)

type Transport interface {
	Name() string
	Send(ctx context.Context, input *lib.SendMailInput) error
}

type SMTPTransport struct{}

func (SMTPTransport) Name() string {
	return config.MAIL_SMTP
}

func (SMTPTransport) Send(ctx context.Context, input *lib.SendMailInput) error {
	return lib.SendMail(input)
}

type SESTransport struct {
	mu     sync.Mutex
	client aws.SESAPI
}

func (t *SESTransport) Name() string {
	return config.MAIL_SES
}

func (t *SESTransport) Send(ctx context.Context, input *lib.SendMailInput) error {
	t.mu.Lock()
	if t.client == nil {
		c, err := lib.AWSGetSESClient(ctx)
		if err != nil {
			t.mu.Unlock()
			return err
		}
		t.client = c
	}
	client := t.client
	t.mu.Unlock()
	return aws.SESSendMessage(ctx, client, input.From, input.To, input.Subject, input.Body)
}

func NewSESTransport(client aws.SESAPI) *SESTransport {
	return &SESTransport{client: client}
}

var (
	transportMu sync.Mutex
	transport   Transport
)

func GetMailTransport() Transport {
	transportMu.Lock()
	defer transportMu.Unlock()
	if transport != nil {
		return transport
	}
	if config.MailTransport() == config.MAIL_SES {
		transport = NewSESTransport(nil)
	} else {
		transport = SMTPTransport{}
	}
	return transport
}

// NewMailTransport Replace mail transport with custom implementation
func NewMailTransport(t Transport) Transport {
	transportMu.Lock()
	defer transportMu.Unlock()
	transport = t
	return transport
}

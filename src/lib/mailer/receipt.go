package mailer

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"
	"usatag/src/config"
	"usatag/src/lib"
	"usatag/src/types"
)

//go:embed templates/receipt.html
var templatesFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templatesFS, "templates/receipt.html"))

// Receipt is the data shown in the purchase notification. DateSS doubles as
// the subject line.
type Receipt struct {
	types.PurchaseDetails
	PurchaseID string
	DateSS     string
}

func RenderReceipt(email string, r Receipt) (string, error) {
	r.Email = email
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendReceipt renders and delivers the receipt to the internal inbox. It never
// returns an error; failures are logged.
func SendReceipt(email, amount string, r Receipt) {
	body, err := RenderReceipt(email, r)
	if err != nil {
		log.Printf("[Mailer] render error: %s\n", err.Error())
		return
	}
	input := &lib.SendMailInput{
		From:    config.EmailUser(),
		To:      []string{config.NotifyRecipient()},
		Subject: r.DateSS,
		Body:    body,
		Html:    true,
	}
	if err := GetMailTransport().Send(context.Background(), input); err != nil {
		log.Printf("[Mailer] Error sending email: %s\n", err.Error())
		return
	}
	log.Printf("[Mailer] Receipt sent for %s (amount %s)\n", email, amount)
}

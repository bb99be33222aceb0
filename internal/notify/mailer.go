package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/momomojo/happy-sourdough-sub002/config"
	"github.com/momomojo/happy-sourdough-sub002/internal/models"
	"github.com/momomojo/happy-sourdough-sub002/internal/workflow"
)

// Mailer sends transactional order emails. Implementations must not
// block order processing on failure; callers log and move on.
type Mailer interface {
	OrderConfirmation(order *models.Order) error
	StatusUpdate(order *models.Order, from, to workflow.Status) error
	OrderReady(order *models.Order) error
}

// NewMailer returns an SMTP mailer, or a log-only mailer when SMTP is
// not configured.
func NewMailer() Mailer {
	cfg := config.AppConfig.SMTP
	if cfg.Host == "" {
		log.Println("SMTP not configured, emails will be logged only")
		return &logMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}

func (m *smtpMailer) OrderConfirmation(order *models.Order) error {
	subject := fmt.Sprintf("Order %s confirmed - %s", order.OrderNo, config.AppConfig.Defaults.BakeryName)
	return m.send(order.CustomerEmail, subject, confirmationBody(order))
}

func (m *smtpMailer) StatusUpdate(order *models.Order, from, to workflow.Status) error {
	subject := fmt.Sprintf("Order %s update: %s", order.OrderNo, workflow.StatusLabel(to))
	return m.send(order.CustomerEmail, subject, statusBody(order, from, to))
}

func (m *smtpMailer) OrderReady(order *models.Order) error {
	subject := fmt.Sprintf("Order %s is ready!", order.OrderNo)
	return m.send(order.CustomerEmail, subject, readyBody(order))
}

// logMailer writes the rendered emails to the log instead of sending.
type logMailer struct{}

func (m *logMailer) OrderConfirmation(order *models.Order) error {
	log.Printf("EMAIL (confirmation) to %s:\n%s", order.CustomerEmail, confirmationBody(order))
	return nil
}

func (m *logMailer) StatusUpdate(order *models.Order, from, to workflow.Status) error {
	log.Printf("EMAIL (status) to %s:\n%s", order.CustomerEmail, statusBody(order, from, to))
	return nil
}

func (m *logMailer) OrderReady(order *models.Order) error {
	log.Printf("EMAIL (ready) to %s:\n%s", order.CustomerEmail, readyBody(order))
	return nil
}

func confirmationBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hello %s,\n\nThank you! Your order %s has been received.\n\nItems:\n",
		order.CustomerName, order.OrderNo))
	for _, item := range order.Items {
		name := item.Product.Name
		if item.Variant != nil {
			name += " (" + item.Variant.Name + ")"
		}
		b.WriteString(fmt.Sprintf("  - %s x %d - $%.2f\n", name, item.Quantity, item.Total))
	}
	b.WriteString(fmt.Sprintf("\nSubtotal: $%.2f\n", order.Subtotal))
	if order.DiscountAmount > 0 {
		b.WriteString(fmt.Sprintf("Discount: -$%.2f\n", order.DiscountAmount))
	}
	if order.FulfillmentType == string(workflow.FulfillmentDelivery) {
		b.WriteString(fmt.Sprintf("Delivery fee: $%.2f\n", order.DeliveryFee))
	}
	if order.TaxAmount > 0 {
		b.WriteString(fmt.Sprintf("Tax: $%.2f\n", order.TaxAmount))
	}
	b.WriteString(fmt.Sprintf("Total: $%.2f\n", order.Total))
	if slot := order.TimeSlot; slot != nil {
		b.WriteString(fmt.Sprintf("\nScheduled for %s between %s and %s.\n",
			slot.SlotDate.Format("Monday, Jan 2"), slot.StartTime, slot.EndTime))
	}
	b.WriteString("\nWe will email you as your order moves through the bakery.\n")
	return b.String()
}

func statusBody(order *models.Order, from, to workflow.Status) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hello %s,\n\nYour order %s is now: %s\n",
		order.CustomerName, order.OrderNo, workflow.StatusLabel(to)))
	if eta := workflow.EstimatedTimeRemaining(to, workflow.FulfillmentType(order.FulfillmentType)); eta != "" {
		b.WriteString(eta + ".\n")
	}
	return b.String()
}

func readyBody(order *models.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hello %s,\n\nGood news - order %s is ready!\n",
		order.CustomerName, order.OrderNo))
	if order.FulfillmentType == string(workflow.FulfillmentPickup) {
		b.WriteString("Come by during opening hours to pick it up.\n")
	} else {
		b.WriteString("It will be handed to the courier shortly.\n")
	}
	return b.String()
}

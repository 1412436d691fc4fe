package services

import (
	"context"
	"log"

	"gummy-store/models"
)

type Notifier interface {
	OrderPaid(ctx context.Context, order *models.Order)
}

type orderMailer interface {
	SendOrderPaidEmail(toEmail, fullName string, order *models.Order) error
}

// MailNotifier emails the buyer once their order is paid. Without SMTP
// configuration it only logs.
type MailNotifier struct {
	mailer    orderMailer
	addresses AddressStore
}

func NewMailNotifier(mailer *models.EmailService, addresses AddressStore) *MailNotifier {
	n := &MailNotifier{addresses: addresses}
	if mailer != nil {
		n.mailer = mailer
	}
	return n
}

func (n *MailNotifier) OrderPaid(ctx context.Context, order *models.Order) {
	if n.mailer == nil {
		log.Printf("[notify] order %s paid (smtp not configured)", order.ID)
		return
	}

	address, err := n.addresses.FindByID(ctx, order.AddressID)
	if err != nil {
		log.Printf("[notify] load address for order %s: %v", order.ID, err)
		return
	}

	if err := n.mailer.SendOrderPaidEmail(address.Email, address.FullName, order); err != nil {
		log.Printf("[notify] order %s: %v", order.ID, err)
		return
	}
	log.Printf("[notify] confirmation sent for order %s", order.ID)
}

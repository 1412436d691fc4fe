package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	return &EmailService{dialer: gomail.NewDialer(smtpHost, port, smtpUser, smtpPass), from: from}, nil
}

func (s *EmailService) SendOrderPaidEmail(toEmail, fullName string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Pagamento confirmado - Pedido %s", shortOrderID(order)))
	m.SetBody("text/html", OrderPaidEmailBody(fullName, order))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func OrderPaidEmailBody(fullName string, order *Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #FF3D00; text-align: center; }
        .order-box { background-color: #fff3ef; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Droga Clara</div>
        <h2 style="color: #333;">Pagamento confirmado</h2>
        <p>Olá %s, recebemos o pagamento do seu pedido!</p>
        <div class="order-box">
            <p><strong>Pedido:</strong> %s</p>
            <p><strong>Produto:</strong> %s (%s) x%d</p>
            <p><strong>Total:</strong> R$ %s</p>
        </div>
        <p>Prazo de entrega: 5-7 dias úteis.</p>
        <div class="footer">
            <p>Este é um e-mail automático. Por favor, não responda.</p>
        </div>
    </div>
</body>
</html>
	`, fullName, shortOrderID(order), order.ProductName, order.ProductFlavor, order.Quantity, FormatBRL(order.TotalPrice))
}

func shortOrderID(order *Order) string {
	id := order.ID.String()
	return "#" + id[:8]
}

package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBoletoNotice(toEmail, contactName, amountFormatted, dueDateFormatted, barcode string) error
	SendFreeform(toEmail, contactName, content string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendBoletoNotice(toEmail, contactName, amountFormatted, dueDateFormatted, barcode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Novo boleto disponível")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Olá, %s!</h2>
			<p>Um novo boleto foi gerado para você:</p>
			<p><strong>Valor:</strong> %s</p>
			<p><strong>Vencimento:</strong> %s</p>
			<p><strong>Linha digitável:</strong></p>
			<p style="font-family: monospace; letter-spacing: 2px;">%s</p>
			<p>Se você não reconhece esta cobrança, entre em contato conosco.</p>
		</div>
	`, contactName, amountFormatted, dueDateFormatted, barcode)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}

func (s *emailService) SendFreeform(toEmail, contactName, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Você recebeu uma mensagem")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Olá, %s!</h2>
			<p>%s</p>
		</div>
	`, contactName, content)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}

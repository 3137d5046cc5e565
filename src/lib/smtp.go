package lib

import (
	"log"

	"hms/src/config"

	"github.com/wneessen/go-mail"
)

func GetSMTPClient() (*mail.Client, error) {
	cfg := config.Load()
	c, err := mail.NewClient(
		cfg.SMTPHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

type SendMailInput struct {
	To         string
	ToName     string
	Subject    string
	Body       string
	Html       bool
	Attachment string
}

func SendMail(inputParams *SendMailInput) error {
	cfg := config.Load()
	c, err := GetSMTPClient()
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.FromFormat(cfg.MailFromName, cfg.MailFrom); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
	}
	if err := msg.AddToFormat(inputParams.ToName, inputParams.To); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
		return err
	}
	msg.Subject(inputParams.Subject)
	if inputParams.Html {
		msg.SetBodyString(mail.TypeTextHTML, inputParams.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, inputParams.Body)
	}
	if inputParams.Attachment != "" {
		msg.AttachFile(inputParams.Attachment)
	}
	if err := c.DialAndSend(msg); err != nil {
		return err
	}
	return nil
}

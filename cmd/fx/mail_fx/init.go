package mail_fx

import (
	"log"

	"go.uber.org/fx"

	"bizlens/internal/config"
	"bizlens/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg config.Config) services.MailServiceInterface {
	mailService, err := services.NewSMTPMailService(cfg.SMTP)
	if err != nil {
		// Mail is best effort everywhere it is used; boot anyway.
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}
	return mailService
}

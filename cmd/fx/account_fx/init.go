package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"bizlens/internal/repositories"
	"bizlens/internal/services"
	mem "bizlens/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	resetTokens mem.ResetTokenStore,
	mailService services.MailServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, resetTokens, mailService)
}

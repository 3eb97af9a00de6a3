package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	mem "bizlens/pkg/memcache"
	"bizlens/pkg/utils"
)

const (
	resetTokenTTL      = 15 * time.Minute
	creditHistoryLimit = 50
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (response_models.AccountLoginResponse, error)
	CreateAccount(request request_models.SignUpRequest, ctx context.Context) error
	GetProfile(accountID string, ctx context.Context) (response_models.AccountResponse, error)
	UpdateProfile(accountID uuid.UUID, request request_models.UpdateProfileRequest, ctx context.Context) error
	RequestPasswordReset(request request_models.RequestForgotPassword, ctx context.Context) error
	ResetPassword(request request_models.ForgotPasswordRequest, ctx context.Context) error
	GetCreditHistory(accountID uuid.UUID, ctx context.Context) (response_models.CreditHistoryResponse, error)
	ListAccounts(page int, pageSize int, ctx context.Context) ([]response_models.AccountResponse, int64, error)
}

type AccountService struct {
	accountRepository repositories.AccountRepository
	resetTokens       mem.ResetTokenStore
	mailService       MailServiceInterface
}

func NewAccountService(
	accountRepository repositories.AccountRepository,
	resetTokens mem.ResetTokenStore,
	mailService MailServiceInterface,
) AccountServiceInterface {
	return &AccountService{
		accountRepository: accountRepository,
		resetTokens:       resetTokens,
		mailService:       mailService,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	account, err := a.accountRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		log.Printf("Error fetching account by email: %v", err)
		return response_models.AccountLoginResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountLoginResponse{}, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role, account.Level)
	if err != nil {
		log.Printf("Error creating token: %v", err)
		return response_models.AccountLoginResponse{}, utils.ErrInvalidCredentials
	}

	log.Printf("Login process took %s", time.Since(startTime))

	return response_models.AccountLoginResponse{
		Token:   token,
		Role:    account.Role,
		Level:   account.Level,
		Credits: account.Credits,
	}, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest, ctx context.Context) error {
	existing, err := a.accountRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		log.Printf("Error checking existing account: %v", err)
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",
		Level:        1,
	}

	if _, err := a.accountRepository.Create(ctx, newAccount); err != nil {
		log.Printf("Error creating account: %v", err)
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(accountID string, ctx context.Context) (response_models.AccountResponse, error) {
	account, err := a.accountRepository.GetByID(ctx, accountID)
	if err != nil {
		log.Printf("Error fetching account %s: %v", accountID, err)
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	return toAccountResponse(*account), nil
}

func (a *AccountService) UpdateProfile(accountID uuid.UUID, request request_models.UpdateProfileRequest, ctx context.Context) error {
	if err := a.accountRepository.UpdateProfile(ctx, accountID, request.Name); err != nil {
		log.Printf("Error updating profile for %s: %v", accountID, err)
		return translateNotFound(err, utils.ErrAccountNotFound)
	}
	return nil
}

// RequestPasswordReset answers success for unknown emails as well, so the
// endpoint cannot be used to probe which addresses have accounts.
func (a *AccountService) RequestPasswordReset(request request_models.RequestForgotPassword, ctx context.Context) error {
	account, err := a.accountRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		log.Printf("Error fetching account for reset: %v", err)
		return utils.ErrDatabaseError
	}
	if account == nil {
		log.Printf("Password reset requested for unknown email")
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(account.Email, token); err != nil {
		log.Printf("Error sending reset mail: %v", err)
		return utils.ErrUpstreamFailed
	}

	return nil
}

func (a *AccountService) ResetPassword(request request_models.ForgotPasswordRequest, ctx context.Context) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrInvalidResetToken
	}

	account, err := a.accountRepository.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("Error fetching account for password reset: %v", err)
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		log.Printf("Error hashing new password: %v", err)
		return utils.ErrDatabaseError
	}

	if err := a.accountRepository.UpdatePassword(ctx, account.ID, hashedPassword); err != nil {
		log.Printf("Error updating password for %s: %v", account.ID, err)
		return translateNotFound(err, utils.ErrAccountNotFound)
	}

	return nil
}

func (a *AccountService) GetCreditHistory(accountID uuid.UUID, ctx context.Context) (response_models.CreditHistoryResponse, error) {
	account, err := a.accountRepository.GetByID(ctx, accountID.String())
	if err != nil {
		log.Printf("Error fetching account %s: %v", accountID, err)
		return response_models.CreditHistoryResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.CreditHistoryResponse{}, utils.ErrAccountNotFound
	}

	entries, err := a.accountRepository.ListCreditHistory(ctx, accountID, creditHistoryLimit)
	if err != nil {
		log.Printf("Error fetching credit history for %s: %v", accountID, err)
		return response_models.CreditHistoryResponse{}, utils.ErrDatabaseError
	}

	history := response_models.CreditHistoryResponse{
		Balance: account.Credits,
		Level:   account.Level,
		Entries: make([]response_models.CreditEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		item := response_models.CreditEntry{
			Delta:     entry.Delta,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		}
		if entry.ReviewID != nil {
			item.ReviewID = entry.ReviewID.String()
		}
		history.Entries = append(history.Entries, item)
	}

	return history, nil
}

func (a *AccountService) ListAccounts(page int, pageSize int, ctx context.Context) ([]response_models.AccountResponse, int64, error) {
	offset := (page - 1) * pageSize

	accounts, total, err := a.accountRepository.ListAll(ctx, offset, pageSize)
	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		return nil, 0, utils.ErrDatabaseError
	}

	responses := make([]response_models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toAccountResponse(account))
	}
	return responses, total, nil
}

package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/gmstracker/backend/internal/constant"
	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/pkg/session"
	"github.com/gmstracker/backend/internal/repo"
)

type Account struct {
	AccountRepo *repo.Account
	Sessions    *session.Store
}

func NewAccount(accountRepo *repo.Account, sessions *session.Store) *Account {
	return &Account{
		AccountRepo: accountRepo,
		Sessions:    sessions,
	}
}

func (s *Account) GetAccountById(ctx context.Context, accountId int) (*model.Account, error) {
	return s.AccountRepo.GetAccountById(ctx, accountId)
}

// tokenFromRequest extracts the session token from the Authorization
// header (Bearer scheme) or, failing that, the session cookie.
func tokenFromRequest(ctx *fiber.Ctx) string {
	auth := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ctx.Cookies(constant.SessionTokenCookieKey)
}

// GetAccountFromRequest resolves the caller's session to an account.
// Banned accounts resolve but are rejected.
func (s *Account) GetAccountFromRequest(ctx *fiber.Ctx) (*model.Account, error) {
	token := tokenFromRequest(ctx)
	if token == "" {
		return nil, pgerr.ErrUnauthorized
	}

	sess, err := s.Sessions.Get(token)
	if err != nil {
		return nil, pgerr.ErrUnauthorized
	}

	account, err := s.AccountRepo.GetAccountById(ctx.Context(), sess.AccountID)
	if err != nil {
		log.Warn().Int("accountId", sess.AccountID).Err(err).Msg("failed to resolve session account")
		return nil, pgerr.ErrUnauthorized
	}
	if account.Banned {
		return nil, pgerr.ErrForbidden.Msg("account is banned")
	}
	return account, nil
}

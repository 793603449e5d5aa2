package user

import (
	"context"
	"errors"
	"time"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TokenIssuer interface {
	GeneratePair(userID uint, email, role string) (*auth.TokenPair, error)
	GenerateAccess(claims *auth.CustomClaims) (string, error)
	Parse(tokenStr string, expected auth.TokenType) (*auth.CustomClaims, error)
}

// Notifier sends account emails. Implementations must not fail the caller.
type Notifier interface {
	PasswordReset(ctx context.Context, to, token string)
	PasswordChanged(ctx context.Context, to string)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	RegisterVendor(ctx context.Context, in VendorRegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*User, error)
	ListVendorCompanies(ctx context.Context) ([]*VendorCompany, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

type service struct {
	repo     Repository
	tokens   TokenIssuer
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer, notifier Notifier) Service {
	return &service{repo: repo, tokens: tokens, notifier: notifier, now: time.Now}
}

func validatePasswords(password, confirm string) *apperror.Error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort.With(MinPasswordLength)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func (s *service) issue(ctx context.Context, u *User) (*AuthResult, error) {
	pair, err := s.tokens.GeneratePair(u.ID, u.Email, u.Role)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to generate tokens", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}
	return &AuthResult{User: u, Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Register"))

	email := utils.NormalizeEmail(in.Email)
	var emailErr *apperror.Error
	if !utils.ValidEmail(email) {
		emailErr = ErrInvalidEmail
	}
	if err := apperror.Join(emailErr, validatePasswords(in.Password, in.PasswordConfirm)); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{Email: email, PasswordHash: hashed, Role: RoleCustomer}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return s.issue(ctx, u)
}

func (s *service) RegisterVendor(ctx context.Context, in VendorRegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "RegisterVendor"))

	email := utils.NormalizeEmail(in.Email)
	if !utils.ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswords(in.Password, in.PasswordConfirm); err != nil {
		return nil, err
	}

	company, err := s.repo.GetActiveCompany(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.VerifyAccessCode(in.CompanyAccessCode) {
		log.Warn("invalid company access code", zap.Uint("company_id", company.ID))
		return nil, ErrInvalidAccessCode
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Email:             email,
		PasswordHash:      hashed,
		Role:              RoleVendor,
		VendorCompanyID:   &company.ID,
		VendorCompanyName: &company.Name,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info("vendor registered", zap.Uint("user_id", u.ID), zap.Uint("company_id", company.ID))
	return s.issue(ctx, u)
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.IsActive || !CheckPasswordHash(password, u.PasswordHash) {
		logger.FromCtx(ctx).Info("login rejected", zap.Uint("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	// role and email come from the database, not the old token
	claims.Email = u.Email
	claims.Role = u.Role
	access, err := s.tokens.GenerateAccess(claims)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Access: access}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*User, error) {
	if params.Phone != nil && *params.Phone != "" && !utils.ValidPhone(*params.Phone) {
		return nil, ErrInvalidPhone
	}
	return s.repo.UpdateProfile(ctx, id, params)
}

func (s *service) ListVendorCompanies(ctx context.Context) ([]*VendorCompany, error) {
	return s.repo.ListActiveCompanies(ctx)
}

// ForgotPassword never reveals whether the email is registered: unknown
// addresses return nil just like known ones.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "ForgotPassword"))

	email = utils.NormalizeEmail(email)
	if !utils.ValidEmail(email) {
		return ErrInvalidEmail
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.InvalidateResetTokens(ctx, u.ID); err != nil {
		return err
	}

	token := &PasswordResetToken{
		UserID:    u.ID,
		Token:     uuid.New(),
		ExpiresAt: s.now().Add(ResetTokenTTL),
	}
	if err := s.repo.CreateResetToken(ctx, token); err != nil {
		return err
	}

	s.notifier.PasswordReset(ctx, u.Email, token.Token.String())
	log.Info("password reset token issued", zap.Uint("user_id", u.ID))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "ResetPassword"))

	if err := validatePasswords(in.Password, in.PasswordConfirm); err != nil {
		return err
	}

	token, err := s.repo.GetResetToken(ctx, in.Token)
	if err != nil {
		return err
	}
	if !token.IsValid(s.now()) {
		if token.IsUsed {
			return ErrResetTokenUsed
		}
		return ErrResetTokenExpired
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return err
	}

	if err := s.repo.ConsumeResetToken(ctx, token, hashed); err != nil {
		return err
	}

	log.Info("password reset", zap.Uint("user_id", token.UserID))

	u, err := s.repo.FindByID(ctx, token.UserID)
	if err != nil {
		log.Warn("password changed but user lookup for confirmation failed", zap.Error(err))
		return nil
	}
	s.notifier.PasswordChanged(ctx, u.Email)
	return nil
}

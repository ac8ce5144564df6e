package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

const minPasswordLength = 6

// AuthService defines the interface for account and session logic
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*dto.SessionContextResponse, error)
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type authServiceImpl struct {
	profileRepo repository.ProfileRepository
	companyRepo repository.CompanyRepository
	tokens      *TokenIssuer
	revocations RevocationStore
	logger      *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	profileRepo repository.ProfileRepository,
	companyRepo repository.CompanyRepository,
	tokens *TokenIssuer,
	revocations RevocationStore,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// normalizeEmail lowercases and validates an address
func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}

// SignUp creates a profile and credential and signs the user in
func (s *authServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	email, ok := normalizeEmail(req.Email)
	if !ok {
		return nil, response.NewValidationError("Please enter a valid email address.", "")
	}
	if len(req.Password) < minPasswordLength {
		return nil, response.NewValidationError("Password must be at least 6 characters long.", "")
	}

	if _, err := s.profileRepo.FindByEmail(ctx, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists,
			"An account with this email already exists. Please try signing in instead.", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError("Failed to check existing account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("Failed to hash password", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "User"
	}
	profile := &domain.Profile{Name: name, Email: email}
	credential := &domain.Credential{PasswordHash: string(hash)}

	if err := s.profileRepo.Create(ctx, profile, credential); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists,
				"An account with this email already exists. Please try signing in instead.", "")
		}
		return nil, internalError("Failed to create account", err)
	}

	s.logger.Info("Account created", zap.String("user_id", profile.ID.String()))
	return s.issueSession(profile)
}

// SignIn verifies the password and issues a session
func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error) {
	invalid := response.NewUnauthorizedError("Invalid email or password. Please check your credentials and try again.", "")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	profile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, internalError("Failed to load account", err)
	}

	credential, err := s.profileRepo.FindCredential(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, internalError("Failed to load account", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	s.logger.Info("User signed in", zap.String("user_id", profile.ID.String()))
	return s.issueSession(profile)
}

func (s *authServiceImpl) issueSession(profile *domain.Profile) (*dto.SessionResponse, error) {
	token, claims, err := s.tokens.Issue(profile.ID, profile.Email)
	if err != nil {
		return nil, internalError("Failed to issue session", err)
	}
	return &dto.SessionResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        toUserResponse(profile),
	}, nil
}

// SignOut revokes the token until it would have expired
func (s *authServiceImpl) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return response.NewUnauthorizedError("Invalid or expired token", "")
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return internalError("Failed to sign out", err)
	}
	s.logger.Info("User signed out", zap.String("user_id", claims.Subject))
	return nil
}

// GetSession returns the token's user with every company membership.
// A token whose profile row is missing gets one named "User".
func (s *authServiceImpl) GetSession(ctx context.Context, token string) (*dto.SessionContextResponse, error) {
	claims, err := s.validClaims(ctx, token)
	if err != nil {
		return nil, response.NewUnauthorizedError("Invalid or expired token", "")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, response.NewUnauthorizedError("Invalid or expired token", "")
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalError("Failed to load profile", err)
		}
		profile = &domain.Profile{BaseModel: domain.BaseModel{ID: userID}, Name: "User", Email: claims.Email}
		if err := s.profileRepo.EnsureProfile(ctx, profile); err != nil {
			s.logger.Warn("Failed to create missing profile", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	companies, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to load companies", err)
	}

	resp := &dto.SessionContextResponse{
		User:      toUserResponse(profile),
		Companies: make([]dto.CompanyResponse, 0, len(companies)),
	}
	for _, c := range companies {
		resp.Companies = append(resp.Companies, *toCompanyResponse(c))
	}
	return resp, nil
}

// ValidateToken returns the user of a valid, unrevoked token
func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.validClaims(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}

func (s *authServiceImpl) validClaims(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

func toUserResponse(p *domain.Profile) dto.UserResponse {
	return dto.UserResponse{ID: p.ID, Email: p.Email, Name: p.Name}
}

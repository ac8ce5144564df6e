package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

const invitationSubject = "You've been invited to join TeamUp!"

var accessCodePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

// errNotForCaller aborts a redemption whose target is another user
var errNotForCaller = errors.New("invitation targets another user")

// InvitationSettings configures issuance
type InvitationSettings struct {
	AppBaseURL            string
	DefaultExpiry         time.Duration // zero means invitations never expire
	AccessCodeMaxAttempts int
}

// InvitationService defines the interface for invitation issuance and redemption
type InvitationService interface {
	InviteByEmail(ctx context.Context, inviterID, companyID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error)
	IssueTargetedAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, email string, role string) (*dto.InvitationResponse, error)
	IssueOpenAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, role string) (*dto.InvitationResponse, error)
	ListPendingInvitations(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error)
	CancelInvitation(ctx context.Context, userID, companyID, invitationID uuid.UUID) error
	ListAccessCodes(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error)
	DeleteAccessCode(ctx context.Context, userID, companyID, invitationID uuid.UUID) error
	GetInvitationByToken(ctx context.Context, token string) (*dto.InvitationPreviewResponse, error)
	AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.RedemptionResponse, error)
	ValidateAccessCode(ctx context.Context, userID uuid.UUID, code string) (*dto.RedemptionResponse, error)
}

type invitationServiceImpl struct {
	invitationRepo repository.InvitationRepository
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	profileRepo    repository.ProfileRepository
	membership     MembershipService
	email          client.EmailClient
	settings       InvitationSettings
	metrics        *metrics.Metrics
	logger         *zap.Logger

	generateCode func() (string, error)
	now          func() time.Time
}

// NewInvitationService creates a new instance of InvitationService
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	profileRepo repository.ProfileRepository,
	membership MembershipService,
	email client.EmailClient,
	settings InvitationSettings,
	m *metrics.Metrics,
	logger *zap.Logger,
) InvitationService {
	if settings.AccessCodeMaxAttempts < 1 {
		settings.AccessCodeMaxAttempts = 5
	}
	return &invitationServiceImpl{
		invitationRepo: invitationRepo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		profileRepo:    profileRepo,
		membership:     membership,
		email:          email,
		settings:       settings,
		metrics:        m,
		logger:         logger,
		generateCode:   generateAccessCode,
		now:            time.Now,
	}
}

// generateAccessCode returns 4 random bytes as 8 uppercase hex characters
func generateAccessCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// maskCode keeps the first two characters of a code for logs
func maskCode(code string) string {
	if len(code) <= 2 {
		return "**"
	}
	return code[:2] + strings.Repeat("*", len(code)-2)
}

func parseRole(raw string) (domain.Role, error) {
	if raw == "" {
		return domain.RoleMember, nil
	}
	role := domain.Role(raw)
	if !role.IsValid() {
		return "", response.NewValidationError("Role must be Admin, Member or Viewer", "")
	}
	return role, nil
}

func (s *invitationServiceImpl) expiration() *time.Time {
	if s.settings.DefaultExpiry <= 0 {
		return nil
	}
	t := s.now().Add(s.settings.DefaultExpiry)
	return &t
}

// InviteByEmail stores a pending invitation and emails its accept link.
// A failed send keeps the row and reports EMAIL_DELIVERY_FAILED as a warning.
func (s *invitationServiceImpl) InviteByEmail(ctx context.Context, inviterID, companyID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
	if _, err := s.membership.RequireRole(ctx, inviterID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		return nil, response.NewValidationError("Please enter a valid email address.", "")
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if _, err := s.membershipRepo.FindRole(ctx, profile.ID, companyID); err == nil {
			return nil, response.NewAppError(response.ErrCodeAlreadyMember, "This user is already a member of this company", "")
		} else if !isNotFound(err) {
			return nil, internalError("Failed to check membership", err)
		}
	case !isNotFound(err):
		return nil, internalError("Failed to look up user", err)
	}

	pending, err := s.invitationRepo.HasPendingForEmail(ctx, companyID, email)
	if err != nil {
		return nil, internalError("Failed to check pending invitations", err)
	}
	if pending {
		return nil, response.NewAppError(response.ErrCodePendingInvitationExists,
			"An invitation has already been sent to this email", "")
	}

	invitation := &domain.CompanyInvitation{
		CompanyID:      companyID,
		Email:          &email,
		Role:           role,
		Status:         domain.InvitationStatusPending,
		Token:          uuid.NewString(),
		InvitedBy:      inviterID,
		ExpirationDate: s.expiration(),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		s.logger.Error("Failed to create invitation", zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, internalError("Failed to create invitation", err)
	}
	s.metrics.IncrementInvitationIssued("email")

	result := &dto.InvitationCreatedResponse{Invitation: *toInvitationResponse(invitation)}
	if err := s.sendInvitationEmail(ctx, invitation); err != nil {
		s.logger.Warn("Invitation stored but email was not delivered",
			zap.String("company_id", companyID.String()),
			zap.String("invitation_id", invitation.ID.String()),
			zap.Error(err))
		result.Warning = response.ErrCodeEmailDeliveryFailed
	}

	s.logger.Info("Invitation created",
		zap.String("company_id", companyID.String()),
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("role", string(role)))
	return result, nil
}

func (s *invitationServiceImpl) sendInvitationEmail(ctx context.Context, invitation *domain.CompanyInvitation) error {
	companyName := "a team"
	if company, err := s.companyRepo.FindByID(ctx, invitation.CompanyID); err == nil {
		companyName = company.Name
	}
	link := strings.TrimSuffix(s.settings.AppBaseURL, "/") + "/accept?token=" + url.QueryEscape(invitation.Token)

	body := fmt.Sprintf(`<h2>You've been invited to join %s on TeamUp</h2>
<p>You have been invited as a <strong>%s</strong>.</p>
<p><a href="%s">Accept the invitation</a></p>
<p>If the button does not work, copy this link into your browser:<br>%s</p>`,
		html.EscapeString(companyName), html.EscapeString(string(invitation.Role)),
		html.EscapeString(link), html.EscapeString(link))

	return s.email.Send(ctx, client.EmailMessage{
		To:      []string{*invitation.Email},
		Subject: invitationSubject,
		HTML:    body,
	})
}

// IssueTargetedAccessCode mints a code only the profile with email may redeem
func (s *invitationServiceImpl) IssueTargetedAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, email string, role string) (*dto.InvitationResponse, error) {
	if _, err := s.membership.RequireRole(ctx, inviterID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	normalized, ok := normalizeEmail(email)
	if !ok {
		return nil, response.NewValidationError("Please enter a valid email address.", "")
	}
	r, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "Failed to look up user")
	}
	if _, err := s.membershipRepo.FindRole(ctx, profile.ID, companyID); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyMember, "This user is already a member of this company", "")
	} else if !isNotFound(err) {
		return nil, internalError("Failed to check membership", err)
	}

	pending, err := s.invitationRepo.HasPendingCodeForUser(ctx, companyID, profile.ID)
	if err != nil {
		return nil, internalError("Failed to check pending access codes", err)
	}
	if pending {
		return nil, response.NewAppError(response.ErrCodePendingInvitationExists,
			"This user already has a pending access code for this company", "")
	}

	userID := profile.ID
	invitation := &domain.CompanyInvitation{
		CompanyID: companyID,
		Email:     &profile.Email,
		UserID:    &userID,
		Role:      r,
		InvitedBy: inviterID,
	}
	if err := s.insertWithCode(ctx, invitation); err != nil {
		return nil, err
	}
	s.metrics.IncrementInvitationIssued("targeted_code")

	s.logger.Info("Access code issued",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", userID.String()),
		zap.String("code", maskCode(*invitation.AccessCode)))
	return toInvitationResponse(invitation), nil
}

// IssueOpenAccessCode mints a code anyone holding it may redeem once
func (s *invitationServiceImpl) IssueOpenAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, role string) (*dto.InvitationResponse, error) {
	if _, err := s.membership.RequireRole(ctx, inviterID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	r, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	invitation := &domain.CompanyInvitation{
		CompanyID: companyID,
		Role:      r,
		InvitedBy: inviterID,
	}
	if err := s.insertWithCode(ctx, invitation); err != nil {
		return nil, err
	}
	s.metrics.IncrementInvitationIssued("open_code")

	s.logger.Info("Open access code issued",
		zap.String("company_id", companyID.String()),
		zap.String("code", maskCode(*invitation.AccessCode)))
	return toInvitationResponse(invitation), nil
}

// insertWithCode stores the invitation under a fresh access code. A code that
// exists, or that loses an insert race on the unique index, is regenerated
// up to AccessCodeMaxAttempts times.
func (s *invitationServiceImpl) insertWithCode(ctx context.Context, invitation *domain.CompanyInvitation) error {
	invitation.Status = domain.InvitationStatusPending
	invitation.ExpirationDate = s.expiration()

	for attempt := 1; attempt <= s.settings.AccessCodeMaxAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return internalError("Failed to generate access code", err)
		}

		exists, err := s.invitationRepo.AccessCodeExists(ctx, code)
		if err != nil {
			return internalError("Failed to check access code", err)
		}
		if exists {
			s.logger.Debug("Access code collision", zap.Int("attempt", attempt))
			continue
		}

		invitation.ID = uuid.Nil
		invitation.AccessCode = &code
		invitation.Token = uuid.NewString()
		err = s.invitationRepo.Create(ctx, invitation)
		if err == nil {
			return nil
		}
		if !repository.IsDuplicateKey(err) {
			return internalError("Failed to create access code", err)
		}
		s.logger.Debug("Access code insert collided", zap.Int("attempt", attempt))
	}

	invitation.AccessCode = nil
	return response.NewInternalError("Failed to generate a unique access code",
		fmt.Sprintf("gave up after %d attempts", s.settings.AccessCodeMaxAttempts))
}

// ListPendingInvitations returns a company's pending invitations, newest first
func (s *invitationServiceImpl) ListPendingInvitations(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	invitations, err := s.invitationRepo.FindPendingByCompanyID(ctx, companyID)
	if err != nil {
		return nil, internalError("Failed to list invitations", err)
	}
	return toInvitationResponses(invitations), nil
}

// CancelInvitation moves a pending invitation to cancelled
func (s *invitationServiceImpl) CancelInvitation(ctx context.Context, userID, companyID, invitationID uuid.UUID) error {
	invitation, err := s.companyInvitation(ctx, userID, companyID, invitationID)
	if err != nil {
		return err
	}
	if invitation.Status != domain.InvitationStatusPending {
		return response.NewValidationError("Only pending invitations can be cancelled", "")
	}
	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, domain.InvitationStatusPending, domain.InvitationStatusCancelled); err != nil {
		if isNotFound(err) {
			return response.NewValidationError("Only pending invitations can be cancelled", "")
		}
		return internalError("Failed to cancel invitation", err)
	}

	s.logger.Info("Invitation cancelled",
		zap.String("company_id", companyID.String()),
		zap.String("invitation_id", invitationID.String()))
	return nil
}

// ListAccessCodes returns every access code of a company, newest first
func (s *invitationServiceImpl) ListAccessCodes(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	invitations, err := s.invitationRepo.FindAccessCodesByCompanyID(ctx, companyID)
	if err != nil {
		return nil, internalError("Failed to list access codes", err)
	}
	return toInvitationResponses(invitations), nil
}

// DeleteAccessCode removes an access code row
func (s *invitationServiceImpl) DeleteAccessCode(ctx context.Context, userID, companyID, invitationID uuid.UUID) error {
	invitation, err := s.companyInvitation(ctx, userID, companyID, invitationID)
	if err != nil {
		return err
	}
	if invitation.AccessCode == nil {
		return response.NewNotFoundError("Access code not found", "")
	}
	if err := s.invitationRepo.Delete(ctx, invitationID); err != nil {
		return notFoundOr(err, "Access code not found", "Failed to delete access code")
	}

	s.logger.Info("Access code deleted",
		zap.String("company_id", companyID.String()),
		zap.String("invitation_id", invitationID.String()))
	return nil
}

// companyInvitation loads an invitation for an Admin of its company
func (s *invitationServiceImpl) companyInvitation(ctx context.Context, userID, companyID, invitationID uuid.UUID) (*domain.CompanyInvitation, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return nil, notFoundOr(err, "Invitation not found", "Failed to load invitation")
	}
	if invitation.CompanyID != companyID {
		return nil, response.NewNotFoundError("Invitation not found", "")
	}
	return invitation, nil
}

// GetInvitationByToken describes an invitation for its accept page
func (s *invitationServiceImpl) GetInvitationByToken(ctx context.Context, token string) (*dto.InvitationPreviewResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, response.NewAppError(response.ErrCodeInvitationInvalid, "Invalid invitation token", "")
	}
	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewAppError(response.ErrCodeInvitationInvalid, "Invalid invitation token", "")
		}
		return nil, internalError("Failed to load invitation", err)
	}

	preview := &dto.InvitationPreviewResponse{
		CompanyID: invitation.CompanyID,
		Email:     invitation.Email,
		Role:      string(invitation.Role),
		Status:    string(invitation.Status),
		Expired:   invitation.Status == domain.InvitationStatusExpired || invitation.IsExpired(s.now()),
		ExpiresAt: invitation.ExpirationDate,
	}
	if invitation.Company != nil {
		preview.CompanyName = invitation.Company.Name
	}
	return preview, nil
}

// AcceptInvitation redeems an emailed token. Logical failures are
// reported in the result; only store failures return an error.
func (s *invitationServiceImpl) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.RedemptionResponse, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.metrics.RecordRedemption("token", "invalid")
		return failedRedemption("Invalid invitation token"), nil
	}

	callerEmail := ""
	if profile, err := s.profileRepo.FindByID(ctx, userID); err == nil {
		callerEmail = profile.Email
	} else if !isNotFound(err) {
		return nil, internalError("Failed to load profile", err)
	}

	invitation, err := s.invitationRepo.Redeem(ctx, repository.RedeemByToken, token, userID, s.now(),
		func(inv *domain.CompanyInvitation) error {
			if inv.Email != nil && !strings.EqualFold(*inv.Email, callerEmail) {
				return errNotForCaller
			}
			return nil
		})

	return s.redemptionResult("token", invitation, err, redemptionMessages{
		invalid:   "Invalid invitation token",
		used:      "This invitation has already been used",
		expired:   "This invitation has expired",
		notCaller: "This invitation was sent to a different email address",
	}, userID)
}

// ValidateAccessCode redeems an access code. Targeted codes only redeem for their user.
func (s *invitationServiceImpl) ValidateAccessCode(ctx context.Context, userID uuid.UUID, code string) (*dto.RedemptionResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !accessCodePattern.MatchString(code) {
		s.metrics.RecordRedemption("access_code", "invalid")
		return failedRedemption("Invalid access code"), nil
	}

	invitation, err := s.invitationRepo.Redeem(ctx, repository.RedeemByAccessCode, code, userID, s.now(),
		func(inv *domain.CompanyInvitation) error {
			if inv.UserID != nil && *inv.UserID != userID {
				return errNotForCaller
			}
			return nil
		})

	return s.redemptionResult("access_code", invitation, err, redemptionMessages{
		invalid:   "Invalid access code",
		used:      "This access code has already been used",
		expired:   "This access code has expired",
		notCaller: "This access code is not for your account",
	}, userID)
}

const alreadyMemberMessage = "You are already a member of this company"

type redemptionMessages struct {
	invalid   string
	used      string
	expired   string
	notCaller string
}

func failedRedemption(msg string) *dto.RedemptionResponse {
	return &dto.RedemptionResponse{Success: false, Error: msg}
}

func (s *invitationServiceImpl) redemptionResult(
	kind string,
	invitation *domain.CompanyInvitation,
	err error,
	msgs redemptionMessages,
	userID uuid.UUID,
) (*dto.RedemptionResponse, error) {
	switch {
	case err == nil:
	case isNotFound(err):
		s.metrics.RecordRedemption(kind, "invalid")
		return failedRedemption(msgs.invalid), nil
	case errors.Is(err, repository.ErrInvitationUsed):
		s.metrics.RecordRedemption(kind, "used")
		return failedRedemption(msgs.used), nil
	case errors.Is(err, repository.ErrInvitationExpired):
		s.metrics.RecordRedemption(kind, "expired")
		return failedRedemption(msgs.expired), nil
	case errors.Is(err, repository.ErrAlreadyMember):
		s.metrics.RecordRedemption(kind, "already_member")
		return failedRedemption(alreadyMemberMessage), nil
	case errors.Is(err, errNotForCaller):
		s.metrics.RecordRedemption(kind, "rejected")
		return failedRedemption(msgs.notCaller), nil
	default:
		s.metrics.RecordRedemption(kind, "error")
		s.logger.Error("Redemption failed", zap.String("kind", kind), zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to redeem invitation", err)
	}

	s.metrics.RecordRedemption(kind, "accepted")
	s.logger.Info("Invitation redeemed",
		zap.String("kind", kind),
		zap.String("company_id", invitation.CompanyID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", string(invitation.Role)))

	companyID := invitation.CompanyID
	return &dto.RedemptionResponse{
		Success:   true,
		CompanyID: &companyID,
		Role:      string(invitation.Role),
	}, nil
}

func toInvitationResponse(i *domain.CompanyInvitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:             i.ID,
		CompanyID:      i.CompanyID,
		Email:          i.Email,
		Role:           string(i.Role),
		Status:         string(i.Status),
		AccessCode:     i.AccessCode,
		UserID:         i.UserID,
		InvitedBy:      i.InvitedBy,
		Validated:      i.Validated,
		ValidatedBy:    i.ValidatedBy,
		ValidatedAt:    i.ValidatedAt,
		ExpirationDate: i.ExpirationDate,
		CreatedAt:      i.CreatedAt,
	}
}

func toInvitationResponses(invitations []*domain.CompanyInvitation) []*dto.InvitationResponse {
	responses := make([]*dto.InvitationResponse, 0, len(invitations))
	for _, i := range invitations {
		responses = append(responses, toInvitationResponse(i))
	}
	return responses
}

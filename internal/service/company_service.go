package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
)

// CompanyService defines the interface for company and member management
type CompanyService interface {
	CreateCompany(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	ListMyCompanies(ctx context.Context, userID uuid.UUID) ([]*dto.CompanyResponse, error)
	GetCompany(ctx context.Context, userID, companyID uuid.UUID) (*dto.CompanyResponse, error)
	ListMembers(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.MemberResponse, error)
	UpdateMemberRole(ctx context.Context, userID, companyID, memberID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, userID, companyID, memberID uuid.UUID) error
}

type companyServiceImpl struct {
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	membership     MembershipService
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCompanyService creates a new instance of CompanyService
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	membership MembershipService,
	m *metrics.Metrics,
	logger *zap.Logger,
) CompanyService {
	return &companyServiceImpl{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		membership:     membership,
		metrics:        m,
		logger:         logger,
	}
}

// CreateCompany creates the company and makes the caller its Admin in one transaction
func (s *companyServiceImpl) CreateCompany(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Company name is required", "")
	}

	company := &domain.Company{Name: name, CreatedBy: userID}
	if err := s.companyRepo.CreateWithAdmin(ctx, company, userID); err != nil {
		s.logger.Error("Failed to create company", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, internalError("Failed to create company", err)
	}

	s.metrics.IncrementCompanyCreated()
	s.logger.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("user_id", userID.String()))

	admin := domain.RoleAdmin
	return toCompanyResponse(&repository.CompanyWithRole{Company: *company, Role: &admin}), nil
}

// ListMyCompanies returns the caller's companies with the caller's role, newest first
func (s *companyServiceImpl) ListMyCompanies(ctx context.Context, userID uuid.UUID) ([]*dto.CompanyResponse, error) {
	companies, err := s.companyRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, internalError("Failed to list companies", err)
	}
	responses := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, toCompanyResponse(c))
	}
	return responses, nil
}

// GetCompany returns one company the caller belongs to
func (s *companyServiceImpl) GetCompany(ctx context.Context, userID, companyID uuid.UUID) (*dto.CompanyResponse, error) {
	role, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleViewer)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, notFoundOr(err, "Company not found", "Failed to load company")
	}
	return toCompanyResponse(&repository.CompanyWithRole{Company: *company, Role: &role}), nil
}

// ListMembers returns the members of a company joined with their profiles
func (s *companyServiceImpl) ListMembers(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.MemberResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleViewer); err != nil {
		return nil, err
	}
	roles, err := s.membershipRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, internalError("Failed to list members", err)
	}
	members := make([]*dto.MemberResponse, 0, len(roles))
	for _, r := range roles {
		members = append(members, toMemberResponse(r))
	}
	return members, nil
}

// UpdateMemberRole changes a member's role. The last Admin cannot be demoted.
func (s *companyServiceImpl) UpdateMemberRole(ctx context.Context, userID, companyID, memberID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error) {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, response.NewValidationError("Role must be Admin, Member or Viewer", "")
	}

	target, err := s.membershipRepo.FindRole(ctx, memberID, companyID)
	if err != nil {
		return nil, notFoundOr(err, "Member not found", "Failed to load member")
	}
	if target.Role == domain.RoleAdmin && role != domain.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx, companyID); err != nil {
			return nil, err
		}
	}

	if err := s.membershipRepo.UpdateRole(ctx, memberID, companyID, role); err != nil {
		return nil, notFoundOr(err, "Member not found", "Failed to update member role")
	}
	target.Role = role

	s.logger.Info("Member role updated",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", memberID.String()),
		zap.String("role", string(role)))
	return toMemberResponse(target), nil
}

// RemoveMember deletes a membership. The last Admin cannot be removed.
func (s *companyServiceImpl) RemoveMember(ctx context.Context, userID, companyID, memberID uuid.UUID) error {
	if _, err := s.membership.RequireRole(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	target, err := s.membershipRepo.FindRole(ctx, memberID, companyID)
	if err != nil {
		return notFoundOr(err, "Member not found", "Failed to load member")
	}
	if target.Role == domain.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx, companyID); err != nil {
			return err
		}
	}
	if err := s.membershipRepo.Delete(ctx, memberID, companyID); err != nil {
		return notFoundOr(err, "Member not found", "Failed to remove member")
	}

	s.logger.Info("Member removed",
		zap.String("company_id", companyID.String()),
		zap.String("user_id", memberID.String()))
	return nil
}

func (s *companyServiceImpl) ensureAnotherAdmin(ctx context.Context, companyID uuid.UUID) error {
	admins, err := s.membershipRepo.CountByRole(ctx, companyID, domain.RoleAdmin)
	if err != nil {
		return internalError("Failed to count admins", err)
	}
	if admins <= 1 {
		return response.NewValidationError("A company must keep at least one Admin", "")
	}
	return nil
}

func toCompanyResponse(c *repository.CompanyWithRole) *dto.CompanyResponse {
	role := "Unknown"
	if c.Role != nil && *c.Role != "" {
		role = string(*c.Role)
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedBy: c.CreatedBy,
		Role:      role,
		CreatedAt: c.CreatedAt,
	}
}

func toMemberResponse(r *domain.UserCompanyRole) *dto.MemberResponse {
	member := &dto.MemberResponse{
		UserID:   r.UserID,
		Name:     "Unknown User",
		Email:    "No email",
		Role:     string(r.Role),
		JoinedAt: r.CreatedAt,
	}
	if r.Profile != nil {
		if r.Profile.Name != "" {
			member.Name = r.Profile.Name
		}
		if r.Profile.Email != "" {
			member.Email = r.Profile.Email
		}
	}
	return member
}

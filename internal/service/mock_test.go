package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/repository"
)

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc          func(ctx context.Context, board *domain.Board) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByCompanyIDFunc func(ctx context.Context, companyID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc          func(ctx context.Context, board *domain.Board) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByCompanyIDFunc != nil {
		return m.FindByCompanyIDFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockColumnRepository is a mock implementation of ColumnRepository
type MockColumnRepository struct {
	CreateFunc        func(ctx context.Context, column *domain.BoardColumn) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.BoardColumn, error)
	FindByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardColumn, error)
	UpdateFunc        func(ctx context.Context, column *domain.BoardColumn) error
	MaxOrderFunc      func(ctx context.Context, boardID uuid.UUID) (int, error)
}

func (m *MockColumnRepository) Create(ctx context.Context, column *domain.BoardColumn) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardColumn, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockColumnRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardColumn, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockColumnRepository) Update(ctx context.Context, column *domain.BoardColumn) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	if m.MaxOrderFunc != nil {
		return m.MaxOrderFunc(ctx, boardID)
	}
	return 0, nil
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	CreateWithValuesFunc func(ctx context.Context, item *domain.BoardItem, values []*domain.ItemValue) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.BoardItem, error)
	FindByBoardIDFunc    func(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardItem, error)
	UpdateNameFunc       func(ctx context.Context, id uuid.UUID, name string) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) ([]*domain.ItemValue, error)
	MaxOrderFunc         func(ctx context.Context, boardID uuid.UUID) (int, error)
	CountFunc            func(ctx context.Context) (int64, error)
}

func (m *MockItemRepository) CreateWithValues(ctx context.Context, item *domain.BoardItem, values []*domain.ItemValue) error {
	if m.CreateWithValuesFunc != nil {
		return m.CreateWithValuesFunc(ctx, item, values)
	}
	return nil
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardItem, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardItem, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockItemRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	if m.UpdateNameFunc != nil {
		return m.UpdateNameFunc(ctx, id, name)
	}
	return nil
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) ([]*domain.ItemValue, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemRepository) MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	if m.MaxOrderFunc != nil {
		return m.MaxOrderFunc(ctx, boardID)
	}
	return 0, nil
}

func (m *MockItemRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockItemValueRepository is a mock implementation of ItemValueRepository
type MockItemValueRepository struct {
	FindFunc          func(ctx context.Context, itemID, columnID uuid.UUID) (*domain.ItemValue, error)
	FindByItemIDsFunc func(ctx context.Context, itemIDs []uuid.UUID) ([]*domain.ItemValue, error)
	FindByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) ([]*domain.ItemValue, error)
	UpsertFunc        func(ctx context.Context, value *domain.ItemValue) (bool, error)
}

func (m *MockItemValueRepository) Find(ctx context.Context, itemID, columnID uuid.UUID) (*domain.ItemValue, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, itemID, columnID)
	}
	return nil, nil
}

func (m *MockItemValueRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*domain.ItemValue, error) {
	if m.FindByItemIDsFunc != nil {
		return m.FindByItemIDsFunc(ctx, itemIDs)
	}
	return nil, nil
}

func (m *MockItemValueRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.ItemValue, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockItemValueRepository) Upsert(ctx context.Context, value *domain.ItemValue) (bool, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, value)
	}
	return false, nil
}

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	CreateFunc          func(ctx context.Context, company *domain.Company) error
	CreateWithAdminFunc func(ctx context.Context, company *domain.Company, adminID uuid.UUID) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	FindByUserIDFunc    func(ctx context.Context, userID uuid.UUID) ([]*repository.CompanyWithRole, error)
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, company)
	}
	return nil
}

func (m *MockCompanyRepository) CreateWithAdmin(ctx context.Context, company *domain.Company, adminID uuid.UUID) error {
	if m.CreateWithAdminFunc != nil {
		return m.CreateWithAdminFunc(ctx, company, adminID)
	}
	return nil
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*repository.CompanyWithRole, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCompanyRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	FindRoleFunc        func(ctx context.Context, userID, companyID uuid.UUID) (*domain.UserCompanyRole, error)
	FindByCompanyIDFunc func(ctx context.Context, companyID uuid.UUID) ([]*domain.UserCompanyRole, error)
	UpsertFunc          func(ctx context.Context, role *domain.UserCompanyRole) error
	UpdateRoleFunc      func(ctx context.Context, userID, companyID uuid.UUID, role domain.Role) error
	DeleteFunc          func(ctx context.Context, userID, companyID uuid.UUID) error
	CountByRoleFunc     func(ctx context.Context, companyID uuid.UUID, role domain.Role) (int64, error)
}

func (m *MockMembershipRepository) FindRole(ctx context.Context, userID, companyID uuid.UUID) (*domain.UserCompanyRole, error) {
	if m.FindRoleFunc != nil {
		return m.FindRoleFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockMembershipRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.UserCompanyRole, error) {
	if m.FindByCompanyIDFunc != nil {
		return m.FindByCompanyIDFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *MockMembershipRepository) Upsert(ctx context.Context, role *domain.UserCompanyRole) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, role)
	}
	return nil
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, userID, companyID uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, userID, companyID, role)
	}
	return nil
}

func (m *MockMembershipRepository) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, companyID)
	}
	return nil
}

func (m *MockMembershipRepository) CountByRole(ctx context.Context, companyID uuid.UUID, role domain.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, companyID, role)
	}
	return 0, nil
}

func (m *MockMembershipRepository) WithTx(tx *gorm.DB) repository.MembershipRepository {
	return m
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	CreateFunc         func(ctx context.Context, profile *domain.Profile, credential *domain.Credential) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	FindByIDsFunc      func(ctx context.Context, ids []uuid.UUID) ([]*domain.Profile, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Profile, error)
	FindCredentialFunc func(ctx context.Context, userID uuid.UUID) (*domain.Credential, error)
	EnsureProfileFunc  func(ctx context.Context, profile *domain.Profile) error
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile, credential *domain.Credential) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile, credential)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Profile, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockProfileRepository) FindCredential(ctx context.Context, userID uuid.UUID) (*domain.Credential, error) {
	if m.FindCredentialFunc != nil {
		return m.FindCredentialFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockProfileRepository) EnsureProfile(ctx context.Context, profile *domain.Profile) error {
	if m.EnsureProfileFunc != nil {
		return m.EnsureProfileFunc(ctx, profile)
	}
	return nil
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	CreateFunc                     func(ctx context.Context, invitation *domain.CompanyInvitation) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.CompanyInvitation, error)
	FindByTokenFunc                func(ctx context.Context, token string) (*domain.CompanyInvitation, error)
	FindPendingByCompanyIDFunc     func(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error)
	FindAccessCodesByCompanyIDFunc func(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error)
	HasPendingForEmailFunc         func(ctx context.Context, companyID uuid.UUID, email string) (bool, error)
	HasPendingCodeForUserFunc      func(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	AccessCodeExistsFunc           func(ctx context.Context, code string) (bool, error)
	UpdateStatusFunc               func(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus) error
	DeleteFunc                     func(ctx context.Context, id uuid.UUID) error
	ExpirePendingFunc              func(ctx context.Context, now time.Time) (int64, error)
	CountPendingFunc               func(ctx context.Context) (int64, error)
	RedeemFunc                     func(ctx context.Context, by repository.RedeemBy, key string, userID uuid.UUID, now time.Time, authorize func(*domain.CompanyInvitation) error) (*domain.CompanyInvitation, error)
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.CompanyInvitation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invitation)
	}
	return nil
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyInvitation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*domain.CompanyInvitation, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindPendingByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error) {
	if m.FindPendingByCompanyIDFunc != nil {
		return m.FindPendingByCompanyIDFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) FindAccessCodesByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error) {
	if m.FindAccessCodesByCompanyIDFunc != nil {
		return m.FindAccessCodesByCompanyIDFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *MockInvitationRepository) HasPendingForEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error) {
	if m.HasPendingForEmailFunc != nil {
		return m.HasPendingForEmailFunc(ctx, companyID, email)
	}
	return false, nil
}

func (m *MockInvitationRepository) HasPendingCodeForUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	if m.HasPendingCodeForUserFunc != nil {
		return m.HasPendingCodeForUserFunc(ctx, companyID, userID)
	}
	return false, nil
}

func (m *MockInvitationRepository) AccessCodeExists(ctx context.Context, code string) (bool, error) {
	if m.AccessCodeExistsFunc != nil {
		return m.AccessCodeExistsFunc(ctx, code)
	}
	return false, nil
}

func (m *MockInvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *MockInvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockInvitationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpirePendingFunc != nil {
		return m.ExpirePendingFunc(ctx, now)
	}
	return 0, nil
}

func (m *MockInvitationRepository) CountPending(ctx context.Context) (int64, error) {
	if m.CountPendingFunc != nil {
		return m.CountPendingFunc(ctx)
	}
	return 0, nil
}

func (m *MockInvitationRepository) Redeem(ctx context.Context, by repository.RedeemBy, key string, userID uuid.UUID, now time.Time, authorize func(*domain.CompanyInvitation) error) (*domain.CompanyInvitation, error) {
	if m.RedeemFunc != nil {
		return m.RedeemFunc(ctx, by, key, userID, now, authorize)
	}
	return nil, nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc                     func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	FindByCellFunc                 func(ctx context.Context, itemID, columnID uuid.UUID) ([]*domain.Attachment, error)
	FindExpiredTempAttachmentsFunc func(ctx context.Context, now time.Time) ([]*domain.Attachment, error)
	ConfirmFunc                    func(ctx context.Context, id uuid.UUID) error
	DeleteFunc                     func(ctx context.Context, id uuid.UUID) error
	DeleteBatchFunc                func(ctx context.Context, attachmentIDs []uuid.UUID) error
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByCell(ctx context.Context, itemID, columnID uuid.UUID) ([]*domain.Attachment, error) {
	if m.FindByCellFunc != nil {
		return m.FindByCellFunc(ctx, itemID, columnID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindExpiredTempAttachments(ctx context.Context, now time.Time) ([]*domain.Attachment, error) {
	if m.FindExpiredTempAttachmentsFunc != nil {
		return m.FindExpiredTempAttachmentsFunc(ctx, now)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, attachmentIDs)
	}
	return nil
}

// MockMembershipService is a mock implementation of MembershipService.
// With no funcs set every check passes as Admin.
type MockMembershipService struct {
	RequireRoleFunc      func(ctx context.Context, userID, companyID uuid.UUID, min domain.Role) (domain.Role, error)
	RequireBoardRoleFunc func(ctx context.Context, userID, boardID uuid.UUID, min domain.Role) (*domain.Board, error)
}

func (m *MockMembershipService) RequireRole(ctx context.Context, userID, companyID uuid.UUID, min domain.Role) (domain.Role, error) {
	if m.RequireRoleFunc != nil {
		return m.RequireRoleFunc(ctx, userID, companyID, min)
	}
	return domain.RoleAdmin, nil
}

func (m *MockMembershipService) RequireBoardRole(ctx context.Context, userID, boardID uuid.UUID, min domain.Role) (*domain.Board, error) {
	if m.RequireBoardRoleFunc != nil {
		return m.RequireBoardRoleFunc(ctx, userID, boardID, min)
	}
	return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}}, nil
}

// MockEmailClient records sent messages
type MockEmailClient struct {
	SendFunc func(ctx context.Context, msg client.EmailMessage) error
	Sent     []client.EmailMessage
}

func (m *MockEmailClient) Send(ctx context.Context, msg client.EmailMessage) error {
	m.Sent = append(m.Sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

// MockPublisher records published events
type MockPublisher struct {
	PublishFunc func(ctx context.Context, event realtime.ChangeEvent) error
	Events      []realtime.ChangeEvent
}

func (m *MockPublisher) Publish(ctx context.Context, event realtime.ChangeEvent) error {
	m.Events = append(m.Events, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

var (
	_ repository.BoardRepository      = (*MockBoardRepository)(nil)
	_ repository.ColumnRepository     = (*MockColumnRepository)(nil)
	_ repository.ItemRepository       = (*MockItemRepository)(nil)
	_ repository.ItemValueRepository  = (*MockItemValueRepository)(nil)
	_ repository.CompanyRepository    = (*MockCompanyRepository)(nil)
	_ repository.MembershipRepository = (*MockMembershipRepository)(nil)
	_ repository.ProfileRepository    = (*MockProfileRepository)(nil)
	_ repository.InvitationRepository = (*MockInvitationRepository)(nil)
	_ repository.AttachmentRepository = (*MockAttachmentRepository)(nil)
	_ MembershipService               = (*MockMembershipService)(nil)
	_ client.EmailClient              = (*MockEmailClient)(nil)
	_ EventPublisher                  = (*MockPublisher)(nil)
)

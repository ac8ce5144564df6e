package handler

import (
	"context"

	"github.com/google/uuid"

	"teamup-board-api/internal/domain"
	"teamup-board-api/internal/dto"
	"teamup-board-api/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	SignUpFunc        func(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	SignInFunc        func(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error)
	SignOutFunc       func(ctx context.Context, token string) error
	GetSessionFunc    func(ctx context.Context, token string) (*dto.SessionContextResponse, error)
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, error)
}

func (m *MockAuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.SessionResponse, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) SignOut(ctx context.Context, token string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) GetSession(ctx context.Context, token string) (*dto.SessionContextResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return uuid.Nil, nil
}

// MockCompanyService is a mock implementation of service.CompanyService
type MockCompanyService struct {
	CreateCompanyFunc    func(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	ListMyCompaniesFunc  func(ctx context.Context, userID uuid.UUID) ([]*dto.CompanyResponse, error)
	GetCompanyFunc       func(ctx context.Context, userID, companyID uuid.UUID) (*dto.CompanyResponse, error)
	ListMembersFunc      func(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.MemberResponse, error)
	UpdateMemberRoleFunc func(ctx context.Context, userID, companyID, memberID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error)
	RemoveMemberFunc     func(ctx context.Context, userID, companyID, memberID uuid.UUID) error
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, userID uuid.UUID, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if m.CreateCompanyFunc != nil {
		return m.CreateCompanyFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockCompanyService) ListMyCompanies(ctx context.Context, userID uuid.UUID) ([]*dto.CompanyResponse, error) {
	if m.ListMyCompaniesFunc != nil {
		return m.ListMyCompaniesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCompanyService) GetCompany(ctx context.Context, userID, companyID uuid.UUID) (*dto.CompanyResponse, error) {
	if m.GetCompanyFunc != nil {
		return m.GetCompanyFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockCompanyService) ListMembers(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.MemberResponse, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockCompanyService) UpdateMemberRole(ctx context.Context, userID, companyID, memberID uuid.UUID, req *dto.UpdateMemberRoleRequest) (*dto.MemberResponse, error) {
	if m.UpdateMemberRoleFunc != nil {
		return m.UpdateMemberRoleFunc(ctx, userID, companyID, memberID, req)
	}
	return nil, nil
}

func (m *MockCompanyService) RemoveMember(ctx context.Context, userID, companyID, memberID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, userID, companyID, memberID)
	}
	return nil
}

// MockInvitationService is a mock implementation of service.InvitationService
type MockInvitationService struct {
	InviteByEmailFunc           func(ctx context.Context, inviterID, companyID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error)
	IssueTargetedAccessCodeFunc func(ctx context.Context, inviterID, companyID uuid.UUID, email string, role string) (*dto.InvitationResponse, error)
	IssueOpenAccessCodeFunc     func(ctx context.Context, inviterID, companyID uuid.UUID, role string) (*dto.InvitationResponse, error)
	ListPendingInvitationsFunc  func(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error)
	CancelInvitationFunc        func(ctx context.Context, userID, companyID, invitationID uuid.UUID) error
	ListAccessCodesFunc         func(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error)
	DeleteAccessCodeFunc        func(ctx context.Context, userID, companyID, invitationID uuid.UUID) error
	GetInvitationByTokenFunc    func(ctx context.Context, token string) (*dto.InvitationPreviewResponse, error)
	AcceptInvitationFunc        func(ctx context.Context, userID uuid.UUID, token string) (*dto.RedemptionResponse, error)
	ValidateAccessCodeFunc      func(ctx context.Context, userID uuid.UUID, code string) (*dto.RedemptionResponse, error)
}

func (m *MockInvitationService) InviteByEmail(ctx context.Context, inviterID, companyID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationCreatedResponse, error) {
	if m.InviteByEmailFunc != nil {
		return m.InviteByEmailFunc(ctx, inviterID, companyID, req)
	}
	return nil, nil
}

func (m *MockInvitationService) IssueTargetedAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, email string, role string) (*dto.InvitationResponse, error) {
	if m.IssueTargetedAccessCodeFunc != nil {
		return m.IssueTargetedAccessCodeFunc(ctx, inviterID, companyID, email, role)
	}
	return nil, nil
}

func (m *MockInvitationService) IssueOpenAccessCode(ctx context.Context, inviterID, companyID uuid.UUID, role string) (*dto.InvitationResponse, error) {
	if m.IssueOpenAccessCodeFunc != nil {
		return m.IssueOpenAccessCodeFunc(ctx, inviterID, companyID, role)
	}
	return nil, nil
}

func (m *MockInvitationService) ListPendingInvitations(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if m.ListPendingInvitationsFunc != nil {
		return m.ListPendingInvitationsFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockInvitationService) CancelInvitation(ctx context.Context, userID, companyID, invitationID uuid.UUID) error {
	if m.CancelInvitationFunc != nil {
		return m.CancelInvitationFunc(ctx, userID, companyID, invitationID)
	}
	return nil
}

func (m *MockInvitationService) ListAccessCodes(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.InvitationResponse, error) {
	if m.ListAccessCodesFunc != nil {
		return m.ListAccessCodesFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockInvitationService) DeleteAccessCode(ctx context.Context, userID, companyID, invitationID uuid.UUID) error {
	if m.DeleteAccessCodeFunc != nil {
		return m.DeleteAccessCodeFunc(ctx, userID, companyID, invitationID)
	}
	return nil
}

func (m *MockInvitationService) GetInvitationByToken(ctx context.Context, token string) (*dto.InvitationPreviewResponse, error) {
	if m.GetInvitationByTokenFunc != nil {
		return m.GetInvitationByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *MockInvitationService) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.RedemptionResponse, error) {
	if m.AcceptInvitationFunc != nil {
		return m.AcceptInvitationFunc(ctx, userID, token)
	}
	return nil, nil
}

func (m *MockInvitationService) ValidateAccessCode(ctx context.Context, userID uuid.UUID, code string) (*dto.RedemptionResponse, error) {
	if m.ValidateAccessCodeFunc != nil {
		return m.ValidateAccessCodeFunc(ctx, userID, code)
	}
	return nil, nil
}

// MockBoardService is a mock implementation of service.BoardService
type MockBoardService struct {
	CreateBoardFunc func(ctx context.Context, userID, companyID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	ListBoardsFunc  func(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.BoardResponse, error)
	GetBoardFunc    func(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error)
	UpdateBoardFunc func(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoardFunc func(ctx context.Context, userID, boardID uuid.UUID) error
}

func (m *MockBoardService) CreateBoard(ctx context.Context, userID, companyID uuid.UUID, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, userID, companyID, req)
	}
	return nil, nil
}

func (m *MockBoardService) ListBoards(ctx context.Context, userID, companyID uuid.UUID) ([]*dto.BoardResponse, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, userID, companyID)
	}
	return nil, nil
}

func (m *MockBoardService) GetBoard(ctx context.Context, userID, boardID uuid.UUID) (*dto.BoardResponse, error) {
	if m.GetBoardFunc != nil {
		return m.GetBoardFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockBoardService) UpdateBoard(ctx context.Context, userID, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	if m.UpdateBoardFunc != nil {
		return m.UpdateBoardFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, userID, boardID)
	}
	return nil
}

// MockCellService is a mock implementation of service.CellService
type MockCellService struct {
	GetGridFunc          func(ctx context.Context, userID, boardID uuid.UUID, filters *dto.GridFilters) (*dto.GridResponse, error)
	CommitCellValueFunc  func(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.CommitCellRequest) (*dto.CellResponse, error)
	ResolveCellValueFunc func(ctx context.Context, userID, itemID, columnID uuid.UUID) (*dto.CellResponse, error)
}

func (m *MockCellService) GetGrid(ctx context.Context, userID, boardID uuid.UUID, filters *dto.GridFilters) (*dto.GridResponse, error) {
	if m.GetGridFunc != nil {
		return m.GetGridFunc(ctx, userID, boardID, filters)
	}
	return nil, nil
}

func (m *MockCellService) CommitCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.CommitCellRequest) (*dto.CellResponse, error) {
	if m.CommitCellValueFunc != nil {
		return m.CommitCellValueFunc(ctx, userID, itemID, columnID, req)
	}
	return nil, nil
}

func (m *MockCellService) ResolveCellValue(ctx context.Context, userID, itemID, columnID uuid.UUID) (*dto.CellResponse, error) {
	if m.ResolveCellValueFunc != nil {
		return m.ResolveCellValueFunc(ctx, userID, itemID, columnID)
	}
	return nil, nil
}

// MockColumnService is a mock implementation of service.ColumnService
type MockColumnService struct {
	AddColumnFunc    func(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error)
	ListColumnsFunc  func(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error)
	UpdateColumnFunc func(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error)
}

func (m *MockColumnService) AddColumn(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateColumnRequest) (*dto.ColumnResponse, error) {
	if m.AddColumnFunc != nil {
		return m.AddColumnFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockColumnService) ListColumns(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ColumnResponse, error) {
	if m.ListColumnsFunc != nil {
		return m.ListColumnsFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockColumnService) UpdateColumn(ctx context.Context, userID, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*dto.ColumnResponse, error) {
	if m.UpdateColumnFunc != nil {
		return m.UpdateColumnFunc(ctx, userID, columnID, req)
	}
	return nil, nil
}

// MockItemService is a mock implementation of service.ItemService
type MockItemService struct {
	AddItemFunc    func(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateItemRequest) (*dto.ItemResponse, error)
	ListItemsFunc  func(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ItemResponse, error)
	RenameItemFunc func(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error)
	DeleteItemFunc func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *MockItemService) AddItem(ctx context.Context, userID, boardID uuid.UUID, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, userID, boardID, req)
	}
	return nil, nil
}

func (m *MockItemService) ListItems(ctx context.Context, userID, boardID uuid.UUID) ([]*dto.ItemResponse, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, userID, boardID)
	}
	return nil, nil
}

func (m *MockItemService) RenameItem(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if m.RenameItemFunc != nil {
		return m.RenameItemFunc(ctx, userID, itemID, req)
	}
	return nil, nil
}

func (m *MockItemService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, userID, itemID)
	}
	return nil
}

// MockAttachmentService is a mock implementation of service.AttachmentService
type MockAttachmentService struct {
	CreateUploadURLFunc     func(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	ConfirmUploadFunc       func(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.CellResponse, error)
	GetDownloadURLFunc      func(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.DownloadURLResponse, error)
	ListCellAttachmentsFunc func(ctx context.Context, userID, itemID, columnID uuid.UUID) ([]*dto.AttachmentResponse, error)
}

func (m *MockAttachmentService) CreateUploadURL(ctx context.Context, userID, itemID, columnID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if m.CreateUploadURLFunc != nil {
		return m.CreateUploadURLFunc(ctx, userID, itemID, columnID, req)
	}
	return nil, nil
}

func (m *MockAttachmentService) ConfirmUpload(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.CellResponse, error) {
	if m.ConfirmUploadFunc != nil {
		return m.ConfirmUploadFunc(ctx, userID, attachmentID)
	}
	return nil, nil
}

func (m *MockAttachmentService) GetDownloadURL(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.DownloadURLResponse, error) {
	if m.GetDownloadURLFunc != nil {
		return m.GetDownloadURLFunc(ctx, userID, attachmentID)
	}
	return nil, nil
}

func (m *MockAttachmentService) ListCellAttachments(ctx context.Context, userID, itemID, columnID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	if m.ListCellAttachmentsFunc != nil {
		return m.ListCellAttachmentsFunc(ctx, userID, itemID, columnID)
	}
	return nil, nil
}

// MockMembershipService is a mock implementation of service.MembershipService
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

var (
	_ service.AuthService       = (*MockAuthService)(nil)
	_ service.CompanyService    = (*MockCompanyService)(nil)
	_ service.InvitationService = (*MockInvitationService)(nil)
	_ service.BoardService      = (*MockBoardService)(nil)
	_ service.CellService       = (*MockCellService)(nil)
	_ service.ColumnService     = (*MockColumnService)(nil)
	_ service.ItemService       = (*MockItemService)(nil)
	_ service.AttachmentService = (*MockAttachmentService)(nil)
	_ service.MembershipService = (*MockMembershipService)(nil)
)

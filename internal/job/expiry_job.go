package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"teamup-board-api/internal/repository"
)

// InvitationExpiryJob moves pending invitations past their expiration date to expired
type InvitationExpiryJob struct {
	invitationRepo repository.InvitationRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewInvitationExpiryJob creates a new InvitationExpiryJob instance
func NewInvitationExpiryJob(invitationRepo repository.InvitationRepository, logger *zap.Logger) *InvitationExpiryJob {
	return &InvitationExpiryJob{
		invitationRepo: invitationRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Name identifies the job in logs
func (j *InvitationExpiryJob) Name() string { return "invitation_expiry" }

// Run executes the expiry sweep
func (j *InvitationExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := j.invitationRepo.ExpirePending(ctx, j.now())
	if err != nil {
		j.logger.Error("Failed to expire pending invitations", zap.Error(err))
		return
	}
	if expired > 0 {
		j.logger.Info("Expired pending invitations", zap.Int64("count", expired))
	}
}

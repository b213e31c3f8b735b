package repository

import (
	"context"

	"github.com/jatana/gymdesk/internal/models"
)

// MemberFilters narrows member searches. A nil Status means no status
// constraint; an empty SearchKey matches everything.
type MemberFilters struct {
	Status    *models.MemberStatus
	SearchKey string
}

// MemberRepository defines the interface for member data operations.
// Lookup methods return (nil, nil) when no row matches.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) (*models.Member, error)
	GetByID(ctx context.Context, memberID string) (*models.Member, error)
	Exists(ctx context.Context, memberID string) (bool, error)
	Update(ctx context.Context, member *models.Member) (*models.Member, error)
	UpdateStatus(ctx context.Context, memberID string, status models.MemberStatus) (*models.Member, error)
	Search(ctx context.Context, filters MemberFilters) ([]*models.Member, error)
}

// PlanRepository defines the interface for plan data operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) (*models.Plan, error)
	GetByID(ctx context.Context, planID string) (*models.Plan, error)
	Exists(ctx context.Context, planID string) (bool, error)
	List(ctx context.Context) ([]*models.Plan, error)
	Update(ctx context.Context, plan *models.Plan) (*models.Plan, error)
	Delete(ctx context.Context, planID string) error
}

// MembershipRepository defines the interface for membership data
// operations. CreateWithPayment persists the membership and its initial
// payment inside a single transaction so the pair is applied atomically.
type MembershipRepository interface {
	CreateWithPayment(ctx context.Context, membership *models.Membership, payment *models.Payment) error
	GetByID(ctx context.Context, membershipID string) (*models.Membership, error)
	GetByMemberID(ctx context.Context, memberID string) ([]*models.Membership, error)
	GetLatestByEndDate(ctx context.Context, memberID string) (*models.Membership, error)
}

// PaymentRepository defines the interface for the append-only payment
// trail.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByMembershipID(ctx context.Context, membershipID string) ([]*models.Payment, error)
}

// DocumentRepository defines the interface for member document
// operations. Upserts are keyed by the deterministic document id, so
// re-uploading a type replaces the existing row. UpsertWithMemberPhoto
// additionally mirrors the document URL into the owning member's photo
// reference within the same transaction.
type DocumentRepository interface {
	Upsert(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error)
	UpsertWithMemberPhoto(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error)
	GetByMemberID(ctx context.Context, memberID string) ([]*models.MemberDocument, error)
}

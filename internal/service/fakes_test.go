package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// ---------------------------------------------------------------------------
// In-memory member repository
// ---------------------------------------------------------------------------

type fakeMemberRepo struct {
	members map[string]*models.Member
	err     error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*models.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *models.Member) (*models.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *member
	r.members[member.MemberID] = &copied
	return &copied, nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, memberID string) (*models.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	member, ok := r.members[memberID]
	if !ok {
		return nil, nil
	}
	return member, nil
}

func (r *fakeMemberRepo) Exists(_ context.Context, memberID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.members[memberID]
	return ok, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *models.Member) (*models.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	existing, ok := r.members[member.MemberID]
	if !ok {
		return nil, nil
	}
	updated := *member
	updated.Status = existing.Status
	updated.PhotoURL = existing.PhotoURL
	updated.CreatedAt = existing.CreatedAt
	r.members[member.MemberID] = &updated
	return &updated, nil
}

func (r *fakeMemberRepo) UpdateStatus(_ context.Context, memberID string, status models.MemberStatus) (*models.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	member, ok := r.members[memberID]
	if !ok {
		return nil, nil
	}
	member.Status = status
	return member, nil
}

func (r *fakeMemberRepo) Search(_ context.Context, filters repository.MemberFilters) ([]*models.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Member
	for _, member := range r.members {
		if filters.Status != nil && member.Status != *filters.Status {
			continue
		}
		if key := strings.ToLower(filters.SearchKey); key != "" {
			if !strings.Contains(strings.ToLower(member.FullName), key) &&
				!strings.Contains(strings.ToLower(member.Email), key) &&
				!strings.Contains(strings.ToLower(member.MemberID), key) {
				continue
			}
		}
		out = append(out, member)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory plan repository
// ---------------------------------------------------------------------------

type fakePlanRepo struct {
	plans map[string]*models.Plan
	err   error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]*models.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *models.Plan) (*models.Plan, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *plan
	r.plans[plan.PlanID] = &copied
	return &copied, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, planID string) (*models.Plan, error) {
	if r.err != nil {
		return nil, r.err
	}
	plan, ok := r.plans[planID]
	if !ok {
		return nil, nil
	}
	return plan, nil
}

func (r *fakePlanRepo) Exists(_ context.Context, planID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.plans[planID]
	return ok, nil
}

func (r *fakePlanRepo) List(_ context.Context) ([]*models.Plan, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Plan, 0, len(r.plans))
	for _, plan := range r.plans {
		out = append(out, plan)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlanID < out[j].PlanID })
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *models.Plan) (*models.Plan, error) {
	if r.err != nil {
		return nil, r.err
	}
	existing, ok := r.plans[plan.PlanID]
	if !ok {
		return nil, nil
	}
	existing.DurationMonths = plan.DurationMonths
	existing.Price = plan.Price
	existing.Description = plan.Description
	return existing, nil
}

func (r *fakePlanRepo) Delete(_ context.Context, planID string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.plans, planID)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory membership and payment repositories
// ---------------------------------------------------------------------------

type fakePaymentRepo struct {
	payments []*models.Payment
	err      error
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) (*models.Payment, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *payment
	r.payments = append(r.payments, &copied)
	return &copied, nil
}

func (r *fakePaymentRepo) GetByMembershipID(_ context.Context, membershipID string) ([]*models.Payment, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Payment
	for _, payment := range r.payments {
		if payment.MembershipID == membershipID {
			out = append(out, payment)
		}
	}
	return out, nil
}

// fakeMembershipRepo shares a payment repo so CreateWithPayment lands
// both records the way the transactional implementation does.
type fakeMembershipRepo struct {
	memberships []*models.Membership
	payments    *fakePaymentRepo
	err         error
}

func newFakeMembershipRepo(payments *fakePaymentRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{payments: payments}
}

func (r *fakeMembershipRepo) CreateWithPayment(ctx context.Context, membership *models.Membership, payment *models.Payment) error {
	if r.err != nil {
		return r.err
	}
	copied := *membership
	r.memberships = append(r.memberships, &copied)
	_, err := r.payments.Create(ctx, payment)
	return err
}

func (r *fakeMembershipRepo) GetByID(_ context.Context, membershipID string) (*models.Membership, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, membership := range r.memberships {
		if membership.MembershipID == membershipID {
			return membership, nil
		}
	}
	return nil, nil
}

func (r *fakeMembershipRepo) GetByMemberID(_ context.Context, memberID string) ([]*models.Membership, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Membership
	for _, membership := range r.memberships {
		if membership.MemberID == memberID {
			out = append(out, membership)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) GetLatestByEndDate(_ context.Context, memberID string) (*models.Membership, error) {
	if r.err != nil {
		return nil, r.err
	}
	var latest *models.Membership
	for _, membership := range r.memberships {
		if membership.MemberID != memberID {
			continue
		}
		if latest == nil || membership.EndDate.After(latest.EndDate) {
			latest = membership
		}
	}
	return latest, nil
}

// ---------------------------------------------------------------------------
// In-memory document repository and blob store
// ---------------------------------------------------------------------------

type fakeDocumentRepo struct {
	docs    map[string]*models.MemberDocument
	members *fakeMemberRepo
	err     error
}

func newFakeDocumentRepo(members *fakeMemberRepo) *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.MemberDocument), members: members}
}

func (r *fakeDocumentRepo) Upsert(_ context.Context, doc *models.MemberDocument) (*models.MemberDocument, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *doc
	r.docs[doc.DocumentID] = &copied
	return &copied, nil
}

func (r *fakeDocumentRepo) UpsertWithMemberPhoto(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error) {
	saved, err := r.Upsert(ctx, doc)
	if err != nil {
		return nil, err
	}
	if member, ok := r.members.members[doc.MemberID]; ok {
		member.PhotoURL = doc.URL
	}
	return saved, nil
}

func (r *fakeDocumentRepo) GetByMemberID(_ context.Context, memberID string) ([]*models.MemberDocument, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.MemberDocument
	for _, doc := range r.docs {
		if doc.MemberID == memberID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocumentID < out[j].DocumentID })
	return out, nil
}

type fakeBlobStore struct {
	stored map[string][]byte
	err    error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{stored: make(map[string][]byte)}
}

func (b *fakeBlobStore) Store(_ context.Context, key string, data []byte) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	b.stored[key] = data
	return "https://storage.test/gymdesk/" + key, nil
}

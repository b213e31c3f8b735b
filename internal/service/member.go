package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

// MemberInput carries the caller-supplied fields for registering a
// member. The member id is externally assigned and must be unique.
type MemberInput struct {
	MemberID    string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      models.Gender
	PhoneNumber string
	Email       string
	Address     string
}

// MemberUpdateInput carries the profile fields overwritten by an
// update. Status and photo are managed by their own operations.
type MemberUpdateInput struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Gender      models.Gender
	PhoneNumber string
	Email       string
	Address     string
}

// MemberService owns the member registry and its composite read models.
type MemberService struct {
	members     repository.MemberRepository
	memberships repository.MembershipRepository
	documents   repository.DocumentRepository
	logger      *logrus.Logger
}

// NewMemberService creates a MemberService with its required
// dependencies.
func NewMemberService(
	members repository.MemberRepository,
	memberships repository.MembershipRepository,
	documents repository.DocumentRepository,
	logger *logrus.Logger,
) *MemberService {
	return &MemberService{
		members:     members,
		memberships: memberships,
		documents:   documents,
		logger:      logger,
	}
}

// CreateMember registers a new member. The supplied id must not exist
// yet; registration never overwrites.
func (s *MemberService) CreateMember(ctx context.Context, in MemberInput) (*models.MemberDetail, error) {
	if !in.Gender.Valid() {
		return nil, fmt.Errorf("gender %q: %w", in.Gender, errs.ErrInvalidArgument)
	}

	exists, err := s.members.Exists(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member %s: %w", in.MemberID, err)
	}
	if exists {
		return nil, fmt.Errorf("member %s: %w", in.MemberID, errs.ErrAlreadyExists)
	}

	now := time.Now()
	member := &models.Member{
		MemberID:    in.MemberID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		FullName:    in.FirstName + " " + in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Address:     in.Address,
		Status:      models.MemberStatusActive,
		PhotoURL:    "",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.members.Create(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to create member %s: %w", in.MemberID, err)
	}

	s.logger.Infof("Created member %s (%s)", created.MemberID, created.FullName)

	// A freshly registered member has no history to assemble.
	return &models.MemberDetail{
		Member:            *created,
		Age:               created.AgeAt(time.Now()),
		MembershipHistory: []*models.Membership{},
		Documents:         []*models.MemberDocument{},
	}, nil
}

// GetMember returns the full member aggregate: base fields, computed
// age, membership history and documents.
func (s *MemberService) GetMember(ctx context.Context, memberID string) (*models.MemberDetail, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", memberID, err)
	}
	if member == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}
	return s.assembleDetail(ctx, member)
}

func (s *MemberService) assembleDetail(ctx context.Context, member *models.Member) (*models.MemberDetail, error) {
	history, err := s.memberships.GetByMemberID(ctx, member.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get memberships for member %s: %w", member.MemberID, err)
	}
	if history == nil {
		history = []*models.Membership{}
	}

	docs, err := s.documents.GetByMemberID(ctx, member.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents for member %s: %w", member.MemberID, err)
	}
	if docs == nil {
		docs = []*models.MemberDocument{}
	}

	return &models.MemberDetail{
		Member:            *member,
		Age:               member.AgeAt(time.Now()),
		MembershipHistory: history,
		Documents:         docs,
	}, nil
}

// parseStatusFilter resolves the status filter for listings. A blank
// filter defaults to ACTIVE; anything outside the closed set is
// rejected.
func parseStatusFilter(filter string) (models.MemberStatus, error) {
	if strings.TrimSpace(filter) == "" {
		return models.MemberStatusActive, nil
	}
	status := models.MemberStatus(strings.ToUpper(filter))
	if !status.Valid() {
		return "", fmt.Errorf("status filter %q: %w", filter, errs.ErrInvalidArgument)
	}
	return status, nil
}

// ListMembers returns summaries of members matching the status filter
// and search key, newest first. The search key matches
// case-insensitively against full name, email or member id.
func (s *MemberService) ListMembers(ctx context.Context, filter, searchKey string) ([]*models.MemberSummary, error) {
	status, err := parseStatusFilter(filter)
	if err != nil {
		return nil, err
	}

	members, err := s.members.Search(ctx, repository.MemberFilters{
		Status:    &status,
		SearchKey: strings.TrimSpace(searchKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}

	summaries := make([]*models.MemberSummary, 0, len(members))
	for _, member := range members {
		summary, err := s.summarize(ctx, member)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *MemberService) summarize(ctx context.Context, member *models.Member) (*models.MemberSummary, error) {
	endDate, err := s.latestEndDate(ctx, member.MemberID)
	if err != nil {
		return nil, err
	}
	return &models.MemberSummary{
		MemberID:          member.MemberID,
		FullName:          member.FullName,
		Age:               member.AgeAt(time.Now()),
		Gender:            member.Gender,
		PhoneNumber:       member.PhoneNumber,
		Email:             member.Email,
		Status:            member.Status,
		PhotoURL:          member.PhotoURL,
		MembershipEndDate: endDate,
	}, nil
}

// latestEndDate returns the end date of the member's most-recently
// ending membership, or the sentinel date when the member has none.
func (s *MemberService) latestEndDate(ctx context.Context, memberID string) (time.Time, error) {
	latest, err := s.memberships.GetLatestByEndDate(ctx, memberID)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get latest membership for member %s: %w", memberID, err)
	}
	if latest == nil {
		return models.NoMembershipEndDate, nil
	}
	return latest.EndDate, nil
}

// UpdateMember overwrites a member's profile fields. Status is not
// touched by this operation.
func (s *MemberService) UpdateMember(ctx context.Context, memberID string, in MemberUpdateInput) (*models.MemberDetail, error) {
	if !in.Gender.Valid() {
		return nil, fmt.Errorf("gender %q: %w", in.Gender, errs.ErrInvalidArgument)
	}

	member := &models.Member{
		MemberID:    memberID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		FullName:    in.FirstName + " " + in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Address:     in.Address,
	}

	updated, err := s.members.Update(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to update member %s: %w", memberID, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}

	s.logger.Infof("Updated member %s", memberID)
	return s.assembleDetail(ctx, updated)
}

// UpdateMemberStatus sets a member's status.
func (s *MemberService) UpdateMemberStatus(ctx context.Context, memberID string, status models.MemberStatus) (*models.MemberDetail, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("member status %q: %w", status, errs.ErrInvalidArgument)
	}

	updated, err := s.members.UpdateStatus(ctx, memberID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of member %s: %w", memberID, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}

	s.logger.Infof("Updated member %s status to %s", memberID, status)
	return s.assembleDetail(ctx, updated)
}

// ListMembersEndingBy returns summaries of active members whose latest
// membership ends on or before the given date. Members with no
// membership carry the sentinel end date and are included for any date
// on or after it.
func (s *MemberService) ListMembersEndingBy(ctx context.Context, date time.Time) ([]*models.MemberSummary, error) {
	status := models.MemberStatusActive
	members, err := s.members.Search(ctx, repository.MemberFilters{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}

	summaries := make([]*models.MemberSummary, 0, len(members))
	for _, member := range members {
		summary, err := s.summarize(ctx, member)
		if err != nil {
			return nil, err
		}
		if summary.MembershipEndDate.After(date) {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

const uniqueViolation = "23505"

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `member_id, first_name, last_name, full_name, date_of_birth, gender, phone_number, email, address, status, photo_url, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(
		&member.MemberID, &member.FirstName, &member.LastName, &member.FullName,
		&member.DateOfBirth, &member.Gender, &member.PhoneNumber, &member.Email,
		&member.Address, &member.Status, &member.PhotoURL,
		&member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	query := `INSERT INTO members (member_id, first_name, last_name, full_name, date_of_birth, gender, phone_number, email, address, status, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		member.MemberID, member.FirstName, member.LastName, member.FullName,
		member.DateOfBirth, member.Gender, member.PhoneNumber, member.Email,
		member.Address, member.Status, member.PhotoURL,
		member.CreatedAt, member.UpdatedAt,
	).Scan(&member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("member %s: %w", member.MemberID, errs.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) GetByID(ctx context.Context, memberID string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1`
	member, err := scanMember(r.db.QueryRowContext(ctx, query, memberID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (r *memberRepository) Exists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM members WHERE member_id = $1)`, memberID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check member existence: %w", err)
	}
	return exists, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) (*models.Member, error) {
	// Single UPDATE so concurrent profile updates serialize at the row
	// instead of racing through a read-modify-write cycle.
	query := `UPDATE members SET first_name=$2, last_name=$3, full_name=$4, date_of_birth=$5, gender=$6, phone_number=$7, email=$8, address=$9, updated_at=$10
		WHERE member_id=$1 RETURNING ` + memberColumns
	member.UpdatedAt = time.Now()
	updated, err := scanMember(r.db.QueryRowContext(ctx, query,
		member.MemberID, member.FirstName, member.LastName, member.FullName,
		member.DateOfBirth, member.Gender, member.PhoneNumber, member.Email,
		member.Address, member.UpdatedAt,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return updated, nil
}

func (r *memberRepository) UpdateStatus(ctx context.Context, memberID string, status models.MemberStatus) (*models.Member, error) {
	query := `UPDATE members SET status=$2, updated_at=$3 WHERE member_id=$1 RETURNING ` + memberColumns
	updated, err := scanMember(r.db.QueryRowContext(ctx, query, memberID, status, time.Now()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member status: %w", err)
	}
	return updated, nil
}

func (r *memberRepository) Search(ctx context.Context, filters repository.MemberFilters) ([]*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filters.Status != nil {
		query += fmt.Sprintf(" AND LOWER(status) = LOWER($%d)", argIdx)
		args = append(args, *filters.Status)
		argIdx++
	}
	if filters.SearchKey != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d OR member_id ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filters.SearchKey+"%")
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `document_id, member_id, document_type, url, uploaded_at`

const upsertDocumentQuery = `INSERT INTO member_documents (document_id, member_id, document_type, url, uploaded_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (document_id) DO UPDATE SET url = EXCLUDED.url, uploaded_at = EXCLUDED.uploaded_at`

func (r *documentRepository) Upsert(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error) {
	doc.UploadedAt = time.Now()
	_, err := r.db.ExecContext(ctx, upsertDocumentQuery,
		doc.DocumentID, doc.MemberID, doc.Type, doc.URL, doc.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}
	return doc, nil
}

// UpsertWithMemberPhoto stores the document and mirrors its URL into the
// owning member's photo reference in one transaction, so the document
// row and the photo cache cannot diverge on a partial failure.
func (r *documentRepository) UpsertWithMemberPhoto(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	doc.UploadedAt = time.Now()
	if _, err := tx.ExecContext(ctx, upsertDocumentQuery,
		doc.DocumentID, doc.MemberID, doc.Type, doc.URL, doc.UploadedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE members SET photo_url = $2, updated_at = $3 WHERE member_id = $1`,
		doc.MemberID, doc.URL, doc.UploadedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to update member photo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit document transaction: %w", err)
	}
	return doc, nil
}

func (r *documentRepository) GetByMemberID(ctx context.Context, memberID string) ([]*models.MemberDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM member_documents WHERE member_id = $1 ORDER BY uploaded_at`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.MemberDocument
	for rows.Next() {
		doc := &models.MemberDocument{}
		if err := rows.Scan(&doc.DocumentID, &doc.MemberID, &doc.Type, &doc.URL, &doc.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

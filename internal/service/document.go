package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/repository"
	"github.com/jatana/gymdesk/internal/storage"
)

// DocumentService owns the document index and the blob-storage
// integration behind it.
type DocumentService struct {
	members   repository.MemberRepository
	documents repository.DocumentRepository
	blobs     storage.BlobStore
	logger    *logrus.Logger
}

// NewDocumentService creates a DocumentService with its required
// dependencies.
func NewDocumentService(
	members repository.MemberRepository,
	documents repository.DocumentRepository,
	blobs storage.BlobStore,
	logger *logrus.Logger,
) *DocumentService {
	return &DocumentService{
		members:   members,
		documents: documents,
		blobs:     blobs,
		logger:    logger,
	}
}

// Upload stores the file under the member's deterministic document key
// and upserts the document record, so re-uploading a type replaces the
// previous document rather than adding a duplicate. A PHOTO upload also
// mirrors the stored URL into the member's photo reference.
func (s *DocumentService) Upload(ctx context.Context, memberID string, docType models.DocumentType, data []byte) (*models.MemberDocument, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("document type %q: %w", docType, errs.ErrInvalidArgument)
	}

	exists, err := s.members.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member %s: %w", memberID, err)
	}
	if !exists {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}

	key := models.DocumentID(memberID, docType)
	url, err := s.blobs.Store(ctx, key, data)
	if err != nil {
		s.logger.WithError(err).Errorf("Blob store failed for document %s", key)
		return nil, fmt.Errorf("failed to store document %s: %w: %v", key, errs.ErrStorageUnavailable, err)
	}

	doc := &models.MemberDocument{
		DocumentID: key,
		MemberID:   memberID,
		Type:       docType,
		URL:        url,
	}

	if docType == models.DocumentTypePhoto {
		doc, err = s.documents.UpsertWithMemberPhoto(ctx, doc)
	} else {
		doc, err = s.documents.Upsert(ctx, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save document %s: %w", key, err)
	}

	s.logger.Infof("Stored document %s for member %s at %s", key, memberID, url)
	return doc, nil
}

// ListForMember returns all documents of the member. An unknown member
// is an error: callers can tell "no documents" apart from "no such
// member".
func (s *DocumentService) ListForMember(ctx context.Context, memberID string) ([]*models.MemberDocument, error) {
	exists, err := s.members.Exists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member %s: %w", memberID, err)
	}
	if !exists {
		return nil, fmt.Errorf("member %s: %w", memberID, errs.ErrNotFound)
	}

	docs, err := s.documents.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents for member %s: %w", memberID, err)
	}
	if docs == nil {
		docs = []*models.MemberDocument{}
	}
	return docs, nil
}

package models

import "time"

// DocumentType is the closed set of document types a member can upload.
type DocumentType string

const (
	DocumentTypePhoto        DocumentType = "PHOTO"
	DocumentTypeIDProof      DocumentType = "ID_PROOF"
	DocumentTypeAddressProof DocumentType = "ADDRESS_PROOF"
	DocumentTypeOther        DocumentType = "OTHER"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypePhoto, DocumentTypeIDProof, DocumentTypeAddressProof, DocumentTypeOther:
		return true
	}
	return false
}

// DocumentID derives the deterministic document id for a member and
// type. Because the id is derived, a member holds at most one document
// per type and re-uploads replace the previous record.
func DocumentID(memberID string, docType DocumentType) string {
	return memberID + "-" + string(docType)
}

// MemberDocument is an uploaded file associated with a member. The URL
// points at the blob-storage provider.
type MemberDocument struct {
	DocumentID string       `json:"document_id" db:"document_id"`
	MemberID   string       `json:"member_id" db:"member_id"`
	Type       DocumentType `json:"document_type" db:"document_type"`
	URL        string       `json:"url" db:"url"`
	UploadedAt time.Time    `json:"uploaded_at" db:"uploaded_at"`
}

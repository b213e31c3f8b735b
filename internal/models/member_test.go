package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  *time.Time
		want int
	}{
		{"nil date of birth", nil, 0},
		{"birthday already passed this year", datePtr(1990, time.June, 15), 36},
		{"birthday later this year", datePtr(1990, time.December, 15), 35},
		{"birthday today", datePtr(1990, time.September, 1), 36},
		{"born after now", datePtr(2030, time.January, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Member{DateOfBirth: tt.dob}
			assert.Equal(t, tt.want, m.AgeAt(now))
		})
	}
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "M1-PHOTO", DocumentID("M1", DocumentTypePhoto))
	assert.Equal(t, "M1-ID_PROOF", DocumentID("M1", DocumentTypeIDProof))
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

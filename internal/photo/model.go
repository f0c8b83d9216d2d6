// Package photo implements the upload flow and visibility-scoped access to
// uploaded assets: slot issuance, upload confirmation, listing, and deletion.
package photo

import (
	"errors"
	"time"
)

// Visibility flag values. A NULL flag marks a legacy row from before the
// flag existed and is treated as visible to everyone in scope.
const (
	VisibilityAll       = "all"
	VisibilityOwnerOnly = "owner_only"
)

// ErrNotFound is returned when a photo does not exist or is outside the
// caller's scope. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("photo not found")

// ErrForbidden is returned when the caller may see a photo but lacks the
// privilege the operation requires.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidArgument is returned when a required field is missing or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDuplicateKey is returned when a metadata row already exists for the
// file key being confirmed.
var ErrDuplicateKey = errors.New("file key already confirmed")

// Photo is one uploaded asset. The file key is unique and immutable once
// assigned; rows are never updated in place.
type Photo struct {
	ID         string    `json:"id"`
	OrgID      *string   `json:"organizationId,omitempty"`
	UploadedBy string    `json:"uploadedBy"`
	FileKey    string    `json:"fileKey"`
	FileURL    string    `json:"fileUrl"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	Category   string    `json:"category"`
	Notes      *string   `json:"notes,omitempty"`
	Tags       []string  `json:"tags"`
	AltText    *string   `json:"altText,omitempty"`
	Visibility *string   `json:"visibility,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OwnerOnly reports whether the row carries the owner_only flag.
func (p *Photo) OwnerOnly() bool {
	return p.Visibility != nil && *p.Visibility == VisibilityOwnerOnly
}

package photo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/clientdesk/portal/internal/session"
	"github.com/clientdesk/portal/internal/storage"
)

// uploadSlotTTL is how long an issued upload URL stays valid. The expiry is
// enforced by the storage service.
const uploadSlotTTL = time.Hour

// UploadSlot is the result of a slot request: where to PUT the bytes, where
// they will be readable afterwards, and the key to confirm with.
type UploadSlot struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	FileKey   string `json:"fileKey"`
}

// ConfirmUploadInput carries the client's report that an upload finished.
type ConfirmUploadInput struct {
	FileKey    string
	FileName   string
	FileURL    string
	FileSize   int64
	MimeType   string
	Category   string
	Notes      *string
	Tags       []string
	AltText    *string
	Visibility *string
}

// Service orchestrates uploads between the storage gateway and the metadata
// store, and applies the visibility policy on reads and deletes.
type Service struct {
	repo  Repository
	store storage.Storage
	now   func() time.Time
}

// NewService creates a new photo Service.
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, store: store, now: time.Now}
}

// RequestUploadSlot issues a presigned PUT URL for a fresh storage key. The
// caller uploads directly to storage; the server never sees the bytes.
func (s *Service) RequestUploadSlot(ctx context.Context, caller session.Identity, fileName, fileType, category string) (*UploadSlot, error) {
	switch {
	case fileName == "":
		return nil, fmt.Errorf("%w: fileName is required", ErrInvalidArgument)
	case fileType == "":
		return nil, fmt.Errorf("%w: fileType is required", ErrInvalidArgument)
	case category == "":
		return nil, fmt.Errorf("%w: category is required", ErrInvalidArgument)
	}

	key := s.storageKey(caller, category, fileName)

	uploadURL, err := s.store.PresignedPutURL(ctx, key, uploadSlotTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload for %q: %w", key, err)
	}

	return &UploadSlot{
		UploadURL: uploadURL,
		PublicURL: s.store.PublicURL(key),
		FileKey:   key,
	}, nil
}

// ConfirmUpload persists the metadata row for a completed upload. The
// referenced object must actually exist in storage; its recorded size and
// content type are taken from storage rather than from the client's report.
func (s *Service) ConfirmUpload(ctx context.Context, caller session.Identity, in ConfirmUploadInput) (*Photo, error) {
	switch {
	case in.FileKey == "":
		return nil, fmt.Errorf("%w: fileKey is required", ErrInvalidArgument)
	case in.FileName == "":
		return nil, fmt.Errorf("%w: fileName is required", ErrInvalidArgument)
	case in.FileURL == "":
		return nil, fmt.Errorf("%w: fileUrl is required", ErrInvalidArgument)
	}

	if in.Visibility != nil && *in.Visibility != VisibilityAll && *in.Visibility != VisibilityOwnerOnly {
		return nil, fmt.Errorf("%w: visibility must be %q or %q", ErrInvalidArgument, VisibilityAll, VisibilityOwnerOnly)
	}

	info, err := s.store.Stat(ctx, in.FileKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: no uploaded object under fileKey %q", ErrInvalidArgument, in.FileKey)
	}
	if err != nil {
		return nil, fmt.Errorf("verify uploaded object: %w", err)
	}

	size := info.Size
	mimeType := info.ContentType
	if mimeType == "" {
		mimeType = in.MimeType
	}

	p := &Photo{
		OrgID:      caller.OrgID,
		UploadedBy: caller.UserID,
		FileKey:    in.FileKey,
		FileURL:    in.FileURL,
		FileName:   in.FileName,
		FileSize:   size,
		MimeType:   mimeType,
		Category:   in.Category,
		Notes:      in.Notes,
		Tags:       in.Tags,
		AltText:    in.AltText,
		Visibility: in.Visibility,
	}

	created, err := s.repo.Insert(ctx, p)
	if errors.Is(err, ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: fileKey %q already confirmed", ErrInvalidArgument, in.FileKey)
	}
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return created, nil
}

// List returns the photos the caller may see, newest first.
func (s *Service) List(ctx context.Context, caller session.Identity) ([]Photo, error) {
	return s.repo.List(ctx, VisibleScope(caller))
}

// Delete removes a photo's storage object and metadata row. Owner-only
// photos may only be deleted by staff or the organization's team lead.
// A storage-delete failure is logged but does not block metadata removal.
func (s *Service) Delete(ctx context.Context, caller session.Identity, photoID string) error {
	p, err := s.repo.Get(ctx, photoID, TenantScope(caller))
	if err != nil {
		return err
	}

	if p.OwnerOnly() && !privileged(caller) {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, p.FileKey); err != nil {
		log.Printf("photo delete: storage delete of %q failed, removing metadata anyway: %v", p.FileKey, err)
	}

	return s.repo.Delete(ctx, p.ID)
}

// storageKey builds the deterministic object key:
// {org-<orgID>|users}/{category}/{userID}-{epochMillis}-{sanitizedFileName}.
func (s *Service) storageKey(caller session.Identity, category, fileName string) string {
	scope := "users"
	if caller.OrgID != nil {
		scope = "org-" + *caller.OrgID
	}
	return fmt.Sprintf("%s/%s/%s-%d-%s",
		scope, category, caller.UserID, s.now().UnixMilli(), sanitizeFileName(fileName))
}

// sanitizeFileName replaces every rune that is not alphanumeric, '.', or '-'
// with an underscore.
func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}

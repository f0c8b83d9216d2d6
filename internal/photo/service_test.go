package photo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/portal/internal/session"
	"github.com/clientdesk/portal/internal/storage"
)

type fakeStorage struct {
	putURL    string
	putErr    error
	statInfo  storage.ObjectInfo
	statErr   error
	deleteErr error

	statKeys    []string
	deletedKeys []string
}

func (f *fakeStorage) PresignedPutURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return f.putURL, f.putErr
}

func (f *fakeStorage) PresignedGetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (f *fakeStorage) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	f.statKeys = append(f.statKeys, key)
	return f.statInfo, f.statErr
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	return f.deleteErr
}

func (f *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type fakeRepo struct {
	inserted   []*Photo
	insertErr  error
	getPhoto   *Photo
	getErr     error
	getScope   Filter
	listScope  Filter
	listResult []Photo
	deletedIDs []string
}

func (f *fakeRepo) Insert(_ context.Context, p *Photo) (*Photo, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, p)
	stored := *p
	stored.ID = "photo-1"
	stored.CreatedAt = time.Now()
	return &stored, nil
}

func (f *fakeRepo) List(_ context.Context, scope Filter) ([]Photo, error) {
	f.listScope = scope
	return f.listResult, nil
}

func (f *fakeRepo) Get(_ context.Context, id string, scope Filter) (*Photo, error) {
	f.getScope = scope
	return f.getPhoto, f.getErr
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func newTestService(repo *fakeRepo, store *fakeStorage) *Service {
	svc := NewService(repo, store)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func orgCaller(role, accountType string) session.Identity {
	org := "org1"
	return session.Identity{UserID: "user-a", Role: role, AccountType: accountType, OrgID: &org}
}

func TestRequestUploadSlot_KeyLayout(t *testing.T) {
	store := &fakeStorage{putURL: "https://storage.test/put"}
	svc := newTestService(&fakeRepo{}, store)

	slot, err := svc.RequestUploadSlot(context.Background(), orgCaller(session.RoleClient, ""),
		"photo.jpg", "image/jpeg", "headshots")
	require.NoError(t, err)

	assert.Equal(t, "org-org1/headshots/user-a-1700000000000-photo.jpg", slot.FileKey)
	assert.Equal(t, "https://storage.test/put", slot.UploadURL)
	assert.Equal(t, "https://cdn.test/org-org1/headshots/user-a-1700000000000-photo.jpg", slot.PublicURL)
}

func TestRequestUploadSlot_OrglessCallerUsesUsersPrefix(t *testing.T) {
	store := &fakeStorage{putURL: "https://storage.test/put"}
	svc := newTestService(&fakeRepo{}, store)

	caller := session.Identity{UserID: "user-a", Role: session.RoleClient}
	slot, err := svc.RequestUploadSlot(context.Background(), caller, "cv.pdf", "application/pdf", "docs")
	require.NoError(t, err)
	assert.Equal(t, "users/docs/user-a-1700000000000-cv.pdf", slot.FileKey)
}

func TestRequestUploadSlot_SanitizesFileName(t *testing.T) {
	store := &fakeStorage{putURL: "https://storage.test/put"}
	svc := newTestService(&fakeRepo{}, store)

	slot, err := svc.RequestUploadSlot(context.Background(), orgCaller(session.RoleClient, ""),
		"my photo (final)!.jpg", "image/jpeg", "headshots")
	require.NoError(t, err)
	assert.Equal(t, "org-org1/headshots/user-a-1700000000000-my_photo__final__.jpg", slot.FileKey)
}

func TestRequestUploadSlot_MissingFields(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStorage{})
	caller := orgCaller(session.RoleClient, "")

	tests := []struct{ fileName, fileType, category string }{
		{"", "image/jpeg", "headshots"},
		{"photo.jpg", "", "headshots"},
		{"photo.jpg", "image/jpeg", ""},
	}
	for _, tt := range tests {
		_, err := svc.RequestUploadSlot(context.Background(), caller, tt.fileName, tt.fileType, tt.category)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestConfirmUpload_InsertsExactlyOneRow(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStorage{statInfo: storage.ObjectInfo{Size: 2048, ContentType: "image/jpeg"}}
	svc := newTestService(repo, store)

	p, err := svc.ConfirmUpload(context.Background(), orgCaller(session.RoleClient, ""), ConfirmUploadInput{
		FileKey:  "org-org1/headshots/user-a-1700000000000-photo.jpg",
		FileName: "photo.jpg",
		FileURL:  "https://cdn.test/org-org1/headshots/user-a-1700000000000-photo.jpg",
		FileSize: 9999, // client-reported size is ignored in favor of storage
		MimeType: "application/octet-stream",
		Category: "headshots",
	})
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	row := repo.inserted[0]
	assert.Equal(t, "headshots", row.Category)
	assert.Equal(t, "user-a", row.UploadedBy)
	require.NotNil(t, row.OrgID)
	assert.Equal(t, "org1", *row.OrgID)
	assert.Equal(t, int64(2048), row.FileSize)
	assert.Equal(t, "image/jpeg", row.MimeType)
	assert.Equal(t, "photo-1", p.ID)
}

func TestConfirmUpload_MissingObjectRejected(t *testing.T) {
	repo := &fakeRepo{}
	store := &fakeStorage{statErr: storage.ErrObjectNotFound}
	svc := newTestService(repo, store)

	_, err := svc.ConfirmUpload(context.Background(), orgCaller(session.RoleClient, ""), ConfirmUploadInput{
		FileKey:  "org-org1/headshots/forged-key",
		FileName: "photo.jpg",
		FileURL:  "https://cdn.test/forged",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, repo.inserted)
}

func TestConfirmUpload_MissingFields(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStorage{})
	caller := orgCaller(session.RoleClient, "")

	tests := []ConfirmUploadInput{
		{FileName: "a.jpg", FileURL: "https://x"},
		{FileKey: "k", FileURL: "https://x"},
		{FileKey: "k", FileName: "a.jpg"},
	}
	for _, in := range tests {
		_, err := svc.ConfirmUpload(context.Background(), caller, in)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestConfirmUpload_DuplicateKeyRejected(t *testing.T) {
	repo := &fakeRepo{insertErr: ErrDuplicateKey}
	store := &fakeStorage{statInfo: storage.ObjectInfo{Size: 2048, ContentType: "image/jpeg"}}
	svc := newTestService(repo, store)

	_, err := svc.ConfirmUpload(context.Background(), orgCaller(session.RoleClient, ""), ConfirmUploadInput{
		FileKey:  "org-org1/headshots/user-a-1700000000000-photo.jpg",
		FileName: "photo.jpg",
		FileURL:  "https://cdn.test/org-org1/headshots/user-a-1700000000000-photo.jpg",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, repo.inserted)
}

func TestConfirmUpload_RejectsUnknownVisibility(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeStorage{})
	bad := "friends_only"
	_, err := svc.ConfirmUpload(context.Background(), orgCaller(session.RoleClient, ""), ConfirmUploadInput{
		FileKey: "k", FileName: "a.jpg", FileURL: "https://x", Visibility: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDelete_StorageFailureStillRemovesRow(t *testing.T) {
	org := "org1"
	repo := &fakeRepo{getPhoto: &Photo{ID: "photo-1", OrgID: &org, FileKey: "org-org1/headshots/k"}}
	store := &fakeStorage{deleteErr: errors.New("storage unavailable")}
	svc := newTestService(repo, store)

	err := svc.Delete(context.Background(), orgCaller(session.RoleClient, ""), "photo-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"org-org1/headshots/k"}, store.deletedKeys)
	assert.Equal(t, []string{"photo-1"}, repo.deletedIDs)
}

func TestDelete_OwnerOnlyPrivilegeMatrix(t *testing.T) {
	ownerOnly := VisibilityOwnerOnly

	tests := []struct {
		name    string
		caller  session.Identity
		wantErr error
	}{
		{"ordinary member forbidden", orgCaller(session.RoleClient, ""), ErrForbidden},
		{"admin allowed", orgCaller(session.RoleAdmin, ""), nil},
		{"staff allowed", orgCaller(session.RoleStaff, ""), nil},
		{"team lead allowed", orgCaller(session.RoleClient, session.AccountTypeTeamLead), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := "org1"
			repo := &fakeRepo{getPhoto: &Photo{ID: "photo-1", OrgID: &org, FileKey: "k", Visibility: &ownerOnly}}
			store := &fakeStorage{}
			svc := newTestService(repo, store)

			err := svc.Delete(context.Background(), tt.caller, "photo-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.deletedIDs)
				assert.Empty(t, store.deletedKeys)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"photo-1"}, repo.deletedIDs)
		})
	}
}

func TestDelete_OrdinaryMemberCanDeleteVisiblePhoto(t *testing.T) {
	org := "org1"
	all := VisibilityAll
	repo := &fakeRepo{getPhoto: &Photo{ID: "photo-1", OrgID: &org, FileKey: "k", Visibility: &all}}
	svc := newTestService(repo, &fakeStorage{})

	err := svc.Delete(context.Background(), orgCaller(session.RoleClient, ""), "photo-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"photo-1"}, repo.deletedIDs)
}

func TestDelete_OutOfScopeReadsAsNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: ErrNotFound}
	store := &fakeStorage{}
	svc := newTestService(repo, store)

	err := svc.Delete(context.Background(), orgCaller(session.RoleClient, ""), "other-org-photo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.deletedKeys)
	assert.Empty(t, repo.deletedIDs)
}

func TestList_AppliesVisibleScope(t *testing.T) {
	repo := &fakeRepo{listResult: []Photo{{ID: "photo-1"}}}
	svc := newTestService(repo, &fakeStorage{})

	photos, err := svc.List(context.Background(), orgCaller(session.RoleClient, ""))
	require.NoError(t, err)
	assert.Len(t, photos, 1)

	clause, args := repo.listScope.Clause(1)
	assert.Equal(t, "org_id = $1 AND (visibility = $2 OR visibility IS NULL)", clause)
	assert.Equal(t, []any{"org1", VisibilityAll}, args)
}

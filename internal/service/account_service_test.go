package service

import (
	"context"
	"errors"
	"testing"

	"clipmark/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAccountService_AuthenticateCreator_BadCredentials(t *testing.T) {
	t.Parallel()

	identities := noopIdentitySessions()
	identities.signInFn = func(_ context.Context, _, _ string) (*models.Session, error) {
		return nil, models.NewUnauthorizedError("Invalid login credentials")
	}

	svc := NewAccountService(identities, noopCreatorRepo(), noopClipperRepo(), &storeStub{})
	_, err := svc.AuthenticateCreator(context.Background(), "creator@example.com", "wrong")

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeUnauthorized))
}

func TestAccountService_AuthenticateCreator_MissingProfile(t *testing.T) {
	t.Parallel()

	// Credentials are valid but no creator profile exists. This must stay
	// distinguishable from a wrong password.
	svc := NewAccountService(noopIdentitySessions(), noopCreatorRepo(), noopClipperRepo(), &storeStub{})
	_, err := svc.AuthenticateCreator(context.Background(), "creator@example.com", "password1")

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Contains(t, err.Error(), "authentication succeeded but profile not found")
}

func TestAccountService_AuthenticateClipper_Success(t *testing.T) {
	t.Parallel()

	clippers := noopClipperRepo()
	clippers.getByIDFn = func(_ context.Context, id string) (*models.ClipperProfile, error) {
		return &models.ClipperProfile{ID: id, FullName: "Sam Clipper"}, nil
	}

	svc := NewAccountService(noopIdentitySessions(), noopCreatorRepo(), clippers, &storeStub{})
	user, err := svc.AuthenticateClipper(context.Background(), "clipper@example.com", "password1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleClipper, user.Role)
	assert.Equal(t, "tok", user.Token)
}

func TestAccountService_GetAccount_ProbesCreatorFirst(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id}, nil
	}
	clipperProbed := false
	clippers := noopClipperRepo()
	clippers.getByIDFn = func(_ context.Context, id string) (*models.ClipperProfile, error) {
		clipperProbed = true
		return nil, nil
	}

	svc := NewAccountService(noopIdentitySessions(), creators, clippers, &storeStub{})
	_, role, err := svc.GetAccount(context.Background(), "identity-1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleCreator, role)
	assert.False(t, clipperProbed)
}

func TestAccountService_GetAccount_NoProfile(t *testing.T) {
	t.Parallel()

	svc := NewAccountService(noopIdentitySessions(), noopCreatorRepo(), noopClipperRepo(), &storeStub{})
	_, _, err := svc.GetAccount(context.Background(), "identity-1")

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestAccountService_UpdateAccount_PartialUpdate(t *testing.T) {
	t.Parallel()

	clippers := noopClipperRepo()
	clippers.getByIDFn = func(_ context.Context, id string) (*models.ClipperProfile, error) {
		return &models.ClipperProfile{
			ID:            id,
			FullName:      "Old Name",
			BrandName:     "Old Brand",
			Platform:      models.PlatformTiktok,
			FollowerCount: 1000,
		}, nil
	}
	var saved *models.ClipperProfile
	clippers.updateFn = func(_ context.Context, p *models.ClipperProfile) error {
		saved = p
		return nil
	}

	svc := NewAccountService(noopIdentitySessions(), noopCreatorRepo(), clippers, &storeStub{})
	count := int64(5000)
	_, role, err := svc.UpdateAccount(context.Background(), "identity-1", UpdateProfileInput{
		FullName:      "New Name",
		FollowerCount: &count,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleClipper, role)
	require.NotNil(t, saved)
	assert.Equal(t, "New Name", saved.FullName)
	assert.Equal(t, "Old Brand", saved.BrandName, "unset fields must not change")
	assert.Equal(t, int64(5000), saved.FollowerCount)
}

func TestAccountService_UpdateAccount_RejectsBadPlatform(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id}, nil
	}

	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), &storeStub{})
	_, _, err := svc.UpdateAccount(context.Background(), "identity-1", UpdateProfileInput{Platform: "vine"})
	assertValidationError(t, err)
}

func TestAccountService_ChangePassword_ValidatesNewPassword(t *testing.T) {
	t.Parallel()

	identities := noopIdentitySessions()
	rotated := false
	identities.changePasswordFn = func(_ context.Context, _, _, _ string) error {
		rotated = true
		return nil
	}

	svc := NewAccountService(identities, noopCreatorRepo(), noopClipperRepo(), &storeStub{})

	err := svc.ChangePassword(context.Background(), "identity-1", "password1", "weak")
	assertValidationError(t, err)
	assert.False(t, rotated)

	err = svc.ChangePassword(context.Background(), "identity-1", "password1", "newpassword2")
	require.NoError(t, err)
	assert.True(t, rotated)
}

func TestAccountService_UploadProfileImage_ReplacesOldBlob(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{
			ID:                  id,
			BrandProfilePicture: strPtr("http://localhost:8080/media/brand-profile-pics/identity-1/profile-old.webp"),
		}, nil
	}

	store := &storeStub{}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), store)

	url, err := svc.UploadProfileImage(context.Background(), "identity-1", "avatar.png", "image/png", testPNG(t, 16, 16))
	require.NoError(t, err)
	assert.Contains(t, url, "/media/brand-profile-pics/identity-1/")

	require.Len(t, store.deletes, 1, "the replaced blob should be removed")
	assert.Equal(t, "brand-profile-pics/identity-1/profile-old.webp", store.deletes[0])
}

func TestAccountService_UploadProfileImage_RejectsBadType(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id}, nil
	}
	store := &storeStub{}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), store)

	_, err := svc.UploadProfileImage(context.Background(), "identity-1", "doc.pdf", "application/pdf", []byte("%PDF"))
	assertValidationError(t, err)
	assert.Empty(t, store.uploads, "nothing may be uploaded for a rejected file")
}

func TestAccountService_DeleteProfileImage_Success(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{
			ID:                  id,
			BrandProfilePicture: strPtr("http://localhost:8080/media/brand-profile-pics/identity-1/profile-a.webp"),
		}, nil
	}
	var pictureUpdates []*string
	creators.updatePictureFn = func(_ context.Context, _ string, url *string) error {
		pictureUpdates = append(pictureUpdates, url)
		return nil
	}

	store := &storeStub{}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), store)

	err := svc.DeleteProfileImage(context.Background(), "identity-1")
	require.NoError(t, err)
	require.Len(t, pictureUpdates, 1)
	assert.Nil(t, pictureUpdates[0], "the column is nulled before the blob delete")
	assert.Equal(t, []string{"brand-profile-pics/identity-1/profile-a.webp"}, store.deletes)
}

func TestAccountService_DeleteProfileImage_BlobFailureRestoresColumn(t *testing.T) {
	t.Parallel()

	prev := "http://localhost:8080/media/brand-profile-pics/identity-1/profile-a.webp"
	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id, BrandProfilePicture: strPtr(prev)}, nil
	}
	var pictureUpdates []*string
	creators.updatePictureFn = func(_ context.Context, _ string, url *string) error {
		pictureUpdates = append(pictureUpdates, url)
		return nil
	}

	store := &storeStub{
		deleteFn: func(_ context.Context, _, _ string) error {
			return errors.New("backend unavailable")
		},
	}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), store)

	err := svc.DeleteProfileImage(context.Background(), "identity-1")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.Contains(t, err.Error(), "rollback")

	require.Len(t, pictureUpdates, 2)
	assert.Nil(t, pictureUpdates[0])
	require.NotNil(t, pictureUpdates[1])
	assert.Equal(t, prev, *pictureUpdates[1], "the previous URL must be restored")
}

func TestAccountService_DeleteProfileImage_RollbackAlsoFails(t *testing.T) {
	t.Parallel()

	prev := "http://localhost:8080/media/brand-profile-pics/identity-1/profile-a.webp"
	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id, BrandProfilePicture: strPtr(prev)}, nil
	}
	calls := 0
	creators.updatePictureFn = func(_ context.Context, _ string, url *string) error {
		calls++
		if calls > 1 {
			return errors.New("db down")
		}
		return nil
	}

	store := &storeStub{
		deleteFn: func(_ context.Context, _, _ string) error {
			return errors.New("backend unavailable")
		},
	}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), store)

	err := svc.DeleteProfileImage(context.Background(), "identity-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollback also failed")
}

func TestAccountService_DeleteProfileImage_NoImage(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{ID: id}, nil
	}
	svc := NewAccountService(noopIdentitySessions(), creators, noopClipperRepo(), &storeStub{})

	err := svc.DeleteProfileImage(context.Background(), "identity-1")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestAccountService_DeleteAccount_RemovesProfileBlobAndIdentity(t *testing.T) {
	t.Parallel()

	creators := noopCreatorRepo()
	creators.getByIDFn = func(_ context.Context, id string) (*models.CreatorProfile, error) {
		return &models.CreatorProfile{
			ID:                  id,
			BrandProfilePicture: strPtr("http://localhost:8080/media/brand-profile-pics/identity-1/profile-a.webp"),
		}, nil
	}
	profileDeleted := false
	creators.deleteFn = func(_ context.Context, _ string) error {
		profileDeleted = true
		return nil
	}
	identities := noopIdentitySessions()
	identityDeleted := false
	identities.deleteFn = func(_ context.Context, _ string) error {
		identityDeleted = true
		return nil
	}

	store := &storeStub{}
	svc := NewAccountService(identities, creators, noopClipperRepo(), store)

	require.NoError(t, svc.DeleteAccount(context.Background(), "identity-1"))
	assert.True(t, profileDeleted)
	assert.True(t, identityDeleted)
	assert.Len(t, store.deletes, 1)
}

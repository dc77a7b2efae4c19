package service

import (
	"context"
	"errors"
	"testing"

	"clipmark/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatorInput() RegisterCreatorInput {
	return RegisterCreatorInput{
		Email:             "creator@example.com",
		Password:          "password1",
		FullName:          "Jamie Creator",
		BrandName:         "Jamie Media",
		SocialMediaHandle: "jamie.creator",
		Platform:          "youtube",
		Niche:             "gaming",
		Country:           "Germany",
	}
}

func validClipperInput() RegisterClipperInput {
	return RegisterClipperInput{
		Email:             "clipper@example.com",
		Password:          "password1",
		FullName:          "Sam Clipper",
		BrandName:         "Sam Clips",
		SocialMediaHandle: "sam_clips",
		Platform:          "tiktok",
		Niche:             "entertainment",
		Country:           "France",
		FollowerCount:     150000,
		PricePerPost:      200,
	}
}

func TestRegistrationService_RegisterCreator_Success(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	creators := noopCreatorRepo()
	var created *models.CreatorProfile
	creators.createFn = func(_ context.Context, p *models.CreatorProfile) error {
		created = p
		return nil
	}

	svc := NewRegistrationService(identities, creators, noopClipperRepo())
	user, err := svc.RegisterCreator(context.Background(), validCreatorInput())
	require.NoError(t, err)

	assert.Equal(t, models.RoleCreator, user.Role)
	assert.Equal(t, "tok", user.Token)
	assert.Equal(t, "ref", user.RefreshToken)
	require.NotNil(t, created)
	assert.Equal(t, "identity-1", created.ID, "profile ID must equal the identity ID")
	assert.Equal(t, models.PlatformYoutube, created.Platform)
}

func TestRegistrationService_RegisterCreator_DuplicateIdentity(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	identities.registerFn = func(_ context.Context, _, _ string) (*models.Session, error) {
		return nil, errDuplicate
	}
	creators := noopCreatorRepo()
	profileCreated := false
	creators.createFn = func(_ context.Context, _ *models.CreatorProfile) error {
		profileCreated = true
		return nil
	}

	svc := NewRegistrationService(identities, creators, noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.Contains(t, err.Error(), "User with this email already exists")
	assert.False(t, profileCreated, "profile must not be created when the identity insert fails")
}

func TestRegistrationService_RegisterClipper_DuplicateMessage(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	identities.registerFn = func(_ context.Context, _, _ string) (*models.Session, error) {
		return nil, errDuplicate
	}

	svc := NewRegistrationService(identities, noopCreatorRepo(), noopClipperRepo())
	_, err := svc.RegisterClipper(context.Background(), validClipperInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.Contains(t, err.Error(), "Clipper with this email already exists")
}

func TestRegistrationService_RegisterCreator_MissingSessionID(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	identities.registerFn = func(_ context.Context, _, _ string) (*models.Session, error) {
		return &models.Session{ID: "", Token: "tok"}, nil
	}
	rollbackCalled := false
	identities.deleteFn = func(_ context.Context, _ string) error {
		rollbackCalled = true
		return nil
	}

	svc := NewRegistrationService(identities, noopCreatorRepo(), noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.False(t, rollbackCalled, "no rollback is possible without an identity ID")
}

func TestRegistrationService_RegisterCreator_ProfileFailureRollsBack(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	var deletedID string
	identities.deleteFn = func(_ context.Context, id string) error {
		deletedID = id
		return nil
	}
	creators := noopCreatorRepo()
	creators.createFn = func(_ context.Context, _ *models.CreatorProfile) error {
		return errors.New("connection refused")
	}

	svc := NewRegistrationService(identities, creators, noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.Equal(t, "identity-1", deletedID, "the orphaned identity must be deleted")
}

func TestRegistrationService_RegisterCreator_ProfileDuplicateRollsBackToConflict(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	rollbackCalled := false
	identities.deleteFn = func(_ context.Context, _ string) error {
		rollbackCalled = true
		return nil
	}
	creators := noopCreatorRepo()
	creators.createFn = func(_ context.Context, _ *models.CreatorProfile) error {
		return errDuplicate
	}

	svc := NewRegistrationService(identities, creators, noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.True(t, rollbackCalled)
}

func TestRegistrationService_RegisterCreator_RollbackAlsoFails(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	identities.deleteFn = func(_ context.Context, _ string) error {
		return errors.New("identity store unreachable")
	}
	creators := noopCreatorRepo()
	creators.createFn = func(_ context.Context, _ *models.CreatorProfile) error {
		return errors.New("profile insert failed")
	}

	svc := NewRegistrationService(identities, creators, noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.Contains(t, err.Error(), "registration failed and rollback also failed")
}

func TestRegistrationService_Validation(t *testing.T) {
	t.Parallel()

	svc := NewRegistrationService(noopIdentityRegistrar(), noopCreatorRepo(), noopClipperRepo())
	ctx := context.Background()

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()
		in := validCreatorInput()
		in.Password = "short"
		_, err := svc.RegisterCreator(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("password without digit", func(t *testing.T) {
		t.Parallel()
		in := validCreatorInput()
		in.Password = "passwordonly"
		_, err := svc.RegisterCreator(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("bad email", func(t *testing.T) {
		t.Parallel()
		in := validCreatorInput()
		in.Email = "not-an-email"
		_, err := svc.RegisterCreator(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("unknown platform", func(t *testing.T) {
		t.Parallel()
		in := validCreatorInput()
		in.Platform = "myspace"
		_, err := svc.RegisterCreator(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("unknown niche", func(t *testing.T) {
		t.Parallel()
		in := validCreatorInput()
		in.Niche = "dogs"
		_, err := svc.RegisterCreator(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("negative follower count", func(t *testing.T) {
		t.Parallel()
		in := validClipperInput()
		in.FollowerCount = -1
		_, err := svc.RegisterClipper(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("price above cap", func(t *testing.T) {
		t.Parallel()
		in := validClipperInput()
		in.PricePerPost = 500_000_001
		_, err := svc.RegisterClipper(ctx, in)
		assertValidationError(t, err)
	})
}

func TestRegistrationService_RegisterClipper_Success(t *testing.T) {
	t.Parallel()

	clippers := noopClipperRepo()
	var created *models.ClipperProfile
	clippers.createFn = func(_ context.Context, p *models.ClipperProfile) error {
		created = p
		return nil
	}

	svc := NewRegistrationService(noopIdentityRegistrar(), noopCreatorRepo(), clippers)
	user, err := svc.RegisterClipper(context.Background(), validClipperInput())
	require.NoError(t, err)

	assert.Equal(t, models.RoleClipper, user.Role)
	require.NotNil(t, created)
	assert.Equal(t, "identity-1", created.ID)
	assert.Equal(t, int64(150000), created.FollowerCount)
}

func TestRegistrationService_RegisterCreator_PassesPasswordToIdentity(t *testing.T) {
	t.Parallel()

	identities := noopIdentityRegistrar()
	var gotPassword string
	identities.registerFn = func(_ context.Context, _, password string) (*models.Session, error) {
		gotPassword = password
		return &models.Session{ID: "identity-1", Token: "tok", RefreshToken: "ref"}, nil
	}

	svc := NewRegistrationService(identities, noopCreatorRepo(), noopClipperRepo())
	_, err := svc.RegisterCreator(context.Background(), validCreatorInput())

	require.NoError(t, err)
	assert.Equal(t, "password1", gotPassword, "the caller's password is the one the identity stores")
}

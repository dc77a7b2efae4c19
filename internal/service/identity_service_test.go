package service

import (
	"context"
	"testing"

	"clipmark/internal/models"
	"clipmark/internal/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memIdentityRepo keeps identities in a map, enough for credential tests.
type memIdentityRepo struct {
	byEmail   map[string]*models.Identity
	createErr error
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{byEmail: make(map[string]*models.Identity)}
}

func (r *memIdentityRepo) Create(_ context.Context, identity *models.Identity) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[identity.Email]; ok {
		return errDuplicate
	}
	copied := *identity
	r.byEmail[identity.Email] = &copied
	return nil
}

func (r *memIdentityRepo) GetByID(_ context.Context, id string) (*models.Identity, error) {
	for _, identity := range r.byEmail {
		if identity.ID == id {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, models.NewNotFoundError("Identity", id)
}

func (r *memIdentityRepo) GetByEmail(_ context.Context, email string) (*models.Identity, error) {
	identity, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *identity
	return &copied, nil
}

func (r *memIdentityRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for _, identity := range r.byEmail {
		if identity.ID == id {
			identity.PasswordHash = passwordHash
			return nil
		}
	}
	return models.NewNotFoundError("Identity", id)
}

func (r *memIdentityRepo) Delete(_ context.Context, id string) error {
	for email, identity := range r.byEmail {
		if identity.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return models.NewNotFoundError("Identity", id)
}

func newTestIdentityService(repo *memIdentityRepo) *IdentityService {
	return NewIdentityService(repo, tokens.NewIssuer("test-secret-at-least-32-characters!!"))
}

func TestIdentityService_RegisterAndSignIn(t *testing.T) {
	t.Parallel()

	repo := newMemIdentityRepo()
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	session, err := svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.RefreshToken)

	stored := repo.byEmail["jamie@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.PasswordHash, "passwords are never stored in clear")

	signedIn, err := svc.SignIn(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, signedIn.ID)
}

func TestIdentityService_Register_DuplicateErrorIsUnclassified(t *testing.T) {
	t.Parallel()

	repo := newMemIdentityRepo()
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jamie@example.com", "password1")
	require.Error(t, err)
	var appErr *models.AppError
	assert.NotErrorAs(t, err, &appErr, "storage errors pass through raw for the caller to classify")
	assert.True(t, models.IsDuplicateKeyError(err))
}

func TestIdentityService_SignIn_BadCredentials(t *testing.T) {
	t.Parallel()

	repo := newMemIdentityRepo()
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same answer.
	_, err = svc.SignIn(ctx, "nobody@example.com", "password1")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid login credentials")

	_, err = svc.SignIn(ctx, "jamie@example.com", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid login credentials")
}

func TestIdentityService_ChangePassword(t *testing.T) {
	t.Parallel()

	repo := newMemIdentityRepo()
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	session, err := svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, session.ID, "wrong", "newpassword2")
	require.Error(t, err)
	assert.EqualError(t, err, "Current password is incorrect")

	require.NoError(t, svc.ChangePassword(ctx, session.ID, "password1", "newpassword2"))

	stored := repo.byEmail["jamie@example.com"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword2")))
}

func TestIdentityService_Delete_FreesEmail(t *testing.T) {
	t.Parallel()

	repo := newMemIdentityRepo()
	svc := newTestIdentityService(repo)
	ctx := context.Background()

	session, err := svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))

	_, err = svc.Register(ctx, "jamie@example.com", "password1")
	require.NoError(t, err, "a deleted identity's email is reusable")
}

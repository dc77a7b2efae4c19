package service

import (
	"context"
	"errors"
	"testing"

	"clipmark/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation), "expected validation error, got %v", err)
}

// errDuplicate mimics the postgres driver's unique violation text.
var errDuplicate = errors.New(`ERROR: duplicate key value violates unique constraint "idx_identities_email" (SQLSTATE 23505)`)

type identityRegistrarStub struct {
	registerFn func(ctx context.Context, email, password string) (*models.Session, error)
	deleteFn   func(ctx context.Context, identityID string) error
}

func (s *identityRegistrarStub) Register(ctx context.Context, email, password string) (*models.Session, error) {
	return s.registerFn(ctx, email, password)
}

func (s *identityRegistrarStub) Delete(ctx context.Context, identityID string) error {
	return s.deleteFn(ctx, identityID)
}

func noopIdentityRegistrar() *identityRegistrarStub {
	return &identityRegistrarStub{
		registerFn: func(_ context.Context, _, _ string) (*models.Session, error) {
			return &models.Session{ID: "identity-1", Token: "tok", RefreshToken: "ref"}, nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

type identitySessionsStub struct {
	signInFn         func(ctx context.Context, email, password string) (*models.Session, error)
	changePasswordFn func(ctx context.Context, identityID, currentPassword, newPassword string) error
	deleteFn         func(ctx context.Context, identityID string) error
}

func (s *identitySessionsStub) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *identitySessionsStub) ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, identityID, currentPassword, newPassword)
}

func (s *identitySessionsStub) Delete(ctx context.Context, identityID string) error {
	return s.deleteFn(ctx, identityID)
}

func noopIdentitySessions() *identitySessionsStub {
	return &identitySessionsStub{
		signInFn: func(_ context.Context, _, _ string) (*models.Session, error) {
			return &models.Session{ID: "identity-1", Token: "tok", RefreshToken: "ref"}, nil
		},
		changePasswordFn: func(_ context.Context, _, _, _ string) error { return nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
	}
}

type sessionIssuerStub struct {
	sessionForFn  func(ctx context.Context, identityID string) (*models.Session, error)
	findByEmailFn func(ctx context.Context, email string) (*models.Identity, error)
}

func (s *sessionIssuerStub) SessionFor(ctx context.Context, identityID string) (*models.Session, error) {
	return s.sessionForFn(ctx, identityID)
}

func (s *sessionIssuerStub) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return s.findByEmailFn(ctx, email)
}

func noopSessionIssuer() *sessionIssuerStub {
	return &sessionIssuerStub{
		sessionForFn: func(_ context.Context, id string) (*models.Session, error) {
			return &models.Session{ID: id, Token: "tok", RefreshToken: "ref"}, nil
		},
		findByEmailFn: func(_ context.Context, _ string) (*models.Identity, error) { return nil, nil },
	}
}

type creatorRepoStub struct {
	createFn        func(ctx context.Context, profile *models.CreatorProfile) error
	getByIDFn       func(ctx context.Context, id string) (*models.CreatorProfile, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.CreatorProfile, error)
	updateFn        func(ctx context.Context, profile *models.CreatorProfile) error
	updatePictureFn func(ctx context.Context, id string, pictureURL *string) error
	deleteFn        func(ctx context.Context, id string) error
}

func (s *creatorRepoStub) Create(ctx context.Context, profile *models.CreatorProfile) error {
	return s.createFn(ctx, profile)
}

func (s *creatorRepoStub) GetByID(ctx context.Context, id string) (*models.CreatorProfile, error) {
	return s.getByIDFn(ctx, id)
}

func (s *creatorRepoStub) GetByEmail(ctx context.Context, email string) (*models.CreatorProfile, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *creatorRepoStub) Update(ctx context.Context, profile *models.CreatorProfile) error {
	return s.updateFn(ctx, profile)
}

func (s *creatorRepoStub) UpdatePicture(ctx context.Context, id string, pictureURL *string) error {
	return s.updatePictureFn(ctx, id, pictureURL)
}

func (s *creatorRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopCreatorRepo() *creatorRepoStub {
	return &creatorRepoStub{
		createFn:        func(_ context.Context, _ *models.CreatorProfile) error { return nil },
		getByIDFn:       func(_ context.Context, _ string) (*models.CreatorProfile, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.CreatorProfile, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.CreatorProfile) error { return nil },
		updatePictureFn: func(_ context.Context, _ string, _ *string) error { return nil },
		deleteFn:        func(_ context.Context, _ string) error { return nil },
	}
}

type clipperRepoStub struct {
	createFn        func(ctx context.Context, profile *models.ClipperProfile) error
	getByIDFn       func(ctx context.Context, id string) (*models.ClipperProfile, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.ClipperProfile, error)
	updateFn        func(ctx context.Context, profile *models.ClipperProfile) error
	updatePictureFn func(ctx context.Context, id string, pictureURL *string) error
	deleteFn        func(ctx context.Context, id string) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.ClipperProfile, error)
}

func (s *clipperRepoStub) Create(ctx context.Context, profile *models.ClipperProfile) error {
	return s.createFn(ctx, profile)
}

func (s *clipperRepoStub) GetByID(ctx context.Context, id string) (*models.ClipperProfile, error) {
	return s.getByIDFn(ctx, id)
}

func (s *clipperRepoStub) GetByEmail(ctx context.Context, email string) (*models.ClipperProfile, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *clipperRepoStub) Update(ctx context.Context, profile *models.ClipperProfile) error {
	return s.updateFn(ctx, profile)
}

func (s *clipperRepoStub) UpdatePicture(ctx context.Context, id string, pictureURL *string) error {
	return s.updatePictureFn(ctx, id, pictureURL)
}

func (s *clipperRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *clipperRepoStub) List(ctx context.Context, limit, offset int) ([]models.ClipperProfile, error) {
	return s.listFn(ctx, limit, offset)
}

func noopClipperRepo() *clipperRepoStub {
	return &clipperRepoStub{
		createFn:        func(_ context.Context, _ *models.ClipperProfile) error { return nil },
		getByIDFn:       func(_ context.Context, _ string) (*models.ClipperProfile, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.ClipperProfile, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.ClipperProfile) error { return nil },
		updatePictureFn: func(_ context.Context, _ string, _ *string) error { return nil },
		deleteFn:        func(_ context.Context, _ string) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.ClipperProfile, error) { return nil, nil },
	}
}

type clipRepoStub struct {
	createFn        func(ctx context.Context, clip *models.ClipSubmission) error
	getByIDFn       func(ctx context.Context, id string) (*models.ClipSubmission, error)
	updateStatusFn  func(ctx context.Context, id string, status models.ClipStatus) (*models.ClipSubmission, error)
	listByCreatorFn func(ctx context.Context, creatorID string) ([]models.ClipSubmission, error)
	listByClipperFn func(ctx context.Context, clipperID string) ([]models.ClipSubmission, error)
}

func (s *clipRepoStub) Create(ctx context.Context, clip *models.ClipSubmission) error {
	return s.createFn(ctx, clip)
}

func (s *clipRepoStub) GetByID(ctx context.Context, id string) (*models.ClipSubmission, error) {
	return s.getByIDFn(ctx, id)
}

func (s *clipRepoStub) UpdateStatus(ctx context.Context, id string, status models.ClipStatus) (*models.ClipSubmission, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *clipRepoStub) ListByCreator(ctx context.Context, creatorID string) ([]models.ClipSubmission, error) {
	return s.listByCreatorFn(ctx, creatorID)
}

func (s *clipRepoStub) ListByClipper(ctx context.Context, clipperID string) ([]models.ClipSubmission, error) {
	return s.listByClipperFn(ctx, clipperID)
}

func noopClipRepo() *clipRepoStub {
	return &clipRepoStub{
		createFn:        func(_ context.Context, _ *models.ClipSubmission) error { return nil },
		getByIDFn:       func(_ context.Context, id string) (*models.ClipSubmission, error) { return nil, models.NewNotFoundError("Clip submission", id) },
		updateStatusFn:  func(_ context.Context, id string, status models.ClipStatus) (*models.ClipSubmission, error) { return &models.ClipSubmission{ID: id, Status: status}, nil },
		listByCreatorFn: func(_ context.Context, _ string) ([]models.ClipSubmission, error) { return nil, nil },
		listByClipperFn: func(_ context.Context, _ string) ([]models.ClipSubmission, error) { return nil, nil },
	}
}

type portfolioRepoStub struct {
	createFn         func(ctx context.Context, image *models.PortfolioImage) error
	getByIDFn        func(ctx context.Context, id string) (*models.PortfolioImage, error)
	countByClipperFn func(ctx context.Context, clipperID string) (int64, error)
	listByClipperFn  func(ctx context.Context, clipperID string) ([]models.PortfolioImage, error)
	deleteFn         func(ctx context.Context, id string) error
}

func (s *portfolioRepoStub) Create(ctx context.Context, image *models.PortfolioImage) error {
	return s.createFn(ctx, image)
}

func (s *portfolioRepoStub) GetByID(ctx context.Context, id string) (*models.PortfolioImage, error) {
	return s.getByIDFn(ctx, id)
}

func (s *portfolioRepoStub) CountByClipper(ctx context.Context, clipperID string) (int64, error) {
	return s.countByClipperFn(ctx, clipperID)
}

func (s *portfolioRepoStub) ListByClipper(ctx context.Context, clipperID string) ([]models.PortfolioImage, error) {
	return s.listByClipperFn(ctx, clipperID)
}

func (s *portfolioRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPortfolioRepo() *portfolioRepoStub {
	return &portfolioRepoStub{
		createFn:         func(_ context.Context, _ *models.PortfolioImage) error { return nil },
		getByIDFn:        func(_ context.Context, id string) (*models.PortfolioImage, error) { return nil, models.NewNotFoundError("Portfolio image", id) },
		countByClipperFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		listByClipperFn:  func(_ context.Context, _ string) ([]models.PortfolioImage, error) { return nil, nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
	}
}

type guidelineRepoStub struct {
	createFn        func(ctx context.Context, guideline *models.Guideline) error
	getByIDFn       func(ctx context.Context, id string) (*models.Guideline, error)
	listByClipperFn func(ctx context.Context, clipperID string) ([]models.Guideline, error)
	updateFn        func(ctx context.Context, guideline *models.Guideline) error
	deleteFn        func(ctx context.Context, id string) error
}

func (s *guidelineRepoStub) Create(ctx context.Context, guideline *models.Guideline) error {
	return s.createFn(ctx, guideline)
}

func (s *guidelineRepoStub) GetByID(ctx context.Context, id string) (*models.Guideline, error) {
	return s.getByIDFn(ctx, id)
}

func (s *guidelineRepoStub) ListByClipper(ctx context.Context, clipperID string) ([]models.Guideline, error) {
	return s.listByClipperFn(ctx, clipperID)
}

func (s *guidelineRepoStub) Update(ctx context.Context, guideline *models.Guideline) error {
	return s.updateFn(ctx, guideline)
}

func (s *guidelineRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopGuidelineRepo() *guidelineRepoStub {
	return &guidelineRepoStub{
		createFn:        func(_ context.Context, _ *models.Guideline) error { return nil },
		getByIDFn:       func(_ context.Context, id string) (*models.Guideline, error) { return nil, models.NewNotFoundError("Guideline", id) },
		listByClipperFn: func(_ context.Context, _ string) ([]models.Guideline, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Guideline) error { return nil },
		deleteFn:        func(_ context.Context, _ string) error { return nil },
	}
}

type storeStub struct {
	uploadFn func(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error)
	deleteFn func(ctx context.Context, bucket, path string) error

	uploads []string
	deletes []string
}

func (s *storeStub) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) (string, error) {
	s.uploads = append(s.uploads, bucket+"/"+path)
	if s.uploadFn != nil {
		return s.uploadFn(ctx, bucket, path, content, contentType)
	}
	return "http://localhost:8080/media/" + bucket + "/" + path, nil
}

func (s *storeStub) Delete(ctx context.Context, bucket, path string) error {
	s.deletes = append(s.deletes, bucket+"/"+path)
	if s.deleteFn != nil {
		return s.deleteFn(ctx, bucket, path)
	}
	return nil
}

type verifierStub struct {
	verifyFn   func(ctx context.Context, idToken string) (*GoogleClaims, error)
	exchangeFn func(ctx context.Context, code string) (string, error)
	authURLFn  func(state string) string
}

func (s *verifierStub) VerifyIDToken(ctx context.Context, idToken string) (*GoogleClaims, error) {
	return s.verifyFn(ctx, idToken)
}

func (s *verifierStub) ExchangeCode(ctx context.Context, code string) (string, error) {
	return s.exchangeFn(ctx, code)
}

func (s *verifierStub) AuthURL(state string) string {
	if s.authURLFn != nil {
		return s.authURLFn(state)
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

// memOnboardingStore is an in-memory OnboardingStore for tests.
type memOnboardingStore struct {
	sessions map[string]*models.OnboardingSession
	putErr   error
}

func newMemOnboardingStore() *memOnboardingStore {
	return &memOnboardingStore{sessions: make(map[string]*models.OnboardingSession)}
}

func (s *memOnboardingStore) Put(_ context.Context, token string, session *models.OnboardingSession) error {
	if s.putErr != nil {
		return s.putErr
	}
	copied := *session
	s.sessions[token] = &copied
	return nil
}

func (s *memOnboardingStore) Get(_ context.Context, token string) (*models.OnboardingSession, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memOnboardingStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

package service

import (
	"context"
	"log/slog"

	"clipmark/internal/middleware"
	"clipmark/internal/models"
	"clipmark/internal/observability"
	"clipmark/internal/repository"

	"github.com/google/uuid"
)

// Total step counts shown to the frontend stepper. Clippers fill one extra
// screen (rates and audience size).
const (
	creatorOnboardingSteps = 4
	clipperOnboardingSteps = 5
)

// OnboardingStore persists pending onboarding sessions between requests.
type OnboardingStore interface {
	Put(ctx context.Context, token string, session *models.OnboardingSession) error
	Get(ctx context.Context, token string) (*models.OnboardingSession, error)
	Delete(ctx context.Context, token string) error
}

// SessionIssuer mints a token pair for an already-verified identity.
type SessionIssuer interface {
	SessionFor(ctx context.Context, identityID string) (*models.Session, error)
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
}

// OnboardingService bridges Google sign-in into local accounts: it either
// authenticates an existing user or stages a short-lived onboarding session
// for a new one.
type OnboardingService struct {
	verifier     GoogleVerifier
	identities   SessionIssuer
	creators     repository.CreatorRepository
	clippers     repository.ClipperRepository
	registration *RegistrationService
	store        OnboardingStore
}

// NewOnboardingService returns a new OnboardingService.
func NewOnboardingService(
	verifier GoogleVerifier,
	identities SessionIssuer,
	creators repository.CreatorRepository,
	clippers repository.ClipperRepository,
	registration *RegistrationService,
	store OnboardingStore,
) *OnboardingService {
	return &OnboardingService{
		verifier:     verifier,
		identities:   identities,
		creators:     creators,
		clippers:     clippers,
		registration: registration,
		store:        store,
	}
}

// AuthURL returns the Google consent screen URL.
func (s *OnboardingService) AuthURL(state string) string {
	return s.verifier.AuthURL(state)
}

// GoogleLogin verifies a Google ID token and either signs the user in or
// starts onboarding.
func (s *OnboardingService) GoogleLogin(ctx context.Context, idToken string) (*models.GoogleAuthResult, error) {
	if idToken == "" {
		return nil, models.NewValidationError("Google ID token is required")
	}

	claims, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid Google credential")
	}
	if !claims.EmailVerified {
		return nil, models.NewValidationError("Google account email is not verified")
	}

	return s.resolveGoogleUser(ctx, claims)
}

// GoogleCallback handles the OAuth redirect: it exchanges the authorization
// code and then behaves exactly like GoogleLogin.
func (s *OnboardingService) GoogleCallback(ctx context.Context, code string) (*models.GoogleAuthResult, error) {
	if code == "" {
		return nil, models.NewValidationError("Authorization code is required")
	}
	idToken, err := s.verifier.ExchangeCode(ctx, code)
	if err != nil {
		return nil, models.NewUnauthorizedError("Google authorization failed")
	}
	return s.GoogleLogin(ctx, idToken)
}

func (s *OnboardingService) resolveGoogleUser(ctx context.Context, claims *GoogleClaims) (*models.GoogleAuthResult, error) {
	identity, err := s.identities.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}

	if identity != nil {
		// Existing account: probe profiles creator-first, same order as the
		// account facade.
		creator, err := s.creators.GetByID(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		if creator != nil {
			return s.authenticated(ctx, identity.ID, creator, models.RoleCreator)
		}

		clipper, err := s.clippers.GetByID(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		if clipper != nil {
			return s.authenticated(ctx, identity.ID, clipper, models.RoleClipper)
		}
		// Identity without a profile falls through to onboarding so the
		// account can be completed rather than bricked.
	}

	token := uuid.New().String()
	session := &models.OnboardingSession{
		Email:          claims.Email,
		Name:           claims.Name,
		Picture:        claims.Picture,
		Role:           models.RoleCreator,
		CompletedSteps: 1,
	}
	if err := s.store.Put(ctx, token, session); err != nil {
		return nil, models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "Google onboarding started", slog.String("email", claims.Email))
	return &models.GoogleAuthResult{
		RequiresOnboarding: true,
		OnboardingToken:    token,
	}, nil
}

func (s *OnboardingService) authenticated(ctx context.Context, identityID string, profile interface{}, role models.Role) (*models.GoogleAuthResult, error) {
	session, err := s.identities.SessionFor(ctx, identityID)
	if err != nil {
		return nil, err
	}
	observability.OnboardingSessionsTotal.WithLabelValues(string(role), "login").Inc()
	return &models.GoogleAuthResult{
		User: &models.AuthUser{
			User:         profile,
			Role:         role,
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		},
	}, nil
}

// SelectRole records the chosen role on a pending onboarding session.
func (s *OnboardingService) SelectRole(ctx context.Context, token, role string) (*models.OnboardingStatus, error) {
	session, err := s.pendingSession(ctx, token)
	if err != nil {
		return nil, err
	}
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	session.Role = parsed
	if session.CompletedSteps < 2 {
		session.CompletedSteps = 2
	}
	if err := s.store.Put(ctx, token, session); err != nil {
		return nil, models.NewInternalError(err)
	}
	return statusFor(session), nil
}

// CompleteOnboardingInput carries the profile fields captured during the
// onboarding screens, plus the password the new account signs in with.
type CompleteOnboardingInput struct {
	Token             string
	Role              string
	Password          string
	FullName          string
	BrandName         string
	SocialMediaHandle string
	Platform          string
	Niche             string
	Country           string
	FollowerCount     int64
	PricePerPost      int64
}

// CompleteOnboarding turns a pending session into a real account through the
// same registration saga as direct signup. The cached Google email and name
// win over the submitted fields; the role in the payload wins over the one on
// the session. The token is single use: it is consumed on success.
func (s *OnboardingService) CompleteOnboarding(ctx context.Context, in CompleteOnboardingInput) (*models.AuthUser, error) {
	session, err := s.pendingSession(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	role := session.Role
	if in.Role != "" {
		parsed, err := models.ParseRole(in.Role)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		role = parsed
	}
	if role == "" {
		return nil, models.NewValidationError("Select a role before completing onboarding")
	}

	fullName := session.Name
	if fullName == "" {
		fullName = in.FullName
	}

	var user *models.AuthUser
	switch role {
	case models.RoleCreator:
		user, err = s.registration.RegisterCreator(ctx, RegisterCreatorInput{
			Email:             session.Email,
			Password:          in.Password,
			FullName:          fullName,
			BrandName:         in.BrandName,
			SocialMediaHandle: in.SocialMediaHandle,
			Platform:          in.Platform,
			Niche:             in.Niche,
			Country:           in.Country,
		})
	default:
		user, err = s.registration.RegisterClipper(ctx, RegisterClipperInput{
			Email:             session.Email,
			Password:          in.Password,
			FullName:          fullName,
			BrandName:         in.BrandName,
			SocialMediaHandle: in.SocialMediaHandle,
			Platform:          in.Platform,
			Niche:             in.Niche,
			Country:           in.Country,
			FollowerCount:     in.FollowerCount,
			PricePerPost:      in.PricePerPost,
		})
	}
	if err != nil {
		observability.OnboardingSessionsTotal.WithLabelValues(string(role), "failure").Inc()
		return nil, err
	}

	if delErr := s.store.Delete(ctx, in.Token); delErr != nil {
		// The account exists; an undeleted token only shortens to its TTL.
		middleware.Logger.WarnContext(ctx, "Failed to consume onboarding token",
			slog.String("error", delErr.Error()))
	}

	observability.OnboardingSessionsTotal.WithLabelValues(string(role), "success").Inc()
	return user, nil
}

// Status reports onboarding progress for a pending token.
func (s *OnboardingService) Status(ctx context.Context, token string) (*models.OnboardingStatus, error) {
	session, err := s.pendingSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return statusFor(session), nil
}

func (s *OnboardingService) pendingSession(ctx context.Context, token string) (*models.OnboardingSession, error) {
	if token == "" {
		return nil, models.NewUnauthorizedError("Invalid or expired onboarding token")
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if session == nil {
		return nil, models.NewUnauthorizedError("Invalid or expired onboarding token")
	}
	return session, nil
}

func statusFor(session *models.OnboardingSession) *models.OnboardingStatus {
	total := creatorOnboardingSteps
	if session.Role == models.RoleClipper {
		total = clipperOnboardingSteps
	}
	return &models.OnboardingStatus{
		CurrentStep: session.CompletedSteps,
		TotalSteps:  total,
		Role:        session.Role,
	}
}

package models

// OnboardingSession is the staged registration for a Google-authenticated
// user who has no local profile yet. It lives in the onboarding store under
// an opaque token with a short TTL; it is never persisted to the database.
type OnboardingSession struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Picture        string `json:"picture"`
	Role           Role   `json:"role"`
	CompletedSteps int    `json:"completedSteps"`
}

// GoogleAuthResult is the outcome of a Google sign-in attempt: either a
// completed authentication or a handoff into onboarding.
type GoogleAuthResult struct {
	RequiresOnboarding bool      `json:"requiresOnboarding"`
	OnboardingToken    string    `json:"onboardingToken,omitempty"`
	User               *AuthUser `json:"user,omitempty"`
}

// OnboardingStatus reports progress through the multi-step onboarding flow.
type OnboardingStatus struct {
	CurrentStep int    `json:"currentStep"`
	TotalSteps  int    `json:"totalSteps"`
	Role        Role   `json:"role"`
}

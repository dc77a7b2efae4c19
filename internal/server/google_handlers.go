package server

import (
	"clipmark/internal/models"
	"clipmark/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GoogleAuthURL handles GET /api/auth/google/url
func (s *Server) GoogleAuthURL(c *fiber.Ctx) error {
	state := c.Query("state")
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"url": s.onboarding.AuthURL(state),
	}, "")
}

// GoogleLogin handles POST /api/auth/google
func (s *Server) GoogleLogin(c *fiber.Ctx) error {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.onboarding.GoogleLogin(c.UserContext(), req.IDToken)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "")
}

// GoogleCallback handles POST /api/auth/google/callback
func (s *Server) GoogleCallback(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.onboarding.GoogleCallback(c.UserContext(), req.Code)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "")
}

// SelectOnboardingRole handles POST /api/auth/google/onboarding/role
func (s *Server) SelectOnboardingRole(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	status, err := s.onboarding.SelectRole(c.UserContext(), req.Token, req.Role)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, status, "Role selected")
}

type completeOnboardingRequest struct {
	Token             string `json:"token"`
	Role              string `json:"role"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	BrandName         string `json:"brandName"`
	SocialMediaHandle string `json:"socialMediaHandle"`
	Platform          string `json:"platform"`
	Niche             string `json:"niche"`
	Country           string `json:"country"`
	FollowerCount     int64  `json:"followerCount"`
	PricePerPost      int64  `json:"pricePerPost"`
}

// CompleteOnboarding handles POST /api/auth/google/onboarding/complete
func (s *Server) CompleteOnboarding(c *fiber.Ctx) error {
	var req completeOnboardingRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.onboarding.CompleteOnboarding(c.UserContext(), service.CompleteOnboardingInput{
		Token:             req.Token,
		Role:              req.Role,
		Password:          req.Password,
		FullName:          req.FullName,
		BrandName:         req.BrandName,
		SocialMediaHandle: req.SocialMediaHandle,
		Platform:          req.Platform,
		Niche:             req.Niche,
		Country:           req.Country,
		FollowerCount:     req.FollowerCount,
		PricePerPost:      req.PricePerPost,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, user, "Onboarding complete")
}

// OnboardingStatus handles GET /api/auth/google/onboarding/status?token=
func (s *Server) OnboardingStatus(c *fiber.Ctx) error {
	status, err := s.onboarding.Status(c.UserContext(), c.Query("token"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, status, "")
}

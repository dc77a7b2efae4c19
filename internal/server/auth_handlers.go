package server

import (
	"clipmark/internal/models"
	"clipmark/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerCreatorRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	BrandName         string `json:"brandName"`
	SocialMediaHandle string `json:"socialMediaHandle"`
	Platform          string `json:"platform"`
	Niche             string `json:"niche"`
	Country           string `json:"country"`
}

type registerClipperRequest struct {
	registerCreatorRequest
	FollowerCount int64 `json:"followerCount"`
	PricePerPost  int64 `json:"pricePerPost"`
}

// RegisterCreator handles POST /api/auth/register/creator
func (s *Server) RegisterCreator(c *fiber.Ctx) error {
	var req registerCreatorRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.registration.RegisterCreator(c.UserContext(), service.RegisterCreatorInput{
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		BrandName:         req.BrandName,
		SocialMediaHandle: req.SocialMediaHandle,
		Platform:          req.Platform,
		Niche:             req.Niche,
		Country:           req.Country,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, user, "Creator registered successfully")
}

// RegisterClipper handles POST /api/auth/register/clipper
func (s *Server) RegisterClipper(c *fiber.Ctx) error {
	var req registerClipperRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.registration.RegisterClipper(c.UserContext(), service.RegisterClipperInput{
		Email:             req.Email,
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
	return models.Respond(c, fiber.StatusCreated, user, "Clipper registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCreator handles POST /api/auth/login/creator
func (s *Server) LoginCreator(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.accounts.AuthenticateCreator(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Login successful")
}

// LoginClipper handles POST /api/auth/login/clipper
func (s *Server) LoginClipper(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.accounts.AuthenticateClipper(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Login successful")
}

// GetMyAccount handles GET /api/auth/me
func (s *Server) GetMyAccount(c *fiber.Ctx) error {
	profile, role, err := s.accounts.GetAccount(c.UserContext(), userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"profile": profile,
		"role":    role,
	}, "")
}

type updateAccountRequest struct {
	FullName          string `json:"fullName"`
	BrandName         string `json:"brandName"`
	SocialMediaHandle string `json:"socialMediaHandle"`
	Platform          string `json:"platform"`
	Niche             string `json:"niche"`
	Country           string `json:"country"`
	FollowerCount     *int64 `json:"followerCount"`
	PricePerPost      *int64 `json:"pricePerPost"`
}

// UpdateMyAccount handles PATCH /api/auth/me
func (s *Server) UpdateMyAccount(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	profile, role, err := s.accounts.UpdateAccount(c.UserContext(), userID(c), service.UpdateProfileInput{
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
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"profile": profile,
		"role":    role,
	}, "Profile updated")
}

// DeleteMyAccount handles DELETE /api/auth/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.accounts.DeleteAccount(c.UserContext(), userID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Account deleted")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword handles PATCH /api/auth/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.accounts.ChangePassword(c.UserContext(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Password changed")
}

// UploadProfileImage handles POST /api/auth/me/image
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("An image file is required"))
	}
	content, contentType, err := readFormFile(fh)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	url, err := s.accounts.UploadProfileImage(c.UserContext(), userID(c), fh.Filename, contentType, content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"url": url}, "Profile image updated")
}

// DeleteProfileImage handles DELETE /api/auth/me/image
func (s *Server) DeleteProfileImage(c *fiber.Ctx) error {
	if err := s.accounts.DeleteProfileImage(c.UserContext(), userID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Profile image deleted")
}

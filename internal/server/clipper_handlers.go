package server

import (
	"clipmark/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListClippers handles GET /api/clippers
func (s *Server) ListClippers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	clippers, err := s.clippers.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, clippers, "")
}

// GetClipper handles GET /api/clippers/:id
func (s *Server) GetClipper(c *fiber.Ctx) error {
	detail, err := s.clippers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, detail, "")
}

// GetClipperGuidelines handles GET /api/clippers/:id/guidelines
func (s *Server) GetClipperGuidelines(c *fiber.Ctx) error {
	guidelines, err := s.clippers.ListGuidelines(c.UserContext(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, guidelines, "")
}

// ListMyPortfolio handles GET /api/clippers/me/portfolio
func (s *Server) ListMyPortfolio(c *fiber.Ctx) error {
	images, err := s.clippers.ListPortfolio(c.UserContext(), userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, images, "")
}

// AddPortfolioImage handles POST /api/clippers/me/portfolio
func (s *Server) AddPortfolioImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("An image file is required"))
	}
	content, contentType, err := readFormFile(fh)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	image, err := s.clippers.AddPortfolioImage(c.UserContext(), userID(c), fh.Filename, contentType, content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, image, "Portfolio image added")
}

// DeletePortfolioImage handles DELETE /api/clippers/me/portfolio/:imageId
func (s *Server) DeletePortfolioImage(c *fiber.Ctx) error {
	if err := s.clippers.DeletePortfolioImage(c.UserContext(), userID(c), c.Params("imageId")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Portfolio image deleted")
}

// ListMyGuidelines handles GET /api/clippers/me/guidelines
func (s *Server) ListMyGuidelines(c *fiber.Ctx) error {
	guidelines, err := s.clippers.ListGuidelines(c.UserContext(), userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, guidelines, "")
}

type guidelineRequest struct {
	Guideline string `json:"guideline"`
}

// AddGuideline handles POST /api/clippers/me/guidelines
func (s *Server) AddGuideline(c *fiber.Ctx) error {
	var req guidelineRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	guideline, err := s.clippers.AddGuideline(c.UserContext(), userID(c), req.Guideline)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, guideline, "Guideline added")
}

// UpdateGuideline handles PATCH /api/clippers/me/guidelines/:id
func (s *Server) UpdateGuideline(c *fiber.Ctx) error {
	var req guidelineRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	guideline, err := s.clippers.UpdateGuideline(c.UserContext(), userID(c), c.Params("id"), req.Guideline)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, guideline, "Guideline updated")
}

// DeleteGuideline handles DELETE /api/clippers/me/guidelines/:id
func (s *Server) DeleteGuideline(c *fiber.Ctx) error {
	if err := s.clippers.DeleteGuideline(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Guideline deleted")
}

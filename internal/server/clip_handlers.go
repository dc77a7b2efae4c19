package server

import (
	"clipmark/internal/models"
	"clipmark/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitClip handles POST /api/clips/submit (multipart form).
func (s *Server) SubmitClip(c *fiber.Ctx) error {
	videoFH, err := c.FormFile("videoFile")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("A video file is required"))
	}
	video, videoType, err := readFormFile(videoFH)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	in := service.SubmitClipInput{
		CreatorID:   userID(c),
		ClipperID:   c.FormValue("clipperId"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoName:   videoFH.Filename,
		VideoType:   videoType,
		Video:       video,
	}

	if thumbFH, err := c.FormFile("thumbnailFile"); err == nil {
		thumb, thumbType, err := readFormFile(thumbFH)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		in.ThumbnailName = thumbFH.Filename
		in.ThumbnailType = thumbType
		in.Thumbnail = thumb
	}

	clip, err := s.clips.SubmitClip(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, clip, "Clip submitted")
}

// UpdateClipStatus handles PATCH /api/clips/status
func (s *Server) UpdateClipStatus(c *fiber.Ctx) error {
	var req struct {
		ClipID string `json:"clipId"`
		Status string `json:"status"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	clip, err := s.clips.UpdateStatus(c.UserContext(), userID(c), req.ClipID, req.Status)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, clip, "Clip status updated")
}

// ListCreatorClips handles GET /api/clips/creator
func (s *Server) ListCreatorClips(c *fiber.Ctx) error {
	clips, err := s.clips.ListForCreator(c.UserContext(), userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, clips, "")
}

// ListClipperClips handles GET /api/clips/clipper
func (s *Server) ListClipperClips(c *fiber.Ctx) error {
	clips, err := s.clips.ListForClipper(c.UserContext(), userID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, clips, "")
}

// GetClip handles GET /api/clips/:id
func (s *Server) GetClip(c *fiber.Ctx) error {
	clip, err := s.clips.GetSubmission(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, clip, "")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clipmark/internal/middleware"
	"clipmark/internal/models"
	"clipmark/internal/observability"
	"clipmark/internal/repository"
	"clipmark/internal/storage"

	"github.com/google/uuid"
)

// ClipService handles clip submission, review, and retrieval.
type ClipService struct {
	clips    repository.ClipRepository
	creators repository.CreatorRepository
	clippers repository.ClipperRepository
	store    storage.Store
}

// NewClipService returns a new ClipService.
func NewClipService(
	clips repository.ClipRepository,
	creators repository.CreatorRepository,
	clippers repository.ClipperRepository,
	store storage.Store,
) *ClipService {
	return &ClipService{
		clips:    clips,
		creators: creators,
		clippers: clippers,
		store:    store,
	}
}

// SubmitClipInput carries the multipart fields of a clip submission.
type SubmitClipInput struct {
	CreatorID     string
	ClipperID     string
	Title         string
	Description   string
	VideoName     string
	VideoType     string
	Video         []byte
	ThumbnailName string
	ThumbnailType string
	Thumbnail     []byte
}

// SubmitClip uploads the video and thumbnail and records the submission as
// pending. Both files are required. If any step after the video upload fails,
// the video blob is removed on a best-effort basis; the thumbnail blob is not
// tracked for rollback.
func (s *ClipService) SubmitClip(ctx context.Context, in SubmitClipInput) (*models.ClipSubmission, error) {
	if in.ClipperID == "" {
		return nil, models.NewValidationError("Clipper is required")
	}
	if err := validateVideoUpload(in.Video, in.VideoType); err != nil {
		return nil, err
	}
	if err := validateThumbnailUpload(in.Thumbnail, in.ThumbnailType); err != nil {
		return nil, err
	}

	clipper, err := s.clippers.GetByID(ctx, in.ClipperID)
	if err != nil {
		return nil, err
	}
	if clipper == nil {
		return nil, models.NewNotFoundError("Clipper", in.ClipperID)
	}

	id := uuid.New().String()

	videoPath := fmt.Sprintf("%s/%s-clip-%s", in.ClipperID, id, in.VideoName)
	videoURL, err := s.store.Upload(ctx, storage.BucketClipSubmissions, videoPath, in.Video, in.VideoType)
	if err != nil {
		observability.StorageOperationsTotal.WithLabelValues(storage.BucketClipSubmissions, "upload", "failure").Inc()
		observability.ClipSubmissionsTotal.WithLabelValues("failure").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.StorageOperationsTotal.WithLabelValues(storage.BucketClipSubmissions, "upload", "success").Inc()

	thumbPath := fmt.Sprintf("%s/%s-thumbnail-%s", in.ClipperID, id, in.ThumbnailName)
	thumbnailURL, err := s.store.Upload(ctx, storage.BucketClipThumbnails, thumbPath, in.Thumbnail, in.ThumbnailType)
	if err != nil {
		observability.StorageOperationsTotal.WithLabelValues(storage.BucketClipThumbnails, "upload", "failure").Inc()
		s.cleanupVideo(ctx, storage.BucketClipSubmissions, videoPath)
		observability.ClipSubmissionsTotal.WithLabelValues("failure").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.StorageOperationsTotal.WithLabelValues(storage.BucketClipThumbnails, "upload", "success").Inc()

	clip := &models.ClipSubmission{
		ID:           id,
		CreatorID:    in.CreatorID,
		ClipperID:    in.ClipperID,
		Title:        in.Title,
		Description:  in.Description,
		ClipURL:      videoURL,
		ThumbnailURL: thumbnailURL,
		Status:       models.ClipStatusPending,
	}
	if err := s.clips.Create(ctx, clip); err != nil {
		s.cleanupVideo(ctx, storage.BucketClipSubmissions, videoPath)
		observability.ClipSubmissionsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	observability.ClipSubmissionsTotal.WithLabelValues("success").Inc()
	return clip, nil
}

// cleanupVideo best-effort removes an uploaded clip after a later step
// failed. Errors are logged and swallowed so the original failure is what
// the caller sees.
func (s *ClipService) cleanupVideo(ctx context.Context, bucket, path string) {
	if err := s.store.Delete(ctx, bucket, path); err != nil && !errors.Is(err, storage.ErrNotFound) {
		middleware.Logger.WarnContext(ctx, "Failed to clean up clip video after submission failure",
			slog.String("bucket", bucket),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}

// UpdateStatus sets the review status of a submission. Only the receiving
// clipper may review; any transition between the known statuses is allowed,
// including moving out of a terminal state.
func (s *ClipService) UpdateStatus(ctx context.Context, clipperID, clipID, status string) (*models.ClipSubmission, error) {
	parsed, err := models.ParseClipStatus(status)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	clip, err := s.clips.GetByID(ctx, clipID)
	if err != nil {
		return nil, err
	}
	if clip.ClipperID != clipperID {
		return nil, models.NewForbiddenError("You are not allowed to review this submission")
	}

	return s.clips.UpdateStatus(ctx, clipID, parsed)
}

// GetSubmission fetches a submission, then authorizes: only the submitting
// creator or the receiving clipper may read it. Fetch-then-authorize keeps
// "does not exist" and "not yours" as distinct responses.
func (s *ClipService) GetSubmission(ctx context.Context, callerID, clipID string) (*models.ClipSubmission, error) {
	clip, err := s.clips.GetByID(ctx, clipID)
	if err != nil {
		return nil, err
	}
	if clip.CreatorID != callerID && clip.ClipperID != callerID {
		return nil, models.NewForbiddenError("You are not allowed to view this submission")
	}
	return clip, nil
}

// ListForCreator returns the caller's submissions, newest first.
func (s *ClipService) ListForCreator(ctx context.Context, creatorID string) ([]models.ClipSubmission, error) {
	return s.clips.ListByCreator(ctx, creatorID)
}

// ListForClipper returns submissions addressed to the caller, newest first.
func (s *ClipService) ListForClipper(ctx context.Context, clipperID string) ([]models.ClipSubmission, error) {
	return s.clips.ListByClipper(ctx, clipperID)
}

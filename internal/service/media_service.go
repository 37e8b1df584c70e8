package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/storage"
)

var (
	ErrStorageUnavailable = errors.New("media storage is not configured")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
)

// MediaKind selects which list of a plan's media an object belongs to.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // reported back on confirm
}

// MediaService stores plan media in object storage. Plans keep object keys;
// URLs are presigned on demand.
type MediaService interface {
	RequestUploadURL(ctx context.Context, planID string, kind MediaKind, contentType string) (*UploadURLResponse, error)
	// ConfirmUpload attaches an uploaded object to the plan.
	ConfirmUpload(ctx context.Context, planID string, kind MediaKind, objectKey string) (*domain.WorkoutPlan, error)
	DownloadURL(ctx context.Context, objectKey string) (string, error)
	// Delete removes the object and detaches it from the plan.
	Delete(ctx context.Context, planID, objectKey string) (*domain.WorkoutPlan, error)
}

type mediaService struct {
	workouts    WorkoutService
	fileStorage storage.FileStorage
}

// NewMediaService returns a MediaService; a nil fileStorage makes every call
// fail with ErrStorageUnavailable.
func NewMediaService(workouts WorkoutService, fileStorage storage.FileStorage) MediaService {
	return &mediaService{workouts: workouts, fileStorage: fileStorage}
}

func (k MediaKind) valid() bool {
	return k == MediaImage || k == MediaVideo || k == MediaAudio
}

func planMediaPrefix(planID string) string {
	return path.Join("plans", planID) + "/"
}

func (s *mediaService) RequestUploadURL(ctx context.Context, planID string, kind MediaKind, contentType string) (*UploadURLResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	if !kind.valid() {
		return nil, validationError("unknown media kind %q", kind)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, string(kind)+"/") {
		return nil, validationError("content type %q does not match media kind %s", contentType, kind)
	}
	if _, err := s.workouts.GetPlan(ctx, planID); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(mediaType, string(kind)+"/")
	objectKey := path.Join("plans", planID, string(kind), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

func (s *mediaService) ConfirmUpload(ctx context.Context, planID string, kind MediaKind, objectKey string) (*domain.WorkoutPlan, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	if !kind.valid() {
		return nil, validationError("unknown media kind %q", kind)
	}
	if !strings.HasPrefix(objectKey, planMediaPrefix(planID)) {
		return nil, validationError("object %s does not belong to plan %s", objectKey, planID)
	}
	plan, err := s.workouts.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	list := mediaList(&plan.MediaFiles, kind)
	for _, k := range *list {
		if k == objectKey {
			return plan, nil
		}
	}
	*list = append(*list, objectKey)
	return s.workouts.SavePlan(ctx, plan)
}

func (s *mediaService) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	if s.fileStorage == nil {
		return "", ErrStorageUnavailable
	}
	if objectKey == "" {
		return "", validationError("object key is required")
	}
	u, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, 0)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return u, nil
}

func (s *mediaService) Delete(ctx context.Context, planID, objectKey string) (*domain.WorkoutPlan, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	if !strings.HasPrefix(objectKey, planMediaPrefix(planID)) {
		return nil, validationError("object %s does not belong to plan %s", objectKey, planID)
	}
	plan, err := s.workouts.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := s.fileStorage.DeleteObject(ctx, objectKey); err != nil {
		return nil, err
	}
	for _, kind := range []MediaKind{MediaImage, MediaVideo, MediaAudio} {
		list := mediaList(&plan.MediaFiles, kind)
		kept := (*list)[:0]
		for _, k := range *list {
			if k != objectKey {
				kept = append(kept, k)
			}
		}
		*list = kept
	}
	return s.workouts.SavePlan(ctx, plan)
}

func mediaList(m *domain.MediaFiles, kind MediaKind) *[]string {
	switch kind {
	case MediaVideo:
		return &m.Videos
	case MediaAudio:
		return &m.Audio
	default:
		return &m.Images
	}
}

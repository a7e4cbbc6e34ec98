package session

import (
	"context"
	"mime/multipart"

	"github.com/heyverne/verne-backend/internal/entity"
)

type SessionUsecase interface {
	CreateSession(ctx context.Context, req *entity.CreateSessionRequest) (*entity.Session, error)
	GetSessionDetail(ctx context.Context, sessionID string) (*entity.SessionDetailResponse, error)
	UploadPhoto(ctx context.Context, sessionID string, fileHeader *multipart.FileHeader) (*entity.UploadPhotoResponse, error)
	CompleteSession(ctx context.Context, sessionID string) (*entity.Session, error)
}

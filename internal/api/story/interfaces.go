package story

import (
	"context"

	"github.com/heyverne/verne-backend/internal/entity"
)

type StoryUsecase interface {
	NextPage(ctx context.Context, req *entity.NextPageRequest) (*entity.NextPageResponse, error)
	CheckImages(ctx context.Context, sessionID string, pageNumber int, taskID1, taskID2 string) (*entity.CheckImagesResponse, error)
	PageContent(pageNumber int, chosenPlanet string) (*entity.PageContentResponse, error)
}

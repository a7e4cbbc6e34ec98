package book

import (
	"context"

	"github.com/heyverne/verne-backend/internal/entity"
	bookusecase "github.com/heyverne/verne-backend/internal/usecase/book"
)

type BookUsecase interface {
	GenerateBook(ctx context.Context, req *entity.GenerateBookRequest) (*entity.GenerateBookResponse, error)
	GetBook(ctx context.Context, sessionID string) (*entity.Book, error)
	ExportBook(ctx context.Context, sessionID string, format entity.BookFormat) (*bookusecase.ExportedBook, error)
}

package session

import "github.com/heyverne/verne-backend/internal/entity"

// toCreateSessionResponse converts a Session entity to the creation DTO
func toCreateSessionResponse(s *entity.Session) *entity.CreateSessionResponse {
	return &entity.CreateSessionResponse{
		SessionID: s.ID,
		CreatedAt: s.CreatedAt,
	}
}

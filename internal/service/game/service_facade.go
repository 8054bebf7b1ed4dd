package game

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect-n/pkg/auth"
)

// Service is the entry point for game logic (facade)
type Service struct {
	Sessions    *SessionManager
	tokenSecret string
	tokenTTL    time.Duration
}

func NewService(sessions *SessionManager, tokenSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		Sessions:    sessions,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// StartGame creates a session and the token that controls it
func (s *Service) StartGame(opts Options) (*GameSession, string, error) {
	session, err := s.Sessions.CreateSession(opts)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateGameToken(s.tokenSecret, session.GameID, s.tokenTTL)
	if err != nil {
		if rmErr := s.Sessions.RemoveSession(session.GameID); rmErr != nil {
			log.Printf("[SESSION] Error removing session %s after token failure: %v", session.GameID, rmErr)
		}
		return nil, "", err
	}
	return session, token, nil
}

// Authorize returns the game a token was issued for
func (s *Service) Authorize(ctx context.Context, token string) (*GameSession, error) {
	claims, err := auth.ValidateGameToken(s.tokenSecret, token)
	if err != nil {
		return nil, err
	}
	return s.Sessions.GetSession(ctx, claims.GameID)
}

package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/bot"
	"github.com/iamasit07/connect-n/pkg/uid"
)

const (
	finishedSessionTTL = 1 * time.Hour
	idleSessionTTL     = 24 * time.Hour
	snapshotTimeout    = 2 * time.Second
)

type ConnectionManagerInterface interface {
	SendMessage(gameID string, message domain.ServerMessage) error
	RemoveConnection(gameID string)
}

// SnapshotStore keeps in-progress games outside the process. Load returns nil, nil for unknown games.
type SnapshotStore interface {
	Save(ctx context.Context, snap domain.SessionSnapshot, ttl time.Duration) error
	Load(ctx context.Context, gameID string) (*domain.SessionSnapshot, error)
	Delete(ctx context.Context, gameID string) error
}

type noopConnections struct{}

func (noopConnections) SendMessage(string, domain.ServerMessage) error { return nil }
func (noopConnections) RemoveConnection(string)                        {}

// Options describes a new game
type Options struct {
	Columns       int
	Rows          int
	ConnectLength int
	Players       [2]domain.Player
	Depth         int
	Seed          int64
	RandomFirst   bool
}

// Limits caps the board size and search depth a new game may ask for
type Limits struct {
	MaxColumns int
	MaxRows    int
	MaxDepth   int
}

var DefaultLimits = Limits{MaxColumns: 20, MaxRows: 20, MaxDepth: 6}

func (l Limits) check(opts Options) error {
	if opts.Columns > l.MaxColumns || opts.Rows > l.MaxRows {
		return fmt.Errorf("%w: %dx%d exceeds the %dx%d maximum",
			domain.ErrInvalidBoardConfig, opts.Columns, opts.Rows, l.MaxColumns, l.MaxRows)
	}
	if opts.Depth < 0 || opts.Depth > l.MaxDepth {
		return fmt.Errorf("%w: %d is outside 0..%d", domain.ErrInvalidDepth, opts.Depth, l.MaxDepth)
	}
	return nil
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session     map[string]*GameSession // gameID → GameSession
	mu          sync.RWMutex
	conn        ConnectionManagerInterface
	store       SnapshotStore
	botDelay    time.Duration
	snapshotTTL time.Duration
	limits      Limits
}

// NewSessionManager wires the manager. conn and store may be nil.
func NewSessionManager(conn ConnectionManagerInterface, store SnapshotStore, botDelay, snapshotTTL time.Duration) *SessionManager {
	if conn == nil {
		conn = noopConnections{}
	}
	return &SessionManager{
		Session:     make(map[string]*GameSession),
		conn:        conn,
		store:       store,
		botDelay:    botDelay,
		snapshotTTL: snapshotTTL,
		limits:      DefaultLimits,
	}
}

// SetLimits replaces DefaultLimits for games created from now on
func (sm *SessionManager) SetLimits(limits Limits) {
	sm.mu.Lock()
	sm.limits = limits
	sm.mu.Unlock()
}

func (sm *SessionManager) CreateSession(opts Options) (*GameSession, error) {
	sm.mu.RLock()
	limits := sm.limits
	sm.mu.RUnlock()
	if err := limits.check(opts); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	players := opts.Players
	if opts.RandomFirst && rng.Intn(2) == 1 {
		players[0], players[1] = players[1], players[0]
	}

	g, err := domain.NewGame(opts.Columns, opts.Rows, opts.ConnectLength, players)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &GameSession{
		GameID:      uid.GenerateGameID(),
		Game:        g,
		Depth:       opts.Depth,
		CreatedAt:   now,
		UpdatedAt:   now,
		randomFirst: opts.RandomFirst,
		rng:         rng,
		engine:      bot.NewEngine(seed),
		manager:     sm,
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s (%v) vs %s (%v), %dx%d connect %d, depth %d",
		session.GameID, players[0].Name, players[0].Piece, players[1].Name, players[1].Piece,
		opts.Columns, opts.Rows, opts.ConnectLength, opts.Depth)

	session.mu.Lock()
	session.saveSnapshotLocked()
	session.mu.Unlock()

	session.scheduleComputerMove()
	return session, nil
}

// GetSession looks the game up in memory first, then in the snapshot store
func (sm *SessionManager) GetSession(ctx context.Context, gameID string) (*GameSession, error) {
	sm.mu.RLock()
	session, exists := sm.Session[gameID]
	sm.mu.RUnlock()
	if exists {
		return session, nil
	}

	if sm.store == nil {
		return nil, domain.ErrGameNotFound
	}

	snap, err := sm.store.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrGameNotFound
	}

	return sm.restore(*snap)
}

func (sm *SessionManager) restore(snap domain.SessionSnapshot) (*GameSession, error) {
	g, err := domain.GameFromSnapshot(snap.Game)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", snap.GameID, err)
	}

	seed := time.Now().UnixNano()
	session := &GameSession{
		GameID:      snap.GameID,
		Game:        g,
		Depth:       snap.Depth,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
		randomFirst: snap.RandomFirst,
		rng:         rand.New(rand.NewSource(seed)),
		engine:      bot.NewEngine(seed),
		manager:     sm,
	}

	sm.mu.Lock()
	// another request may have restored it first
	if existing, ok := sm.Session[snap.GameID]; ok {
		sm.mu.Unlock()
		return existing, nil
	}
	sm.Session[snap.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Restored session %s at move %d", session.GameID, g.MoveCount)
	session.scheduleComputerMove()
	return session, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	_, exists := sm.Session[gameID]
	if !exists {
		sm.mu.Unlock()
		return domain.ErrGameNotFound
	}
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	log.Printf("[SESSION] Removing session %s", gameID)
	sm.conn.RemoveConnection(gameID)
	sm.deleteSnapshot(gameID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops finished games after an hour and idle ones after a day
func (sm *SessionManager) CleanupOldSessions() int {
	return sm.cleanupAt(time.Now())
}

func (sm *SessionManager) cleanupAt(now time.Time) int {
	var stale []string

	sm.mu.Lock()
	for gameID, session := range sm.Session {
		session.mu.Lock()
		var expired bool
		if session.Game.IsFinished() {
			expired = now.Sub(session.FinishedAt) > finishedSessionTTL
		} else {
			expired = now.Sub(session.UpdatedAt) > idleSessionTTL
		}
		session.mu.Unlock()

		if expired {
			delete(sm.Session, gameID)
			stale = append(stale, gameID)
		}
	}
	sm.mu.Unlock()

	for _, gameID := range stale {
		sm.conn.RemoveConnection(gameID)
		sm.deleteSnapshot(gameID)
	}

	if len(stale) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", len(stale))
	}
	return len(stale)
}

func (sm *SessionManager) saveSnapshot(snap domain.SessionSnapshot) {
	if sm.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if err := sm.store.Save(ctx, snap, sm.snapshotTTL); err != nil {
		log.Printf("[SNAPSHOT] Error saving game %s: %v", snap.GameID, err)
	}
}

func (sm *SessionManager) deleteSnapshot(gameID string) {
	if sm.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if err := sm.store.Delete(ctx, gameID); err != nil {
		log.Printf("[SNAPSHOT] Error deleting game %s: %v", gameID, err)
	}
}

package usecase

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"PerfectWalk-App/internal/domain/service"
)

// SessionManager はセッションIDとルート作成状態の対応を管理するインメモリレジストリ
// セッションはプロセスのライフタイムに紐づく（永続化は保存済みルートが担う）
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*service.RouteState
}

// NewSessionManager 新しいSessionManagerインスタンスを作成
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*service.RouteState),
	}
}

// Create 新しいセッションを作成してIDと初期状態を返す
func (m *SessionManager) Create() (string, *service.RouteState) {
	sessionID := uuid.New().String()
	state := service.NewRouteState()

	m.mu.Lock()
	m.sessions[sessionID] = state
	m.mu.Unlock()

	return sessionID, state
}

// Get 指定IDのセッション状態を取得する
func (m *SessionManager) Get(sessionID string) (*service.RouteState, error) {
	m.mu.RLock()
	state, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("セッションID %s が見つかりません", sessionID)
	}
	return state, nil
}

// Delete 指定IDのセッションを破棄する（存在しない場合は何もしない）
func (m *SessionManager) Delete(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

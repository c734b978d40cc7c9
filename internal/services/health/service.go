package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	StoreType string
	// DB is checked only when the artifact store is database backed.
	DB Pinger
}

// NewService constructs a new health service.
func NewService(storeType string, db Pinger) *Service {
	return &Service{StoreType: storeType, DB: db}
}

// Status returns the health payload and whether every dependency answered.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	payload := map[string]any{"ok": true}
	if s == nil {
		return payload, true
	}
	if s.StoreType != "" {
		payload["artifact_store"] = s.StoreType
	}
	if s.DB == nil {
		return payload, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		payload["ok"] = false
		payload["database"] = "unreachable"
		return payload, false
	}
	payload["database"] = "ok"
	return payload, true
}

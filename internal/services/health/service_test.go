package health

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestStatus(t *testing.T) {
	cases := []struct {
		name    string
		svc     *Service
		want    map[string]any
		healthy bool
	}{
		{name: "nil service", svc: nil, want: map[string]any{"ok": true}, healthy: true},
		{name: "local store", svc: NewService("local", nil), want: map[string]any{"ok": true, "artifact_store": "local"}, healthy: true},
		{
			name:    "database up",
			svc:     NewService("postgres", pingFunc(func(context.Context) error { return nil })),
			want:    map[string]any{"ok": true, "artifact_store": "postgres", "database": "ok"},
			healthy: true,
		},
		{
			name:    "database down",
			svc:     NewService("postgres", pingFunc(func(context.Context) error { return errors.New("refused") })),
			want:    map[string]any{"ok": false, "artifact_store": "postgres", "database": "unreachable"},
			healthy: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, healthy := tc.svc.Status(context.Background())
			if healthy != tc.healthy {
				t.Fatalf("healthy = %v, want %v", healthy, tc.healthy)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

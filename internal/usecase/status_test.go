package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockDatastore struct {
	err error
}

func (m mockDatastore) Ping(ctx context.Context) error {
	return m.err
}

func TestStatusSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("no datastore reports disconnected", func(t *testing.T) {
		snap := NewStatusUseCase(nil).Snapshot(ctx)
		if snap.Status != "OK" {
			t.Errorf("Status = %q, want OK", snap.Status)
		}
		if snap.DatastoreConnected {
			t.Error("expected datastoreConnected to be false")
		}
	})

	t.Run("healthy datastore reports connected", func(t *testing.T) {
		snap := NewStatusUseCase(mockDatastore{}).Snapshot(ctx)
		if !snap.DatastoreConnected {
			t.Error("expected datastoreConnected to be true")
		}
	})

	t.Run("failing ping reports disconnected but still OK", func(t *testing.T) {
		snap := NewStatusUseCase(mockDatastore{err: errors.New("down")}).Snapshot(ctx)
		if snap.Status != "OK" {
			t.Errorf("Status = %q, want OK", snap.Status)
		}
		if snap.DatastoreConnected {
			t.Error("expected datastoreConnected to be false")
		}
	})

	t.Run("timestamp is RFC3339", func(t *testing.T) {
		snap := NewStatusUseCase(nil).Snapshot(ctx)
		if _, err := time.Parse(time.RFC3339, snap.Timestamp); err != nil {
			t.Errorf("timestamp not RFC3339: %q", snap.Timestamp)
		}
	})
}

package usecase

import (
	"context"
	"time"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

var _ adaptor.StatusUseCase = (*StatusUseCase)(nil)

// StatusUseCase builds liveness snapshots. The datastore may be nil (memory
// credential driver); the snapshot then reports it as disconnected.
type StatusUseCase struct {
	datastore adaptor.Datastore
}

func NewStatusUseCase(datastore adaptor.Datastore) *StatusUseCase {
	return &StatusUseCase{datastore: datastore}
}

func (uc *StatusUseCase) Snapshot(ctx context.Context) model.StatusSnapshot {
	connected := false
	if uc.datastore != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		connected = uc.datastore.Ping(pingCtx) == nil
	}
	return model.NewStatusSnapshot(connected)
}

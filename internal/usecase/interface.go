package usecase

import (
	"context"

	"booking-breakdown/internal/domain"
)

// SnapshotRepository defines the interface for fetching transaction snapshots.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go SnapshotRepository
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, path string) (*domain.Snapshot, error)
	ListSnapshots(ctx context.Context, dir string) ([]string, error)
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"booking-breakdown/internal/domain"
)

// Defaults are used when neither the request nor the snapshot names a role
// or unit type.
type Defaults struct {
	Role     domain.Role
	UnitType domain.UnitType
}

// ComputeRequest selects a snapshot and, optionally, the view to compute.
type ComputeRequest struct {
	Path     string
	Role     *domain.Role
	UnitType *domain.UnitType
}

// BreakdownUseCase loads snapshots and computes breakdowns for them.
type BreakdownUseCase struct {
	repo     SnapshotRepository
	defaults Defaults
	logger   *slog.Logger
}

// NewBreakdownUseCase creates a new instance of the usecase.
func NewBreakdownUseCase(repo SnapshotRepository, defaults Defaults, logger *slog.Logger) *BreakdownUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakdownUseCase{repo: repo, defaults: defaults, logger: logger}
}

// Compute loads the snapshot at req.Path and computes its breakdown. The
// role and unit type come from the request, then the snapshot, then the
// defaults.
func (uc *BreakdownUseCase) Compute(ctx context.Context, req ComputeRequest) (*domain.BreakdownSummary, error) {
	snapshot, err := uc.repo.GetSnapshot(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not get snapshot: %w", err)
	}

	role := uc.defaults.Role
	if snapshot.Role != nil {
		role = *snapshot.Role
	}
	if req.Role != nil {
		role = *req.Role
	}
	unitType := uc.defaults.UnitType
	if snapshot.UnitType != nil {
		unitType = *snapshot.UnitType
	}
	if req.UnitType != nil {
		unitType = *req.UnitType
	}

	summary := ComputeBreakdown(snapshot.Transaction, snapshot.Booking, role, unitType)
	uc.logWarnings(req.Path, summary)
	return &summary, nil
}

// Validate computes the customer and provider views of every snapshot in
// dir and collects the warnings each carries.
func (uc *BreakdownUseCase) Validate(ctx context.Context, dir string) (*domain.ValidationReport, error) {
	paths, err := uc.repo.ListSnapshots(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not list snapshots: %w", err)
	}

	report := domain.ValidationReport{Results: make([]domain.FixtureResult, 0, 2*len(paths))}
	for _, path := range paths {
		for _, role := range []domain.Role{domain.RoleCustomer, domain.RoleProvider} {
			r := role
			summary, err := uc.Compute(ctx, ComputeRequest{Path: path, Role: &r})
			if err != nil {
				return nil, fmt.Errorf("could not compute %s view of %s: %w", role, path, err)
			}
			report.Results = append(report.Results, domain.FixtureResult{
				Path:     path,
				Role:     role,
				Total:    summary.Total,
				State:    summary.StateLabel.State,
				Warnings: summary.Warnings,
			})
			if len(summary.Warnings) > 0 {
				report.ViewsWithIssues++
			}
		}
		report.FixturesChecked++
	}
	return &report, nil
}

func (uc *BreakdownUseCase) logWarnings(path string, summary domain.BreakdownSummary) {
	for _, w := range summary.Warnings {
		uc.logger.Warn("breakdown anomaly",
			"path", path,
			"transaction", summary.TransactionID,
			"role", summary.Role.String(),
			"kind", string(w.Kind),
			"message", w.Message,
		)
	}
	uc.logger.Debug("breakdown computed",
		"path", path,
		"total", summary.Total.String(),
		"state", string(summary.StateLabel.State),
		"visible", len(summary.VisibleLineItems),
	)
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"booking-breakdown/internal/domain"
)

// snapshotNamespace derives stable IDs for fixtures that do not carry one.
var snapshotNamespace = uuid.MustParse("6f1c3c52-7d0e-4f5b-9a53-2b8f0d5e9c41")

type fixtureFile struct {
	Role        string             `json:"role" yaml:"role" toml:"role"`
	UnitType    string             `json:"unit_type" yaml:"unit_type" toml:"unit_type"`
	Transaction fixtureTransaction `json:"transaction" yaml:"transaction" toml:"transaction"`
	Booking     fixtureBooking     `json:"booking" yaml:"booking" toml:"booking"`
}

type fixtureTransaction struct {
	ID                 string              `json:"id" yaml:"id" toml:"id"`
	CreatedAt          time.Time           `json:"created_at" yaml:"created_at" toml:"created_at"`
	LastTransitionedAt time.Time           `json:"last_transitioned_at" yaml:"last_transitioned_at" toml:"last_transitioned_at"`
	LastTransition     string              `json:"last_transition" yaml:"last_transition" toml:"last_transition"`
	Transitions        []fixtureTransition `json:"transitions" yaml:"transitions" toml:"transitions"`
	PayinTotal         fixtureMoney        `json:"payin_total" yaml:"payin_total" toml:"payin_total"`
	PayoutTotal        fixtureMoney        `json:"payout_total" yaml:"payout_total" toml:"payout_total"`
	LineItems          []fixtureLineItem   `json:"line_items" yaml:"line_items" toml:"line_items"`
}

type fixtureTransition struct {
	At         time.Time `json:"at" yaml:"at" toml:"at"`
	By         string    `json:"by" yaml:"by" toml:"by"`
	Transition string    `json:"transition" yaml:"transition" toml:"transition"`
}

type fixtureMoney struct {
	Amount   int64  `json:"amount" yaml:"amount" toml:"amount"`
	Currency string `json:"currency" yaml:"currency" toml:"currency"`
}

type fixtureLineItem struct {
	Code       string           `json:"code" yaml:"code" toml:"code"`
	IncludeFor []string         `json:"include_for" yaml:"include_for" toml:"include_for"`
	Quantity   *domain.Quantity `json:"quantity" yaml:"quantity" toml:"quantity"`
	UnitPrice  *fixtureMoney    `json:"unit_price" yaml:"unit_price" toml:"unit_price"`
	LineTotal  *fixtureMoney    `json:"line_total" yaml:"line_total" toml:"line_total"`
	Reversal   bool             `json:"reversal" yaml:"reversal" toml:"reversal"`
}

type fixtureBooking struct {
	ID    string    `json:"id" yaml:"id" toml:"id"`
	Start time.Time `json:"start" yaml:"start" toml:"start"`
	End   time.Time `json:"end" yaml:"end" toml:"end"`
}

// FixtureRepository implements the SnapshotRepository interface for fixture
// files on disk.
type FixtureRepository struct{}

// NewFixtureRepository creates a new repository instance.
func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{}
}

// GetSnapshot reads and decodes a fixture file. The format is chosen by
// extension: .yaml/.yml, .json or .toml.
func (r *FixtureRepository) GetSnapshot(ctx context.Context, path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file %s: %w", path, err)
	}

	var f fixtureFile
	if err := decode(path, data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture %s: %w", path, err)
	}

	snapshot, err := toSnapshot(path, f)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return snapshot, nil
}

// ListSnapshots returns the fixture files in dir, sorted by name.
func (r *FixtureRepository) ListSnapshots(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return false
}

func decode(path string, data []byte, f *fixtureFile) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, f)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(f)
	case ".toml":
		_, err := toml.Decode(string(data), f)
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(path))
}

func toSnapshot(path string, f fixtureFile) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{
		Transaction: toTransaction(path, f.Transaction),
		Booking: domain.Booking{
			ID:    f.Booking.ID,
			Start: f.Booking.Start,
			End:   f.Booking.End,
		},
	}
	if snapshot.Booking.ID == "" {
		snapshot.Booking.ID = uuid.NewSHA1(snapshotNamespace, []byte("booking:"+path)).String()
	}
	if err := snapshot.Booking.Validate(); err != nil {
		return nil, err
	}

	if f.Role != "" {
		role, err := domain.ParseRole(f.Role)
		if err != nil {
			return nil, err
		}
		snapshot.Role = &role
	}
	if f.UnitType != "" {
		unitType, err := domain.ParseUnitType(f.UnitType)
		if err != nil {
			return nil, err
		}
		snapshot.UnitType = &unitType
	}
	return snapshot, nil
}

func toTransaction(path string, ft fixtureTransaction) domain.Transaction {
	tx := domain.Transaction{
		ID:                 ft.ID,
		CreatedAt:          ft.CreatedAt,
		LastTransitionedAt: ft.LastTransitionedAt,
		LastTransition:     domain.ParseTransition(ft.LastTransition),
		LastTransitionName: ft.LastTransition,
		PayinTotal:         domain.NewMoney(ft.PayinTotal.Amount, ft.PayinTotal.Currency),
		PayoutTotal:        domain.NewMoney(ft.PayoutTotal.Amount, ft.PayoutTotal.Currency),
	}
	if tx.ID == "" {
		tx.ID = uuid.NewSHA1(snapshotNamespace, []byte("transaction:"+path)).String()
	}

	for _, t := range ft.Transitions {
		tx.Transitions = append(tx.Transitions, domain.TransitionEntry{
			At:         t.At,
			By:         domain.Actor(t.By),
			Transition: domain.ParseTransition(t.Transition),
			Name:       t.Transition,
		})
	}

	for _, li := range ft.LineItems {
		tx.LineItems = append(tx.LineItems, domain.LineItem{
			Code:       li.Code,
			IncludeFor: domain.NewRoleSet(li.IncludeFor...),
			Quantity:   li.Quantity,
			UnitPrice:  toMoney(li.UnitPrice),
			LineTotal:  toMoney(li.LineTotal),
			Reversal:   li.Reversal,
		})
	}
	return tx
}

func toMoney(m *fixtureMoney) *domain.Money {
	if m == nil {
		return nil
	}
	money := domain.NewMoney(m.Amount, m.Currency)
	return &money
}

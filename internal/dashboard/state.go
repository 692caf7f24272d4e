package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"contaluz/internal/domain"
)

// ErrDeleteDeclined is returned when a delete confirmation is refused.
var ErrDeleteDeclined = errors.New("delete not confirmed")

// State is the dashboard's mirror of the server's bill set. Mutations go to
// the server first and the local copy only changes when the server reports
// success, so after any failed call the state still shows the last known
// good data.
type State struct {
	mu      sync.RWMutex
	api     BillAPI
	confirm *Confirmer
	rows    []BillRow
	summary domain.Summary
}

func NewState(api BillAPI, confirm *Confirmer) *State {
	return &State{api: api, confirm: confirm}
}

// Refresh replaces the cached bill set wholesale. On error the previous
// snapshot is kept.
func (s *State) Refresh(ctx context.Context) error {
	rows, err := s.api.List(ctx)
	if err != nil {
		return fmt.Errorf("refreshing bills: %w", err)
	}
	summary, err := s.api.Summary(ctx)
	if err != nil {
		return fmt.Errorf("refreshing summary: %w", err)
	}

	s.mu.Lock()
	s.rows = rows
	s.summary = *summary
	s.mu.Unlock()
	return nil
}

// Rows returns a copy of the cached bill rows.
func (s *State) Rows() []BillRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]BillRow, len(s.rows))
	copy(rows, s.rows)
	return rows
}

// Summary returns the cached aggregate metrics.
func (s *State) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// TogglePaid flips a bill's paid flag on the server, then mirrors the
// returned row locally.
func (s *State) TogglePaid(ctx context.Context, id int64) (*BillRow, error) {
	row, err := s.api.TogglePaid(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replace(row)
	return row, nil
}

// ToggleCompensationType flips a bill between internal and external
// compensation on the server, then mirrors the returned row locally.
func (s *State) ToggleCompensationType(ctx context.Context, id int64) (*BillRow, error) {
	row, err := s.api.ToggleCompensationType(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replace(row)
	return row, nil
}

// SetDiscount updates a bill's contracted discount on the server. On
// failure the cached row is untouched and is returned alongside the error
// so callers can keep rendering the last known good value.
func (s *State) SetDiscount(ctx context.Context, id int64, value float64) (*BillRow, error) {
	row, err := s.api.SetDiscount(ctx, id, value)
	if err != nil {
		return s.get(id), err
	}
	s.replace(row)
	return row, nil
}

// Delete asks for confirmation, then deletes on the server. The server
// returns the deleted row; a delete that comes back empty or errored leaves
// the local state unchanged.
func (s *State) Delete(ctx context.Context, id int64) (*BillRow, error) {
	if _, approved := s.confirm.Request(ctx); !approved {
		return nil, ErrDeleteDeclined
	}

	row, err := s.api.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	s.mu.Unlock()
	return row, nil
}

func (s *State) replace(row *BillRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == row.ID {
			s.rows[i] = *row
			return
		}
	}
	s.rows = append(s.rows, *row)
}

func (s *State) get(id int64) *BillRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			row := s.rows[i]
			return &row
		}
	}
	return nil
}

// tableColumn describes one rendered dashboard column as a title and a
// value extractor, so the row layout is data rather than code.
type tableColumn struct {
	Title string
	Value func(*BillRow) string
}

// TableColumns is the dashboard row layout.
var TableColumns = []tableColumn{
	{"ID", func(r *BillRow) string { return strconv.FormatInt(r.ID, 10) }},
	{"Mês", func(r *BillRow) string { return r.Date }},
	{"Distribuidora", func(r *BillRow) string { return r.Company }},
	{"Instalação", func(r *BillRow) string { return r.InstallationNumber }},
	{"Custo (R$)", func(r *BillRow) string { return money(r.Cost) }},
	{"Consumo (kWh)", func(r *BillRow) string { return number(r.Consumption) }},
	{"Comp. (kWh)", func(r *BillRow) string { return number(r.CompensatedEnergyKwh) }},
	{"Tipo", func(r *BillRow) string { return string(r.CompensatedEnergyType) }},
	{"Valor Consumo (R$)", func(r *BillRow) string { return money(r.ConsumedEnergyValue) }},
	{"C/ Desconto (R$)", func(r *BillRow) string { return money(r.DiscountedValue) }},
	{"Paga", func(r *BillRow) string {
		if r.Paid {
			return "sim"
		}
		return "não"
	}},
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

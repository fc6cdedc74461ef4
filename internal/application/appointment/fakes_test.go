package appointment_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/barberia-api/internal/domain/entity"
	"github.com/jhoicas/barberia-api/internal/domain/repository"
	"github.com/jhoicas/barberia-api/internal/domain/scheduling"
)

// memAppointments repositorio en memoria con la misma semántica de solapamiento que SQL.
type memAppointments struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Appointment
}

func newMemAppointments() *memAppointments {
	return &memAppointments{rows: map[int64]entity.Appointment{}}
}

func (m *memAppointments) Create(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now().UTC()
	m.rows[a.ID] = *a
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id int64) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memAppointments) Update(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[a.ID] = *a
	return nil
}

func (m *memAppointments) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memAppointments) List(_ context.Context, f entity.AppointmentFilter) ([]*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range m.rows {
		if f.BarberID != nil && a.BarberID != *f.BarberID {
			continue
		}
		if f.ClientID != nil && a.ClientID != *f.ClientID {
			continue
		}
		a := a
		out = append(out, &a)
	}
	return out, nil
}

func (m *memAppointments) CountOverlapping(_ context.Context, barberID int64, start, end time.Time, excludeID *int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := scheduling.Interval{Start: start, End: end}
	n := 0
	for _, a := range m.rows {
		if a.BarberID != barberID || !a.Blocks() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.Interval().Overlaps(target) {
			n++
		}
	}
	return n, nil
}

func (m *memAppointments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// fakeTx serializa los callbacks y registra los barberos bloqueados.
type fakeTx struct {
	mu     sync.Mutex
	repo   *memAppointments
	locked [][]int64
	// beforeFn corre una sola vez tras tomar los bloqueos; simula una escritura concurrente.
	beforeFn func()
}

func (f *fakeTx) RunForBarbers(_ context.Context, barberIDs []int64, fn func(repository.AppointmentRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = append(f.locked, append([]int64(nil), barberIDs...))
	if hook := f.beforeFn; hook != nil {
		f.beforeFn = nil
		hook()
	}
	return fn(f.repo)
}

type memClients struct{ ids map[int64]bool }

func (m memClients) Create(context.Context, *entity.Client) error { return nil }
func (m memClients) Update(context.Context, *entity.Client) error { return nil }
func (m memClients) Delete(context.Context, int64) (bool, error) { return false, nil }
func (m memClients) List(context.Context, string, int) ([]*entity.Client, error) {
	return nil, nil
}
func (m memClients) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	if !m.ids[id] {
		return nil, nil
	}
	return &entity.Client{ID: id, Name: "Pedro"}, nil
}

type memBarbers struct{ ids map[int64]bool }

func (m memBarbers) Create(context.Context, *entity.Barber) error { return nil }
func (m memBarbers) Update(context.Context, *entity.Barber) error { return nil }
func (m memBarbers) List(context.Context) ([]*entity.Barber, error) { return nil, nil }
func (m memBarbers) Count(context.Context) (int, error)             { return len(m.ids), nil }
func (m memBarbers) GetByID(_ context.Context, id int64) (*entity.Barber, error) {
	if !m.ids[id] {
		return nil, nil
	}
	return &entity.Barber{ID: id, Name: "João", Active: true}, nil
}

type memServices struct{ ids map[int64]bool }

func (m memServices) Create(context.Context, *entity.Service) error { return nil }
func (m memServices) Update(context.Context, *entity.Service) error { return nil }
func (m memServices) List(context.Context) ([]*entity.Service, error) { return nil, nil }
func (m memServices) Count(context.Context) (int, error)              { return len(m.ids), nil }
func (m memServices) GetByID(_ context.Context, id int64) (*entity.Service, error) {
	if !m.ids[id] {
		return nil, nil
	}
	return &entity.Service{ID: id, Name: "Corte", DurationMin: 30, PriceCents: 4000, Active: true}, nil
}

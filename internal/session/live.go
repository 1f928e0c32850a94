package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

// Live owns the State of the single running session and serializes the
// operations that replace it.
type Live struct {
	ID string

	ctrl *Controller

	// op serializes state-changing operations; mu guards st.
	op sync.Mutex
	mu sync.RWMutex
	st State
}

func NewLive(ctrl *Controller) *Live {
	return &Live{ID: uuid.NewString(), ctrl: ctrl}
}

// State returns a copy of the current state.
func (l *Live) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.st
}

func (l *Live) set(st State) State {
	l.mu.Lock()
	l.st = st
	l.mu.Unlock()
	return st
}

func (l *Live) Init(ctx context.Context) State {
	l.op.Lock()
	defer l.op.Unlock()
	return l.set(l.ctrl.Init(ctx, l.State()))
}

func (l *Live) Search(ctx context.Context, query string) State {
	l.op.Lock()
	defer l.op.Unlock()
	return l.set(l.ctrl.Search(ctx, l.State(), query))
}

func (l *Live) Refresh(ctx context.Context) State {
	l.op.Lock()
	defer l.op.Unlock()
	return l.set(l.ctrl.Refresh(ctx, l.State()))
}

func (l *Live) SelectFavorite(ctx context.Context, name string) (State, error) {
	l.op.Lock()
	defer l.op.Unlock()
	st, err := l.ctrl.SelectFavorite(ctx, l.State(), name)
	if err != nil {
		return st, err
	}
	return l.set(st), nil
}

func (l *Live) SaveFavorite() (weather.Place, bool, error) {
	return l.ctrl.SaveFavorite(l.State())
}

func (l *Live) Favorites() ([]weather.Place, error) {
	return l.ctrl.Favorites()
}

func (l *Live) Historical(ctx context.Context, date, hour string) (Historical, error) {
	return l.ctrl.Historical(ctx, l.State(), date, hour)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

// Resolver turns names and coordinates into places.
type Resolver interface {
	ResolveByName(ctx context.Context, query string) (weather.Place, error)
	ResolveByCoordinates(ctx context.Context, lat, lon float64) weather.Place
}

// Weather builds snapshots and historical hours.
type Weather interface {
	BuildSnapshot(ctx context.Context, place weather.Place) (weather.CurrentSnapshot, []weather.ForecastDay, error)
	FetchDay(ctx context.Context, place weather.Place, day time.Time, hour *int) (weather.HistoricalHour, error)
}

// Preferences persists the last place and favorites.
type Preferences interface {
	SaveLastPlace(place weather.Place) error
	LastPlace() (weather.Place, bool, error)
	Favorites() ([]weather.Place, error)
	AddFavorite(place weather.Place) (bool, error)
	Favorite(name string) (weather.Place, bool, error)
}

// Config holds the controller's fallbacks and time bounds.
type Config struct {
	DefaultCity        string
	DefaultLat         float64
	DefaultLon         float64
	SearchTimeout      time.Duration
	GeolocationTimeout time.Duration
	GeolocationMaxAge  time.Duration
}

// Controller implements the session operations. It holds no session
// state of its own; see State and Live.
type Controller struct {
	resolver Resolver
	weather  Weather
	locator  weather.Locator
	prefs    Preferences
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

func NewController(resolver Resolver, w Weather, locator weather.Locator, prefs Preferences, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		resolver: resolver,
		weather:  w,
		locator:  locator,
		prefs:    prefs,
		cfg:      cfg,
		log:      logger.With("component", "session"),
		now:      time.Now,
	}
}

// DefaultPlace geocodes the configured default city, falling back to the
// configured coordinates when that fails.
func (c *Controller) DefaultPlace(ctx context.Context) weather.Place {
	p, err := c.resolver.ResolveByName(ctx, c.cfg.DefaultCity)
	if err == nil {
		return p
	}
	c.log.Warn("default city lookup failed, using configured coordinates",
		"city", c.cfg.DefaultCity, "error", err)
	return weather.Place{Name: c.cfg.DefaultCity, Latitude: c.cfg.DefaultLat, Longitude: c.cfg.DefaultLon}
}

// Init picks the startup place (device position, then the last place,
// then the default) and renders it. A panic anywhere in the chain renders
// the default place instead. The default place is resolved only when prev
// does not carry one yet.
func (c *Controller) Init(ctx context.Context, prev State) (st State) {
	def := prev.DefaultPlace
	if def.Name == "" {
		def = c.DefaultPlace(ctx)
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("init failed, rendering default place", "panic", r)
			st = c.Render(ctx, def, SourceDefault, def)
		}
	}()

	place, src := c.startupPlace(ctx, def)
	c.log.Info("startup place chosen", "place", place.Name, "source", src)
	return c.Render(ctx, place, src, def)
}

func (c *Controller) startupPlace(ctx context.Context, def weather.Place) (weather.Place, Source) {
	if c.locator != nil {
		lctx, cancel := context.WithTimeout(ctx, c.cfg.GeolocationTimeout)
		pos, err := c.locator.Locate(lctx, c.cfg.GeolocationMaxAge)
		cancel()
		if err == nil {
			return c.resolver.ResolveByCoordinates(ctx, pos.Latitude, pos.Longitude), SourceDevice
		}
		c.log.Info("device position unavailable", "error", err)
	}

	if c.prefs != nil {
		last, ok, err := c.prefs.LastPlace()
		if err != nil {
			c.log.Warn("read last place", "error", err)
		}
		if ok {
			return last, SourceLast
		}
	}
	return def, SourceDefault
}

// Render builds a snapshot for place and, on success, persists it as the
// last place.
func (c *Controller) Render(ctx context.Context, place weather.Place, src Source, def weather.Place) State {
	snap, days, err := c.weather.BuildSnapshot(ctx, place)
	return c.commit(place, src, def, snap, days, err)
}

func (c *Controller) commit(place weather.Place, src Source, def weather.Place, snap weather.CurrentSnapshot, days []weather.ForecastDay, err error) State {
	st := State{
		Place:        place,
		Source:       src,
		DefaultPlace: def,
		UpdatedAt:    c.now(),
	}
	if err != nil {
		c.log.Warn("render failed", "place", place.Name, "error", err)
		st.Status = StatusError
		st.Message = MsgLoadFailed
		st.Err = err
		return st
	}

	st.Snapshot = snap
	st.Forecast = days
	st.Status = StatusReady

	if c.prefs != nil && place.Name != "" {
		if err := c.prefs.SaveLastPlace(place); err != nil {
			c.log.Warn("persist last place", "place", place.Name, "error", err)
		} else {
			st.Persisted = true
		}
	}
	return st
}

type searchResult struct {
	place weather.Place
	snap  weather.CurrentSnapshot
	days  []weather.ForecastDay
	err   error
	found bool
}

// Search resolves query and renders it, bounded by the search timeout. A
// timed out search is cancelled and the default place is rendered. An
// unresolvable name leaves the previous place in view. A blank query
// returns prev unchanged.
func (c *Controller) Search(ctx context.Context, prev State, query string) State {
	q := strings.TrimSpace(query)
	if q == "" {
		return prev
	}
	log := c.log.With("op", uuid.NewString(), "query", q)

	sctx, cancel := context.WithTimeout(ctx, c.cfg.SearchTimeout)
	defer cancel()

	done := make(chan searchResult, 1)
	go func() {
		var r searchResult
		r.place, r.err = c.resolver.ResolveByName(sctx, q)
		if r.err == nil {
			r.found = true
			r.snap, r.days, r.err = c.weather.BuildSnapshot(sctx, r.place)
		}
		done <- r
	}()

	r, expired := settle(sctx, done)

	if expired {
		if ctx.Err() != nil || !errors.Is(sctx.Err(), context.DeadlineExceeded) {
			log.Info("search abandoned", "error", ctx.Err())
			return prev
		}
		log.Warn("search timed out, rendering default place", "timeout", c.cfg.SearchTimeout)
		st := c.Render(ctx, prev.DefaultPlace, SourceDefault, prev.DefaultPlace)
		if st.Ready() {
			st.Status = StatusTimedOut
			st.Message = timedOutMessage(prev.DefaultPlace)
			st.Err = fmt.Errorf("%w after %s", weather.ErrTimeout, c.cfg.SearchTimeout)
		}
		return st
	}

	if !r.found {
		log.Info("search found nothing", "error", r.err)
		next := prev
		next.Status = StatusNotFound
		next.Message = MsgNotFound
		next.Err = r.err
		next.UpdatedAt = c.now()
		return next
	}

	log.Info("search resolved", "place", r.place.Name)
	return c.commit(r.place, SourceSearch, prev.DefaultPlace, r.snap, r.days, r.err)
}

// settle waits for the search result or the end of sctx. A result that is
// already available wins over the deadline. The work may also lose to the
// deadline by returning its ctx error; that counts as expired too.
func settle(sctx context.Context, done <-chan searchResult) (searchResult, bool) {
	var r searchResult
	select {
	case r = <-done:
	case <-sctx.Done():
		select {
		case r = <-done:
		default:
			return r, true
		}
	}
	if r.err == nil || errors.Is(r.err, weather.ErrNotFound) {
		return r, false
	}
	return r, sctx.Err() != nil
}

// Favorites lists saved places in insertion order.
func (c *Controller) Favorites() ([]weather.Place, error) {
	if c.prefs == nil {
		return []weather.Place{}, nil
	}
	return c.prefs.Favorites()
}

// SaveFavorite saves the current place. Only a place that rendered and
// was persisted as the last place can be saved; saving it twice is a
// no-op reported as added=false.
func (c *Controller) SaveFavorite(st State) (weather.Place, bool, error) {
	if c.prefs == nil || !st.Ready() || !st.Persisted {
		return weather.Place{}, false, ErrNothingToSave
	}
	last, ok, err := c.prefs.LastPlace()
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("read last place: %w", err)
	}
	if !ok || last.Name != st.Place.Name {
		return weather.Place{}, false, ErrNothingToSave
	}

	added, err := c.prefs.AddFavorite(last)
	if err != nil {
		return weather.Place{}, false, fmt.Errorf("save favorite: %w", err)
	}
	c.log.Info("favorite saved", "place", last.Name, "added", added)
	return last, added, nil
}

// SelectFavorite renders the saved place called name.
func (c *Controller) SelectFavorite(ctx context.Context, prev State, name string) (State, error) {
	if c.prefs == nil {
		return prev, ErrUnknownFavorite
	}
	fav, ok, err := c.prefs.Favorite(name)
	if err != nil {
		return prev, fmt.Errorf("load favorites: %w", err)
	}
	if !ok {
		return prev, fmt.Errorf("%w: %q", ErrUnknownFavorite, name)
	}
	c.log.Info("favorite selected", "op", uuid.NewString(), "place", fav.Name)
	return c.Render(ctx, fav, SourceFavorite, prev.DefaultPlace), nil
}

// Refresh re-renders the current place, keeping how it was chosen. When
// prev is ready and the render fails, prev stays in view with Err set.
func (c *Controller) Refresh(ctx context.Context, prev State) State {
	if !prev.HasPlace() {
		return prev
	}
	st := c.Render(ctx, prev.Place, prev.Source, prev.DefaultPlace)
	if st.Ready() || !prev.Ready() {
		return st
	}
	c.log.Warn("refresh failed, keeping last snapshot", "place", prev.Place.Name, "error", st.Err)
	prev.Err = st.Err
	return prev
}

// Historical looks up one hour of a past day for the current place. date
// is "2006-01-02" and must be before today; hour is optional "HH:MM".
// Failures come back as *UserError.
func (c *Controller) Historical(ctx context.Context, st State, date, hour string) (Historical, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return Historical{}, userError(MsgPickDate, ErrNoDate)
	}
	now := c.now()
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return Historical{}, userError(MsgPickDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !day.Before(today) {
		return Historical{}, userError(MsgPastDate, ErrNotPast)
	}
	if !st.HasPlace() {
		return Historical{}, userError(MsgNeedPlace, ErrNoPlace)
	}

	var hp *int
	if strings.TrimSpace(hour) != "" {
		h, err := weather.ParseHour(hour)
		if err != nil {
			return Historical{}, userError(MsgInvalidHour, fmt.Errorf("%w: %v", ErrBadHour, err))
		}
		hp = &h
	}

	log := c.log.With("op", uuid.NewString(), "place", st.Place.Name, "date", date)
	h, err := c.weather.FetchDay(ctx, st.Place, day, hp)
	switch {
	case errors.Is(err, weather.ErrNoData):
		log.Info("no historical data")
		return Historical{}, userError(MsgHistNoData, err)
	case err != nil:
		log.Warn("historical lookup failed", "error", err)
		return Historical{}, userError(MsgHistFailed, err)
	}
	return Historical{Place: st.Place, Date: date, Hour: h}, nil
}

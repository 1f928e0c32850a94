package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/weather"
)

const (
	lastPlaceKey = "lastCity"
	favoritesKey = "weatherFavorites"
)

// ErrCorrupt marks a stored record that no longer decodes.
var ErrCorrupt = errors.New("stored record is corrupt")

// record is the persisted shape of both the last place and each favorite.
type record struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

func toRecord(p weather.Place) record {
	lat, lon := p.Latitude, p.Longitude
	return record{Name: p.Name, Lat: &lat, Lon: &lon}
}

func (r record) place() (weather.Place, bool) {
	if r.Lat == nil || r.Lon == nil {
		return weather.Place{}, false
	}
	if math.IsNaN(*r.Lat) || math.IsNaN(*r.Lon) || math.IsInf(*r.Lat, 0) || math.IsInf(*r.Lon, 0) {
		return weather.Place{}, false
	}
	return weather.Place{Name: r.Name, Latitude: *r.Lat, Longitude: *r.Lon}, true
}

// Preferences reads and writes the user's last place and favorites.
type Preferences struct {
	kv KV
}

func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// SaveLastPlace overwrites the last rendered place.
func (p *Preferences) SaveLastPlace(place weather.Place) error {
	b, err := json.Marshal(toRecord(place))
	if err != nil {
		return err
	}
	return p.kv.Put(lastPlaceKey, string(b))
}

// LastPlace returns the stored last place. ok is false when none is stored
// or the record lacks numeric coordinates.
func (p *Preferences) LastPlace() (place weather.Place, ok bool, err error) {
	raw, found, err := p.kv.Get(lastPlaceKey)
	if err != nil || !found {
		return weather.Place{}, false, err
	}
	var r record
	if json.Unmarshal([]byte(raw), &r) != nil {
		return weather.Place{}, false, nil
	}
	place, ok = r.place()
	return place, ok, nil
}

// Favorites returns saved places in insertion order. Entries without
// usable coordinates are skipped.
func (p *Preferences) Favorites() ([]weather.Place, error) {
	records, err := p.loadFavorites()
	if err != nil {
		return nil, err
	}
	out := make([]weather.Place, 0, len(records))
	for _, r := range records {
		if place, ok := r.place(); ok {
			out = append(out, place)
		}
	}
	return out, nil
}

// AddFavorite appends place unless a favorite with the same name exists.
// It reports whether the list changed. A corrupt list is replaced.
func (p *Preferences) AddFavorite(place weather.Place) (bool, error) {
	records, err := p.loadFavorites()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return false, err
	}
	for _, r := range records {
		if r.Name == place.Name {
			return false, nil
		}
	}
	records = append(records, toRecord(place))

	b, err := json.Marshal(records)
	if err != nil {
		return false, err
	}
	if err := p.kv.Put(favoritesKey, string(b)); err != nil {
		return false, err
	}
	return true, nil
}

// Favorite looks up a saved place by exact name.
func (p *Preferences) Favorite(name string) (weather.Place, bool, error) {
	favs, err := p.Favorites()
	if err != nil {
		return weather.Place{}, false, err
	}
	for _, f := range favs {
		if f.Name == name {
			return f, true, nil
		}
	}
	return weather.Place{}, false, nil
}

func (p *Preferences) loadFavorites() ([]record, error) {
	raw, found, err := p.kv.Get(favoritesKey)
	if err != nil || !found {
		return nil, err
	}
	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, favoritesKey, err)
	}
	return records, nil
}

package timezone

import (
	"sync"
	"time"
)

// Fuso padrão quando o tenant não configurou (ou configurou errado).
const DefaultTimezone = "America/Sao_Paulo"

var (
	cacheMu sync.RWMutex
	cache   = map[string]*time.Location{}
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

// Location nunca falha: fuso inválido cai no padrão.
func Location(tz string) *time.Location {
	if loc, err := load(tz); err == nil {
		return loc
	}
	loc, err := load(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

func load(tz string) (*time.Location, error) {
	if tz == "" {
		tz = DefaultTimezone
	}

	cacheMu.RLock()
	loc, ok := cache[tz]
	cacheMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[tz] = loc
	cacheMu.Unlock()
	return loc, nil
}

// Package refdata loads the ISO country and currency code sets used to
// validate imported payment records. The sets are fetched once at process
// startup and are immutable afterwards; a fetch failure is fatal for the
// caller, there is no partial or degraded mode.
package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const registryPath = "/v3.1/all?fields=cca2,currencies"

// CodeSet is a read-only membership set of reference codes. Lookups are
// exact and case-sensitive. Safe for concurrent readers once built.
type CodeSet map[string]struct{}

func (s CodeSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s CodeSet) Len() int { return len(s) }

// ReferenceData holds the cached ISO 3166-1 alpha-2 country codes and
// ISO 4217 alpha-3 currency codes for the process lifetime.
type ReferenceData struct {
	Countries  CodeSet
	Currencies CodeSet
}

// New builds a ReferenceData from literal code lists. Used by tests and
// offline fixtures; production callers go through Load.
func New(countries, currencies []string) *ReferenceData {
	rd := &ReferenceData{
		Countries:  make(CodeSet, len(countries)),
		Currencies: make(CodeSet, len(currencies)),
	}
	for _, c := range countries {
		rd.Countries[c] = struct{}{}
	}
	for _, c := range currencies {
		rd.Currencies[c] = struct{}{}
	}
	return rd
}

type registryEntry struct {
	CCA2       string                     `json:"cca2"`
	Currencies map[string]json.RawMessage `json:"currencies"`
}

// Load fetches the country registry once and derives both code sets from it.
// baseURL is the registry host (restcountries-compatible); client may be nil.
func Load(ctx context.Context, baseURL string, client *http.Client) (*ReferenceData, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+registryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("refdata: building registry request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refdata: fetching registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refdata: registry returned status %d", resp.StatusCode)
	}

	var entries []registryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("refdata: decoding registry response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("refdata: registry returned no entries")
	}

	rd := &ReferenceData{
		Countries:  make(CodeSet, len(entries)),
		Currencies: make(CodeSet),
	}
	for _, e := range entries {
		if e.CCA2 != "" {
			rd.Countries[e.CCA2] = struct{}{}
		}
		for code := range e.Currencies {
			rd.Currencies[code] = struct{}{}
		}
	}
	return rd, nil
}

// Package profile holds the static table of remote recording servers.
// The table is built once at startup and never mutated afterwards; every
// lookup goes through it instead of per-server wiring.
package profile

import (
	"fmt"

	"github.com/sozarusac/callaudio/internal/shared"
)

// ServerProfile is the connection information for one remote recording
// server, keyed by its logical id as the CRM knows it.
type ServerProfile struct {
	ID       string `json:"id"`
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	Port     int    `json:"port"`
	// Endpoint is the public path of the file-browsing API fronting this
	// server, used when composing download URLs.
	Endpoint string `json:"endpoint"`
}

// FallbackServerIDs are the servers queried, in order, when the primary
// server yields no matches. Only the two SOLIVESA sites host redundant
// copies of recordings.
// TODO: confirm with ops that no other site keeps redundant recordings.
var FallbackServerIDs = []string{"14", "157"}

// DefaultEndpoints maps server ids to their public browsing endpoints.
var DefaultEndpoints = map[string]string{
	"154": "/api/monitor-cix-vidarte",
	"23":  "/api/monitor-cix-tantalean",
	"31":  "/api/monitor-cix-kevin",
	"126": "/api/monitor-cix-julca",
	"14":  "/api/monitor-cix-solivesa1",
	"157": "/api/monitor-cix-solivesa2",
}

// Table is an immutable server-id → profile mapping.
type Table struct {
	profiles map[string]ServerProfile
}

// NewTable builds a Table from the configured profiles. Ids must be
// unique; profiles without an explicit endpoint get the default one for
// their id.
func NewTable(profiles []ServerProfile) (*Table, error) {
	m := make(map[string]ServerProfile, len(profiles))

	for _, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("server profile without id: %w", shared.ErrorUnknownServer)
		}
		if _, ok := m[p.ID]; ok {
			return nil, fmt.Errorf("server %q: %w", p.ID, shared.ErrorDuplicateServer)
		}
		if p.Endpoint == "" {
			p.Endpoint = DefaultEndpoints[p.ID]
		}
		m[p.ID] = p
	}

	return &Table{profiles: m}, nil
}

// Get returns the profile for a logical server id.
func (t *Table) Get(id string) (ServerProfile, error) {
	p, ok := t.profiles[id]
	if !ok {
		return ServerProfile{}, fmt.Errorf("server %q: %w", id, shared.ErrorUnknownServer)
	}
	return p, nil
}

// IDs returns every configured server id.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.profiles))
	for id := range t.profiles {
		ids = append(ids, id)
	}
	return ids
}

// Package permissions loads the route access table embedded from
// permissions.json. Each entry names a chi route pattern, a method and the
// roles allowed to call it; routes missing from the table are refused.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleAdmin, constant.RoleManager, constant.RoleClient}

// Permission guards one route. An empty Roles admits any signed in user and
// Skip makes the route public.
type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

// Allows reports whether role may call the route.
func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

// Table indexes permissions by method and pattern. Skip opens every route,
// which is only meant for local development.
type Table struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(method, path string) string {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}

	return method + " " + path
}

// Lookup matches a chi route pattern. Trailing slashes are ignored.
func (t *Table) Lookup(path, method string) (Permission, bool) {
	permission, found := t.index[key(method, path)]

	return permission, found
}

// Parse decodes a permission table and rejects unknown roles and duplicate
// routes.
func Parse(data []byte) (*Table, error) {
	var table Table

	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Permission, len(table.Endpoints))

	for _, permission := range table.Endpoints {
		for _, role := range permission.Roles {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("%s %s: unknown role %q", permission.Method, permission.Path, role)
			}
		}

		routeKey := key(permission.Method, permission.Path)
		if _, exists := table.index[routeKey]; exists {
			return nil, fmt.Errorf("duplicate permission for %s", routeKey)
		}

		table.index[routeKey] = permission
	}

	return &table, nil
}

// Get loads the embedded table. A broken table is a build defect, so the
// process exits.
func Get() *Table {
	table, err := Parse(permissionsData)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded permissions")
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("Loaded embedded permissions")

	return table
}

// Package surface tracks the live touch surfaces owned by transport
// connections.
package surface

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/gesture"
)

// Registry keeps the live surfaces under a fixed bound. When the bound is
// reached the least recently used surface is evicted and torn down, so an
// abandoned connection can never hold timers or subscriptions forever.
type Registry struct {
	cache *lru.Cache[string, *Surface]
	log   logrus.FieldLogger
}

// NewRegistry returns a registry bounded to maxSurfaces live surfaces.
func NewRegistry(maxSurfaces int, log logrus.FieldLogger) (*Registry, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cache, err := lru.NewWithEvict[string, *Surface](maxSurfaces, func(id string, s *Surface) {
		s.Teardown()
		log.WithField("surface", id).Debug("surface torn down")
	})
	if err != nil {
		return nil, fmt.Errorf("surface registry: %w", err)
	}
	return &Registry{cache: cache, log: log}, nil
}

// Create registers a new surface running the named profile with cfg and
// returns it. Creating past the bound tears down the least recently used
// surface.
func (r *Registry) Create(profileName string, cfg gesture.Config) *Surface {
	s := New(uuid.NewString(), profileName, cfg, r.log)
	r.cache.Add(s.ID(), s)
	r.log.WithFields(logrus.Fields{
		"surface": s.ID(),
		"profile": profileName,
	}).Debug("surface registered")
	return s
}

// Get returns the surface for id and marks it recently used.
func (r *Registry) Get(id string) (*Surface, bool) {
	return r.cache.Get(id)
}

// Remove tears down and forgets the surface for id.
func (r *Registry) Remove(id string) {
	r.cache.Remove(id)
}

// Len reports the number of live surfaces.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Snapshot returns the state of every live surface, oldest first.
func (r *Registry) Snapshot() []Info {
	keys := r.cache.Keys()
	infos := make([]Info, 0, len(keys))
	for _, id := range keys {
		if s, ok := r.cache.Peek(id); ok {
			infos = append(infos, s.Snapshot())
		}
	}
	return infos
}

// Close tears down every live surface.
func (r *Registry) Close() {
	r.cache.Purge()
}

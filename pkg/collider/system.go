package collider

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

// System owns the static collision meshes of a world and answers point
// queries against them. It is safe for concurrent use. Mutations are
// serialised against in-flight queries, and Move swaps in a translated
// copy so meshes already handed out are never written.
type System struct {
	mu       sync.RWMutex
	settings SystemSettings
	plane    PlaneSettings
	log      *zap.Logger

	meshes     []*Mesh
	cache      []*Mesh
	cacheValid bool
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for mesh admission diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSystem creates an empty system.
func NewSystem(cfg Config, opts ...Option) *System {
	s := &System{
		settings: cfg.System,
		plane:    cfg.Plane,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the system settings.
func (s *System) Settings() SystemSettings {
	return s.settings
}

// Add flattens node and admits a collision mesh for each scene mesh in
// encounter order. Meshes without geometry and meshes with more planes
// than MaxPlanesPerMesh are logged and skipped. Malformed geometry fails
// the whole call and nothing is admitted.
func (s *System) Add(node scene.Node, params MeshParams) error {
	sources := scene.Flatten(node)
	if len(sources) == 0 {
		s.log.Warn("invalid object: no meshes", zap.Any("node", node))
		return nil
	}

	built := make([]*Mesh, 0, len(sources))
	for _, src := range sources {
		if src.Geometry == nil {
			s.log.Warn("missing geometry", zap.String("id", src.ID), zap.String("name", src.Name))
			continue
		}

		m, err := NewMesh(src, params, s.plane)
		if err != nil {
			return fmt.Errorf("adding mesh %s: %w", src.ID, err)
		}

		if limit := s.settings.MaxPlanesPerMesh; limit > 0 && m.PlaneCount() > limit {
			s.log.Warn("mesh contains too many planes",
				zap.String("id", src.ID),
				zap.String("name", src.Name),
				zap.Int("planes", m.PlaneCount()),
				zap.Int("max", limit))
			continue
		}
		built = append(built, m)
	}

	s.mu.Lock()
	s.meshes = append(s.meshes, built...)
	s.invalidateCache()
	s.mu.Unlock()

	for _, m := range built {
		s.log.Debug("mesh added",
			zap.String("id", m.ID()),
			zap.String("name", m.Name()),
			zap.Int("planes", m.PlaneCount()),
			zap.Bool("floor", m.IsFloor()))
	}
	return nil
}

// AddFloor adds node as walkable ground.
func (s *System) AddFloor(node scene.Node) error {
	return s.Add(node, MeshParams{IsFloor: true})
}

// Remove deletes the first mesh with the given ID.
func (s *System) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.meshes {
		if m.ID() == id {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			s.invalidateCache()
			s.log.Debug("mesh removed", zap.String("id", id))
			return true
		}
	}
	s.log.Debug("remove failed: mesh not found", zap.String("id", id))
	return false
}

// Clear removes every mesh.
func (s *System) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes = nil
	s.invalidateCache()
}

// Move translates the mesh with the given ID. Meshes previously returned
// by the system keep their old position.
func (s *System) Move(id string, position math.Vec3) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.meshes {
		if m.ID() == id {
			s.meshes[i] = m.WithPosition(position)
			s.invalidateCache()
			return true
		}
	}
	return false
}

// SetEnabled toggles collisions for the mesh with the given ID.
func (s *System) SetEnabled(id string, enabled bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.find(id)
	if m == nil {
		return false
	}
	if enabled {
		m.Enable()
	} else {
		m.Disable()
	}
	return true
}

// Mesh returns the mesh with the given ID.
func (s *System) Mesh(id string) (*Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.find(id)
	return m, m != nil
}

// Meshes returns a snapshot of all meshes in insertion order.
func (s *System) Meshes() []*Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Mesh, len(s.meshes))
	copy(out, s.meshes)
	return out
}

// Len returns the number of meshes.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meshes)
}

func (s *System) find(id string) *Mesh {
	for _, m := range s.meshes {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// candidates returns the meshes a collision query must visit. Caller
// holds the read lock.
func (s *System) candidates() []*Mesh {
	if s.settings.UseCache && s.cacheValid {
		return s.cache
	}
	return s.meshes
}

// Collisions returns every mesh containing point, in insertion order.
func (s *System) Collisions(point math.Vec3) []*Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collisions(point)
}

func (s *System) collisions(point math.Vec3) []*Mesh {
	var res []*Mesh
	for _, m := range s.candidates() {
		if m.Collides(point) {
			res = append(res, m)
		}
	}
	return res
}

// CeilingPlane returns the highest ceiling among the meshes containing
// point.
func (s *System) CeilingPlane(point math.Vec3) (Ceiling, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best Ceiling
	found := false
	for _, m := range s.collisions(point) {
		c, ok := m.CeilingPlane(point)
		if ok && (!found || c.Y > best.Y) {
			best = c
			found = true
		}
	}
	return best, found
}

// Floor returns the height of the highest floor surface below point, or
// the world floor when no floor mesh is there. Each floor mesh is probed
// at the bottom of its box, which is always under the surface.
func (s *System) Floor(point math.Vec3) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	floor := s.settings.Floor
	for _, m := range s.meshes {
		if !m.IsFloor() || !m.InsideFloorBounds(point) {
			continue
		}
		probe := math.V3(point.X, m.Box().Min().Y, point.Z)
		if c, ok := m.CeilingPlane(probe); ok && c.Y > floor {
			floor = c.Y
		}
	}
	return floor
}

// Cache records the meshes near point for later collision queries. A mesh
// is kept when its box centre is within CacheRadius of point or when point
// is within CacheRadius of its box, so any query within CacheRadius of
// point sees the same meshes it would see without the cache.
func (s *System) Cache(point math.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	radius := s.settings.CacheRadius
	s.cache = s.cache[:0]
	for _, m := range s.meshes {
		if m.DistanceTo(point) < radius || m.Box().Bounds().ExpandByScalar(radius).ContainsPoint(point) {
			s.cache = append(s.cache, m)
		}
	}
	s.cacheValid = true
}

// ClearCache empties the cache. Queries fall back to every mesh until
// Cache is called again.
func (s *System) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateCache()
}

// Cached returns the number of cached meshes and whether the cache is in
// use.
func (s *System) Cached() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache), s.cacheValid
}

func (s *System) invalidateCache() {
	s.cache = nil
	s.cacheValid = false
}

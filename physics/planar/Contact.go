package planar

import (
	"github.com/ByteArena/box2d"
	"github.com/samuelfneumann/gowalker/physics"
)

// User data tags of the non-skeleton bodies. Skeleton bodies are tagged
// with their segment name.
const (
	groundTag = "__ground__"
	targetTag = "__target__"
)

// contactDetector forwards box2d contacts between a segment and the
// ground or the target to the world's physics.ContactListener
type contactDetector struct {
	world *World
}

func newContactDetector(w *World) *contactDetector {
	return &contactDetector{w}
}

// classify returns the segment name and contact kind of a contact, and
// whether the contact is between a segment and the ground or target
func classify(contact box2d.B2ContactInterface) (string, physics.ContactKind, bool) {
	tagA, _ := contact.GetFixtureA().GetBody().GetUserData().(string)
	tagB, _ := contact.GetFixtureB().GetBody().GetUserData().(string)

	switch {
	case tagA == groundTag && isSegment(tagB):
		return tagB, physics.Ground, true
	case tagB == groundTag && isSegment(tagA):
		return tagA, physics.Ground, true
	case tagA == targetTag && isSegment(tagB):
		return tagB, physics.TargetTrigger, true
	case tagB == targetTag && isSegment(tagA):
		return tagA, physics.TargetTrigger, true
	}
	return "", physics.Ground, false
}

func isSegment(tag string) bool {
	return tag != "" && tag != groundTag && tag != targetTag
}

func (c *contactDetector) BeginContact(contact box2d.B2ContactInterface) {
	if c.world.listener == nil {
		return
	}
	if name, kind, ok := classify(contact); ok {
		c.world.listener.BeginContact(name, kind)
	}
}

func (c *contactDetector) EndContact(contact box2d.B2ContactInterface) {
	if c.world.listener == nil {
		return
	}
	if name, kind, ok := classify(contact); ok {
		c.world.listener.EndContact(name, kind)
	}
}

func (c *contactDetector) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {
}

func (c *contactDetector) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

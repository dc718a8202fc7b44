package component

// Body marks an entity as physics-driven and carries its material
// parameters. The physics system mirrors Transform+Velocity+Collider
// into the physics world for entities that also have a Body.
type Body struct {
	// GravityScale multiplies world gravity; 0 floats, 1 falls normally
	GravityScale float64

	// Restitution is bounce energy retention in [0,1]; 0 kills the
	// velocity component along the contact normal
	Restitution float64

	// Friction is per-second horizontal damping while grounded
	Friction float64

	// Static bodies never move and ignore gravity (platforms, walls)
	Static bool

	// OnGround is rewritten every step from contact normals; true only
	// while a contact from below supports the body
	OnGround bool
}

package core

// ObstacleRole tells the upper half of an obstacle pair from the lower one.
type ObstacleRole int

const (
	RoleTop ObstacleRole = iota
	RoleBottom
)

// String returns the role name.
func (r ObstacleRole) String() string {
	if r == RoleTop {
		return "top"
	}
	return "bottom"
}

// ObstacleView is the read-only shape of one obstacle half.
type ObstacleView struct {
	Rect Rect
	Role ObstacleRole
}

// PilotView is everything an autopilot may look at when deciding to flap.
// Obstacles are ordered oldest (leftmost) first.
type PilotView struct {
	Avatar      Rect
	VelocityY   float64
	Obstacles   []ObstacleView
	FieldHeight float64
	GroundY     float64
	Score       float64
}

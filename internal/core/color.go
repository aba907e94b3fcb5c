package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	// Playfield colors. Renderers may give these a background as well.
	ColorLane1
	ColorLane2
	ColorPipeTop
	ColorPipeBottom
	ColorGroundTop
	ColorGround
	ColorBanner
)

// LaneColor returns the avatar and HUD color of a lane.
func LaneColor(lane LaneID) Color {
	if lane == Lane2 {
		return ColorLane2
	}
	return ColorLane1
}

// RoleColor returns the color of an obstacle half.
func RoleColor(role ObstacleRole) Color {
	if role == RoleTop {
		return ColorPipeTop
	}
	return ColorPipeBottom
}

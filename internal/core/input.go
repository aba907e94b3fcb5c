package core

// LaneID identifies one of the two play columns.
type LaneID int

const (
	Lane1 LaneID = iota // Left lane, always present
	Lane2               // Right lane, hidden in single player

	// LaneBoth addresses both lanes at once (ToggleAI only).
	LaneBoth LaneID = -1
)

// LaneCount is the fixed number of lanes.
const LaneCount = 2

// String returns a human-readable name for the lane.
func (l LaneID) String() string {
	switch l {
	case Lane1:
		return "lane1"
	case Lane2:
		return "lane2"
	case LaneBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Valid reports whether l addresses a single existing lane.
func (l LaneID) Valid() bool {
	return l == Lane1 || l == Lane2
}

// IntentKind represents a decoded player intent, abstracted from physical
// keys and gamepad buttons.
type IntentKind int

const (
	IntentNone         IntentKind = iota
	IntentFlap                    // Flap the avatar of a lane
	IntentNavigateUp              // Move menu highlight up
	IntentNavigateDown            // Move menu highlight down
	IntentSelect                  // Confirm menu item, or request restart while playing
	IntentCancel                  // Leave the leaderboard or countdown, or return to title
	IntentToggleMenu              // Return to the title screen from a lane's controller
	IntentToggleAI                // Toggle autopilot for a lane or both
)

// String returns a human-readable name for the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentFlap:
		return "Flap"
	case IntentNavigateUp:
		return "NavigateUp"
	case IntentNavigateDown:
		return "NavigateDown"
	case IntentSelect:
		return "Select"
	case IntentCancel:
		return "Cancel"
	case IntentToggleMenu:
		return "ToggleMenu"
	case IntentToggleAI:
		return "ToggleAI"
	default:
		return "Unknown"
	}
}

// Intent is a single decoded input event addressed to the session.
// Lane is meaningful only for Flap, ToggleMenu and ToggleAI.
type Intent struct {
	Kind IntentKind
	Lane LaneID
}

// Flap returns a flap intent for the given lane.
func Flap(lane LaneID) Intent {
	return Intent{Kind: IntentFlap, Lane: lane}
}

// NavigateUp returns a menu-up intent.
func NavigateUp() Intent { return Intent{Kind: IntentNavigateUp} }

// NavigateDown returns a menu-down intent.
func NavigateDown() Intent { return Intent{Kind: IntentNavigateDown} }

// Select returns a select intent.
func Select() Intent { return Intent{Kind: IntentSelect} }

// Cancel returns a cancel intent.
func Cancel() Intent { return Intent{Kind: IntentCancel} }

// ToggleMenu returns a return-to-menu intent issued from a lane's controller.
func ToggleMenu(lane LaneID) Intent {
	return Intent{Kind: IntentToggleMenu, Lane: lane}
}

// ToggleAI returns an autopilot toggle intent. Use LaneBoth for both lanes.
func ToggleAI(lane LaneID) Intent {
	return Intent{Kind: IntentToggleAI, Lane: lane}
}

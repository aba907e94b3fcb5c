package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flapduel/internal/config"
	"github.com/vovakirdan/flapduel/internal/core"
)

// EventKind identifies a timed random event.
type EventKind int

const (
	EventNone EventKind = iota
	EventBonusRound
	EventSpeedBoost
	EventGravityShift
	EventScoreMultiplier
	EventShieldMode
	EventBossFight
)

var eventKeys = map[string]EventKind{
	"bonus_round":      EventBonusRound,
	"speed_boost":      EventSpeedBoost,
	"gravity_shift":    EventGravityShift,
	"score_multiplier": EventScoreMultiplier,
	"shield_mode":      EventShieldMode,
	"boss_fight":       EventBossFight,
}

// ParseEventKind maps a configuration key such as "shield_mode" to its kind.
func ParseEventKind(key string) (EventKind, error) {
	k, ok := eventKeys[key]
	if !ok {
		return EventNone, fmt.Errorf("unknown event kind %q", key)
	}
	return k, nil
}

// String returns the banner title of the event.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "NONE"
	case EventBonusRound:
		return "BONUS ROUND"
	case EventSpeedBoost:
		return "SPEED BOOST"
	case EventGravityShift:
		return "GRAVITY SHIFT"
	case EventScoreMultiplier:
		return "SCORE MULTIPLIER"
	case EventShieldMode:
		return "SHIELD MODE"
	case EventBossFight:
		return "BOSS FIGHT"
	default:
		return "UNKNOWN"
	}
}

// Description returns the one-line explanation shown under the banner
// while the event is active.
func (k EventKind) Description() string {
	switch k {
	case EventBonusRound:
		return "Wider gaps for easier passage!"
	case EventSpeedBoost:
		return "Pipes move faster!"
	case EventGravityShift:
		return "Reduced gravity!"
	case EventScoreMultiplier:
		return "Double points!"
	case EventShieldMode:
		return "Temporary invincibility!"
	case EventBossFight:
		return "Faster and denser pipes!"
	default:
		return ""
	}
}

// EventRecord is the per-lane state of the event engine.
// Snapshot holds the parameters captured at activation.
type EventRecord struct {
	Active   bool
	Kind     EventKind
	Elapsed  int // Ticks since activation
	Duration int // Ticks
	Snapshot Params
}

// Remaining returns the ticks left before the event expires.
func (r EventRecord) Remaining() int {
	if !r.Active {
		return 0
	}
	return max(r.Duration-r.Elapsed, 0)
}

type eventEntry struct {
	kind     EventKind
	weight   float64
	duration int
}

// EventEngine drives one lane's Idle -> Active -> Idle event cycle.
type EventEngine struct {
	cfg         config.EventsConfig
	table       []eventEntry
	totalWeight float64
	fieldHeight float64
	rng         core.Rand
	rec         EventRecord
}

// NewEventEngine builds the weighted kind table from configuration.
func NewEventEngine(cfg config.EventsConfig, fieldHeight float64, rng core.Rand) (*EventEngine, error) {
	e := &EventEngine{
		cfg:         cfg,
		fieldHeight: fieldHeight,
		rng:         rng,
	}
	for _, kc := range cfg.Kinds {
		kind, err := ParseEventKind(kc.Kind)
		if err != nil {
			return nil, fmt.Errorf("events: %w", err)
		}
		e.table = append(e.table, eventEntry{kind: kind, weight: kc.Weight, duration: kc.Duration})
		e.totalWeight += kc.Weight
	}
	return e, nil
}

// Record returns a copy of the current event record.
func (e *EventEngine) Record() EventRecord {
	return e.rec
}

// Active reports whether an event is running.
func (e *EventEngine) Active() bool {
	return e.rec.Active
}

// Shielded reports whether collisions are currently ignored.
func (e *EventEngine) Shielded() bool {
	return e.rec.Active && e.rec.Kind == EventShieldMode
}

// Multiplier returns the factor applied to every passage score.
func (e *EventEngine) Multiplier() float64 {
	if e.rec.Active && e.rec.Kind == EventScoreMultiplier {
		return 2
	}
	return 1
}

// Reset clears the record without touching physics.
func (e *EventEngine) Reset() {
	e.rec = EventRecord{}
}

// MaybeActivate rolls for a new event. Nothing happens while disabled,
// while an event is active, or below the minimum score.
func (e *EventEngine) MaybeActivate(score float64, p *Physics) (EventKind, bool) {
	if !e.cfg.Enabled || e.rec.Active || score < e.cfg.MinScore || len(e.table) == 0 {
		return EventNone, false
	}
	chance := e.cfg.BaseChance + math.Min(score*e.cfg.ScoreChance, e.cfg.MaxScoreBonus)
	if e.rng.Float64() >= chance {
		return EventNone, false
	}
	entry := e.draw()
	e.activate(entry, p)
	return entry.kind, true
}

// Activate starts the given kind immediately. Unknown or disabled kinds are
// ignored.
func (e *EventEngine) Activate(kind EventKind, p *Physics) bool {
	if e.rec.Active {
		return false
	}
	for _, entry := range e.table {
		if entry.kind == kind {
			e.activate(entry, p)
			return true
		}
	}
	return false
}

// draw picks a kind with probability proportional to its weight. Rounding
// leftovers fall through to the last kind in the table.
func (e *EventEngine) draw() eventEntry {
	r := e.rng.Float64() * e.totalWeight
	for _, entry := range e.table {
		r -= entry.weight
		if r <= 0 {
			return entry
		}
	}
	return e.table[len(e.table)-1]
}

func (e *EventEngine) activate(entry eventEntry, p *Physics) {
	e.rec = EventRecord{
		Active:   true,
		Kind:     entry.kind,
		Duration: entry.duration,
		Snapshot: p.Current,
	}

	switch entry.kind {
	case EventBonusRound:
		p.Current.GapSize = e.fieldHeight / e.cfg.BonusGapDivisor
	case EventSpeedBoost:
		p.Current.ScrollSpeed = p.Base.ScrollSpeed * e.cfg.SpeedBoost
	case EventGravityShift:
		p.Current.Gravity = e.cfg.LowGravity
	case EventBossFight:
		p.Current.ScrollSpeed = p.Base.ScrollSpeed * e.cfg.BossSpeed
		p.Current.SpawnIntervalMs = p.Base.SpawnIntervalMs * e.cfg.BossInterval
	case EventScoreMultiplier, EventShieldMode:
		// Consumed through Multiplier and Shielded
	}
}

// Tick advances an active event by one frame. On expiry the snapshot's
// scroll speed, gravity and spawn interval are restored verbatim while the
// gap base returns to its configured base, and the expired kind is returned.
func (e *EventEngine) Tick(p *Physics) (EventKind, bool) {
	if !e.rec.Active {
		return EventNone, false
	}
	e.rec.Elapsed++
	if e.rec.Elapsed < e.rec.Duration {
		return EventNone, false
	}

	kind := e.rec.Kind
	p.Current.ScrollSpeed = e.rec.Snapshot.ScrollSpeed
	p.Current.Gravity = e.rec.Snapshot.Gravity
	p.Current.SpawnIntervalMs = e.rec.Snapshot.SpawnIntervalMs
	p.Current.GapSize = p.Base.GapSize
	e.rec = EventRecord{}
	return kind, true
}

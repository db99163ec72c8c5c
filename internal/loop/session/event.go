package session

import "github.com/tomz197/eggcatch/internal/object"

// EventType identifies what happened during a tick or a command.
type EventType int

const (
	EventSpawned     EventType = iota // A new egg appeared
	EventCaught                       // An egg was caught
	EventMissed                       // An egg fell below the lower bound
	EventLifeLost                     // A miss cost a life
	EventLifeGained                   // A catch streak regenerated a life
	EventRateChanged                  // The spawn period was rescheduled
	EventGameOver                     // The session ended
)

// String returns a short name for logging.
func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventCaught:
		return "caught"
	case EventMissed:
		return "missed"
	case EventLifeLost:
		return "life_lost"
	case EventLifeGained:
		return "life_gained"
	case EventRateChanged:
		return "rate_changed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is queued for the rendering layer and drained with Session.Drain.
type Event struct {
	Type   EventType
	Egg    object.Egg // Egg involved (spawn, catch, miss)
	Lives  int        // Lives after the event
	Combo  int        // Combo after the event
	Score  int        // Score after the event
	Period float64    // Spawn period (EventRateChanged)
}

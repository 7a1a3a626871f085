// Package telemetry provides garden health tracking, milestones and CSV output.
package telemetry

import "github.com/google/uuid"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPlanted EventType = iota
	EventHarvested
	EventSeedsCollected
	EventCrossed
	EventCrossFailed
	EventPestOutbreak
	EventFrost
	EventSold
	EventCare
)

var eventNames = [...]string{
	"planted", "harvested", "seeds_collected", "crossed", "cross_failed",
	"pest_outbreak", "frost", "sold", "care",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Time    float64 // game time
	PlantID uuid.UUID
	Strain  string

	// Optional fields depending on event type
	Amount float64 // grams harvested, seeds produced, money earned, pest increase
}

// NewPlantedEvent creates a planting event.
func NewPlantedEvent(time float64, id uuid.UUID, strain string) Event {
	return Event{Type: EventPlanted, Time: time, PlantID: id, Strain: strain}
}

// NewHarvestedEvent creates a harvest event. grams is 0 for males.
func NewHarvestedEvent(time float64, id uuid.UUID, strain string, grams float64) Event {
	return Event{Type: EventHarvested, Time: time, PlantID: id, Strain: strain, Amount: grams}
}

// NewSeedsEvent creates a seed collection event.
func NewSeedsEvent(time float64, strain string, count int) Event {
	return Event{Type: EventSeedsCollected, Time: time, Strain: strain, Amount: float64(count)}
}

// NewCrossEvent creates a breeding event. strain is empty on failure.
func NewCrossEvent(time float64, strain string, ok bool) Event {
	if !ok {
		return Event{Type: EventCrossFailed, Time: time}
	}
	return Event{Type: EventCrossed, Time: time, Strain: strain}
}

// NewPestEvent creates a pest outbreak event.
func NewPestEvent(time float64, id uuid.UUID, increase float64) Event {
	return Event{Type: EventPestOutbreak, Time: time, PlantID: id, Amount: increase}
}

// NewFrostEvent creates a frost event.
func NewFrostEvent(time float64) Event {
	return Event{Type: EventFrost, Time: time}
}

// NewSoldEvent creates a sale event.
func NewSoldEvent(time float64, strain string, earned float64) Event {
	return Event{Type: EventSold, Time: time, Strain: strain, Amount: earned}
}

// NewCareEvent creates a care action event.
func NewCareEvent(time float64, id uuid.UUID) Event {
	return Event{Type: EventCare, Time: time, PlantID: id}
}

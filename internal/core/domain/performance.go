package domain

import (
	"fmt"
	"slices"
	"time"
)

// Performance holds accumulated metrics, goals and tracking configuration.
// Metrics are only ever changed by RecordEvent and Recompute.
type Performance struct {
	Metrics  Metrics  `json:"metrics" bson:"metrics"`
	Goals    Goals    `json:"goals" bson:"goals"`
	Tracking Tracking `json:"tracking" bson:"tracking"`
}

type Metrics struct {
	Reach       int64   `json:"reach" bson:"reach"`
	Impressions int64   `json:"impressions" bson:"impressions"`
	Clicks      int64   `json:"clicks" bson:"clicks"`
	Conversions int64   `json:"conversions" bson:"conversions"`
	Engagement  int64   `json:"engagement" bson:"engagement"`
	CTR         float64 `json:"ctr" bson:"ctr"`
	CPC         float64 `json:"cpc" bson:"cpc"`
	ROAS        float64 `json:"roas" bson:"roas"`
}

// Goals is the target the team is working toward. When Unit names a
// metric, Current follows that metric.
type Goals struct {
	Target  float64 `json:"target" bson:"target" validate:"gte=0"`
	Current float64 `json:"current" bson:"current"`
	Unit    string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

type Tracking struct {
	PixelID          string        `json:"pixelId,omitempty" bson:"pixelId,omitempty"`
	ConversionEvents []string      `json:"conversionEvents" bson:"conversionEvents"`
	CustomEvents     []CustomEvent `json:"customEvents" bson:"customEvents"`
}

// CustomEvent is one recorded batch of identical custom events. Value is
// per event; Count of zero reads as one.
type CustomEvent struct {
	Name      string    `json:"name" bson:"name"`
	Value     float64   `json:"value" bson:"value"`
	Count     int64     `json:"count" bson:"count"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

func (e CustomEvent) weight() float64 {
	if e.Count <= 0 {
		return 1
	}
	return float64(e.Count)
}

// RevenueEvent is the custom event name whose values count as revenue.
const RevenueEvent = "revenue"

// EventType names a raw interaction fed into the aggregator.
type EventType string

const (
	EventImpression EventType = "impression"
	EventClick      EventType = "click"
	EventConversion EventType = "conversion"
	EventReach      EventType = "reach"
	EventEngagement EventType = "engagement"
	EventCustom     EventType = "custom"
)

// Event is one (or Count identical) interactions to accumulate.
type Event struct {
	Type      EventType `json:"type" validate:"required,oneof=impression click conversion reach engagement custom"`
	Count     int64     `json:"count" validate:"gte=0"`
	Name      string    `json:"name" validate:"required_if=Type custom,max=100"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordEvent accumulates e into the campaign metrics and refreshes the
// derived ratios. Any volume is accepted; only the event shape is checked.
func RecordEvent(c *Campaign, e Event, now time.Time) error {
	if err := Validate(e); err != nil {
		return err
	}
	n := e.Count
	if n == 0 {
		n = 1
	}
	m := &c.Performance.Metrics
	switch e.Type {
	case EventImpression:
		m.Impressions += n
	case EventClick:
		m.Clicks += n
	case EventConversion:
		m.Conversions += n
	case EventReach:
		m.Reach += n
	case EventEngagement:
		m.Engagement += n
	case EventCustom:
		ts := e.Timestamp
		if ts.IsZero() {
			ts = now
		}
		c.Performance.Tracking.CustomEvents = append(c.Performance.Tracking.CustomEvents,
			CustomEvent{Name: e.Name, Value: e.Value, Count: n, Timestamp: ts.UTC()})
		if slices.Contains(c.Performance.Tracking.ConversionEvents, e.Name) {
			m.Conversions += n
		}
	default:
		return validationError("type", fmt.Sprintf("unknown event type %q", e.Type))
	}
	recomputeMetrics(c)
	return nil
}

// Revenue sums the values of all revenue custom events.
func (p Performance) Revenue() float64 {
	var total float64
	for _, e := range p.Tracking.CustomEvents {
		if e.Name == RevenueEvent {
			total += e.Value * e.weight()
		}
	}
	return total
}

func recomputeMetrics(c *Campaign) {
	m := &c.Performance.Metrics
	spend := float64(c.Budget.Spent)
	m.CTR = ratio(float64(m.Clicks), float64(m.Impressions))
	m.CPC = ratio(spend, float64(m.Clicks))
	m.ROAS = ratio(c.Performance.Revenue(), spend)

	g := &c.Performance.Goals
	switch g.Unit {
	case "reach":
		g.Current = float64(m.Reach)
	case "impressions":
		g.Current = float64(m.Impressions)
	case "clicks":
		g.Current = float64(m.Clicks)
	case "conversions":
		g.Current = float64(m.Conversions)
	case "engagement":
		g.Current = float64(m.Engagement)
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

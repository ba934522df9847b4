package fiber

import (
	"time"

	"calq-destination-service/internal/events/core/domain"
)

// EventRequest represents a canonical analytics event
// @Description Canonical event (track, identify, alias, page or screen)
type EventRequest struct {
	UserID      string         `json:"userId" example:"user_123"`
	AnonymousID string         `json:"anonymousId" example:"507f191e810c19729de860ea"`
	Timestamp   *time.Time     `json:"timestamp"`
	Channel     string         `json:"channel" example:"server"`
	Event       string         `json:"event" example:"Completed Order"`
	Name        string         `json:"name" example:"Home"`
	Category    string         `json:"category" example:"Docs"`
	PreviousID  string         `json:"previousId"`
	Properties  map[string]any `json:"properties"`
	Traits      map[string]any `json:"traits"`
	Context     EventContext   `json:"context"`
}

type EventContext struct {
	IP        string           `json:"ip" example:"8.8.8.8"`
	UserAgent string           `json:"userAgent"`
	Screen    *ScreenContext   `json:"screen"`
	Campaign  *CampaignContext `json:"campaign"`
}

type ScreenContext struct {
	Width  any `json:"width" swaggertype:"number"`
	Height any `json:"height" swaggertype:"number"`
}

type CampaignContext struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Medium  string `json:"medium"`
	Content string `json:"content"`
	Term    string `json:"term"`
}

type DispatchResponse struct {
	Status            string `json:"status" example:"delivered"`
	DestinationStatus int    `json:"destination_status,omitempty" example:"200"`
}

type ErrorResponse struct {
	Error             string `json:"error" example:"destination_rejected"`
	Message           string `json:"message,omitempty" example:"cannot POST /transfer (400)"`
	DestinationStatus int    `json:"destination_status,omitempty" example:"400"`
}

func (r *EventRequest) toDomain(typ domain.EventType) *domain.Event {
	e := &domain.Event{
		Type:        typ,
		UserID:      r.UserID,
		AnonymousID: r.AnonymousID,
		Channel:     r.Channel,
		Event:       r.Event,
		Name:        r.Name,
		Category:    r.Category,
		PreviousID:  r.PreviousID,
		Properties:  r.Properties,
		Traits:      r.Traits,
		Context: domain.Context{
			IP:        r.Context.IP,
			UserAgent: r.Context.UserAgent,
		},
	}
	// Events without a timestamp are stamped on receipt.
	if r.Timestamp != nil {
		e.Timestamp = *r.Timestamp
	} else {
		e.Timestamp = time.Now().UTC()
	}
	if s := r.Context.Screen; s != nil {
		e.Context.Screen = &domain.Screen{Width: s.Width, Height: s.Height}
	}
	if c := r.Context.Campaign; c != nil {
		e.Context.Campaign = &domain.Campaign{
			Name:    c.Name,
			Source:  c.Source,
			Medium:  c.Medium,
			Content: c.Content,
			Term:    c.Term,
		}
	}
	return e
}

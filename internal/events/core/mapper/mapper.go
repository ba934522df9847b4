// Package mapper turns canonical events into Calq HTTP API payloads.
//
// Every transform is pure: it never mutates the event it is given and never
// fails. Absent optional data simply produces omitted keys.
package mapper

import (
	"time"

	"calq-destination-service/internal/events/core/domain"
)

const (
	pageViewAction   = "Page View"
	screenViewAction = "Screen View"

	// Same shape as JavaScript's Date.prototype.toISOString.
	isoTimestampLayout = "2006-01-02T15:04:05.000Z"
)

type Mapper struct {
	settings domain.Settings
}

func New(settings domain.Settings) *Mapper {
	return &Mapper{settings: settings}
}

// Track maps a track call to a Calq action.
func (m *Mapper) Track(e *domain.Event) domain.Payload {
	return m.action(e, e.Event, properties(e))
}

// Page maps a page call. Calq has no page concept, so it becomes a
// "Page View" action with view properties attached.
func (m *Mapper) Page(e *domain.Event) domain.Payload {
	props := properties(e)
	// An uncategorized page clears any category property.
	props["category"] = e.Category
	props["$view_name"] = e.Name
	props["$view_url"] = props["url"]
	delete(props, "name")
	delete(props, "url")

	return m.action(e, pageViewAction, props)
}

// Screen maps a screen call to a "Screen View" action.
func (m *Mapper) Screen(e *domain.Event) domain.Payload {
	props := properties(e)
	props["$view_name"] = e.Name
	delete(props, "name")

	return m.action(e, screenViewAction, props)
}

// Identify maps an identify call to a Calq profile update. Only allow-listed
// traits are forwarded.
func (m *Mapper) Identify(e *domain.Event) domain.Payload {
	return domain.Reject(domain.Payload{
		"actor":      e.Actor(),
		"properties": traits(e.Traits),
		"write_key":  m.settings.WriteKey,
		"timestamp":  isoTimestamp(e.Timestamp),
	})
}

// Alias maps an alias call to a Calq transfer.
func (m *Mapper) Alias(e *domain.Event) domain.Payload {
	return domain.Reject(domain.Payload{
		"old_actor": e.PreviousID,
		"new_actor": e.UserID,
		"write_key": m.settings.WriteKey,
		"timestamp": isoTimestamp(e.Timestamp),
	})
}

func (m *Mapper) action(e *domain.Event, name string, props map[string]any) domain.Payload {
	return domain.Reject(domain.Payload{
		"timestamp":   isoTimestamp(e.Timestamp),
		"actor":       e.Actor(),
		"properties":  domain.Reject(props),
		"write_key":   m.settings.WriteKey,
		"action_name": name,
		"ip_address":  e.Context.IP,
	})
}

func isoTimestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(isoTimestampLayout)
}

package events

import "context"

// On registers a handler for one concrete event type E.
//
//	events.On(bus, "welcome", events.Async, func(ctx context.Context, e events.PersonCreated) error {...})
func On[E DomainEvent](s Subscriber, name string, mode Mode, handle func(ctx context.Context, event E) error) {
	var zero E
	s.SubscribeType(zero.EventType(), name, mode, func(ctx context.Context, event DomainEvent) error {
		typed, ok := event.(E)
		if !ok {
			return nil
		}
		return handle(ctx, typed)
	})
}

// OnPerson registers a handler for every person event.
func OnPerson(s Subscriber, name string, mode Mode, handle func(ctx context.Context, event PersonEvent) error) {
	s.SubscribeFamily(FamilyPerson, name, mode, func(ctx context.Context, event DomainEvent) error {
		if typed, ok := event.(PersonEvent); ok {
			return handle(ctx, typed)
		}
		return nil
	})
}

// OnOrganization registers a handler for every organization event.
func OnOrganization(s Subscriber, name string, mode Mode, handle func(ctx context.Context, event OrganizationEvent) error) {
	s.SubscribeFamily(FamilyOrganization, name, mode, func(ctx context.Context, event DomainEvent) error {
		if typed, ok := event.(OrganizationEvent); ok {
			return handle(ctx, typed)
		}
		return nil
	})
}

// OnSystem registers a handler for every system event.
func OnSystem(s Subscriber, name string, mode Mode, handle func(ctx context.Context, event SystemEvent) error) {
	s.SubscribeFamily(FamilySystem, name, mode, func(ctx context.Context, event DomainEvent) error {
		if typed, ok := event.(SystemEvent); ok {
			return handle(ctx, typed)
		}
		return nil
	})
}

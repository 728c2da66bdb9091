// Package listener holds the subscribers of the domain event bus. Register
// wires them once at startup. Listeners react to events and never publish.
package listener

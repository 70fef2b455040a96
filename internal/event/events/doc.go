// Package events declares the event topic catalog and payload types
// published on the docnav bus.
//
// Hosts embedding the engine publish these events from their editor loop;
// the navigation tracker consumes them through app subscriptions. Payloads
// are plain data with no behavior so any host can construct them.
package events

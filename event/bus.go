// Copyright (C) 2019 gyee authors
//
// This file is part of the gyee library.
//
// The gyee library is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gyee library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the gyee library.  If not, see <http://www.gnu.org/licenses/>.

package event

import (
	evbus "github.com/asaskevich/EventBus"
)

// Bus delivers events to subscribers synchronously. Every event is published
// on its own topic and on TopicAll.
type Bus struct {
	bus evbus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

func (b *Bus) Emit(ev Event) {
	b.bus.Publish(ev.Topic(), ev)
	b.bus.Publish(TopicAll, ev)
}

// Subscribe registers fn for a topic; fn must accept the concrete event type.
func (b *Bus) Subscribe(topic string, fn interface{}) error {
	return b.bus.Subscribe(topic, fn)
}

// SubscribeAll registers fn for every event.
func (b *Bus) SubscribeAll(fn func(Event)) error {
	return b.bus.Subscribe(TopicAll, fn)
}

func (b *Bus) Unsubscribe(topic string, fn interface{}) error {
	return b.bus.Unsubscribe(topic, fn)
}

// Recorder keeps emitted events in order, for inspection.
type Recorder struct {
	events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []Event {
	return r.events
}

func (r *Recorder) Has(ev Event) bool {
	for _, e := range r.events {
		if e == ev {
			return true
		}
	}
	return false
}

func (r *Recorder) Reset() {
	r.events = nil
}

package lsh

import (
	cm "github.com/gasparian/lsh-index-go/common"
)

// NopObserver drops all notifications
type NopObserver struct{}

// OnCollision does nothing
func (NopObserver) OnCollision(Collision) {}

// OnHit does nothing
func (NopObserver) OnHit(Hit) {}

// LogObserver writes collisions to the info logger
type LogObserver struct {
	Logger *cm.Logger
}

// OnCollision logs the table, the signature prefix and the new bucket size
func (o LogObserver) OnCollision(c Collision) {
	o.Logger.Info.Printf("Collision in table %v: bucket %v... now holds %v ids", c.Table, c.Prefix, c.Size)
}

// OnHit logs the table and the number of candidates found in the matched bucket
func (o LogObserver) OnHit(h Hit) {
	o.Logger.Info.Printf("Table %v hit: %v candidates", h.Table, h.Candidates)
}

// MultiObserver sends every notification to all of its observers
type MultiObserver []CollisionObserver

// OnCollision notifies observers in order
func (m MultiObserver) OnCollision(c Collision) {
	for _, o := range m {
		o.OnCollision(c)
	}
}

// OnHit notifies observers which are interested in hits
func (m MultiObserver) OnHit(h Hit) {
	for _, o := range m {
		if hitObserver, ok := o.(HitObserver); ok {
			hitObserver.OnHit(h)
		}
	}
}

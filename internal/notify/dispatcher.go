package notify

import (
	"context"
	"log"
	"sync"
)

// Notifier is what the lifecycle services see: hand over events after a
// successful save and move on. Nothing about delivery comes back.
type Notifier interface {
	Dispatch(events ...Event)
}

// Dispatcher fans events out to the hub, Slack and email on a small
// worker pool. Notifications are not transactional with the state
// write: a full queue drops the event rather than block a request.
type Dispatcher struct {
	hub    Sink
	slack  *SlackClient
	mailer *Mailer

	events chan Event
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

var _ Notifier = (*Dispatcher)(nil)

func NewDispatcher(hub Sink, slack *SlackClient, mailer *Mailer, workers, queue int) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		hub:    hub,
		slack:  slack,
		mailer: mailer,
		events: make(chan Event, queue),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.events:
			d.deliver(ev)
		case <-d.ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	for _, msg := range ev.Live {
		if d.hub == nil {
			break
		}
		if msg.User == 0 {
			d.hub.Broadcast(msg.Group, msg.Data)
		} else {
			d.hub.Publish(msg.User, msg.Group, msg.Data)
		}
	}

	if ev.Slack != nil {
		d.slack.Post(ev.Slack)
	}

	if ev.Email != nil {
		d.mailer.Send(ev.Email)
	}
}

// Dispatch queues events without blocking the caller.
func (d *Dispatcher) Dispatch(events ...Event) {
	for _, ev := range events {
		select {
		case d.events <- ev:
		default:
			log.Printf("[notify] queue full, dropping event %q", ev.Name)
		}
	}
}

func (d *Dispatcher) Stop() {
	d.cancel()
	d.wg.Wait()
}

package service

import (
	"sync"

	"github.com/getartha/ledgerhub/rabbitmq"
	"github.com/labstack/gommon/random"
)

// Pubsub fans journal events out to in-process subscribers (currently only
// the rabbitmq publisher routine). Publication must never block a request
// that already committed its transaction, so slow subscribers drop events.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan rabbitmq.Envelope
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan rabbitmq.Envelope)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan rabbitmq.Envelope) (subId string, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan rabbitmq.Envelope)
	}
	subId = random.String(16)
	ps.subs[topic][subId] = ch
	return subId, nil
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

// Publish delivers msg to every subscriber of topic. The send is
// non-blocking: a subscriber that cannot keep up loses the event.
func (ps *Pubsub) Publish(topic string, msg rabbitmq.Envelope) (dropped int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return 0
	}

	for _, ch := range ps.subs[topic] {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	return dropped
}

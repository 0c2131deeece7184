package store

import "sync"

// Op enumerates the change event types delivered by the [Notifier].
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one mutation of the songs table.
//
// Consumers treat a Change as a dirty signal and reload the full queue; the
// payload is never applied to local state directly.
type Change struct {
	Op     Op     `json:"op"`
	RoomID string `json:"room_id"`
	SongID string `json:"song_id"`
}

// subscriber channels are buffered; a full buffer drops the change rather than
// blocking the writer, which is safe because consumers reload full state.
const subscriberBuffer = 16

type subscription struct {
	roomID string
	ch     chan Change
}

// Notifier fans change events out to room-scoped subscribers.
//
// Subscriptions filter on room ID equality and receive all event types.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]*subscription
	next int
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscription)}
}

// Subscribe registers interest in changes for one room.
//
// Returns the delivery channel and a cancel function. Cancel is idempotent and
// closes the channel, ending any range loop over it.
func (n *Notifier) Subscribe(roomID string) (<-chan Change, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++

	sub := &subscription{roomID: roomID, ch: make(chan Change, subscriberBuffer)}
	n.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}

// Publish delivers a change to every subscriber of the matching room.
//
// Delivery never blocks: a subscriber whose buffer is full misses this change
// and catches up on its next reload.
func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if sub.roomID != c.RoomID {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions are active for a room.
func (n *Notifier) SubscriberCount(roomID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := 0
	for _, sub := range n.subs {
		if sub.roomID == roomID {
			count++
		}
	}
	return count
}

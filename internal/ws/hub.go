package ws

import (
	"github.com/sirupsen/logrus"
)

type envelope struct {
	userID  int64
	message []byte
}

type membership struct {
	client *Client
	join   bool
}

// Hub owns the set of connected clients, keyed by user id. All map access
// happens on the Run goroutine. Joins and leaves share one channel so a
// client's Unregister is never handled before its Register.
type Hub struct {
	clients    map[int64]map[*Client]struct{}
	membership chan membership
	send       chan envelope
	stop       chan struct{}
	log        logrus.FieldLogger

	count chan chan int
}

func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		membership: make(chan membership, 256),
		send:       make(chan envelope, 1024),
		stop:       make(chan struct{}),
		count:      make(chan chan int),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = map[int64]map[*Client]struct{}{}
			return

		case m := <-h.membership:
			if m.join {
				h.add(m.client)
			} else {
				h.drop(m.client)
			}

		case env := <-h.send:
			for c := range h.clients[env.userID] {
				select {
				case c.send <- env.message:
				default:
					h.log.WithFields(logrus.Fields{"user_id": c.userID, "conn_id": c.id}).Warn("ws client too slow, disconnecting")
					h.drop(c)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) add(c *Client) {
	if c == nil {
		return
	}
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.log.WithFields(logrus.Fields{"user_id": c.userID, "conn_id": c.id}).Debug("ws connected")
}

func (h *Hub) drop(c *Client) {
	if c == nil {
		return
	}
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	h.log.WithFields(logrus.Fields{"user_id": c.userID, "conn_id": c.id}).Debug("ws disconnected")
}

func (h *Hub) Stop() {
	if h == nil {
		return
	}
	close(h.stop)
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	h.membership <- membership{client: c, join: true}
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	h.membership <- membership{client: c}
}

// SendTo queues a message for every connection of the user. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) SendTo(userID int64, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- envelope{userID: userID, message: message}:
	default:
		h.log.WithField("user_id", userID).Warn("ws send dropped, queue full")
	}
}

// ClientCount must not be called after Stop.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	reply := make(chan int, 1)
	h.count <- reply
	return <-reply
}

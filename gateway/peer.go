package gateway

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Frame is the wire envelope for both directions of the socket channel.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Peer serializes all writes to one connection behind a mutex so
// broadcasts from different goroutines never interleave mid-frame.
type Peer struct {
	id  string
	mu  sync.Mutex
	enc *json.Encoder
}

func NewPeer(w io.Writer) *Peer {
	return &Peer{id: uuid.NewString(), enc: json.NewEncoder(w)}
}

func (p *Peer) ID() string {
	return p.id
}

func (p *Peer) Send(eventName string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(Frame{Event: eventName, Data: payload})
}

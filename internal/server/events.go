package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Event is emitted for every simulation the server runs.
type Event struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	Compute       string    `json:"compute,omitempty"`
	Blob          string    `json:"blob,omitempty"`
	TokenPrice    float64   `json:"token_price"`
	Stake         float64   `json:"stake"`
	FinalNetUSD   float64   `json:"final_net_usd"`
	BreakEvenWeek int       `json:"break_even_week"`
}

// publishEvent assigns the next ID, stores ev in the ring buffer and
// fans it out to stream subscribers without blocking.
func (s *Server) publishEvent(ev Event) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	ev.ID = s.nextEventID
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	s.events = append(s.events, ev)
	if len(s.events) > s.opts.EventsBuffer {
		s.events = s.events[len(s.events)-s.opts.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

func (s *Server) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Server) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Server) handleEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, events)
}

func (s *Server) handleStream(c *gin.Context) {
	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Current status first so clients render something immediately.
	c.SSEvent("status", s.status())
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}

package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/portfolio/internal/scroll"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// scrollRequest is a measurement or command from the browser.
type scrollRequest struct {
	Type     string           `json:"type"` // "scroll", "resize" or "navigate"
	Viewport *scroll.Viewport `json:"viewport,omitempty"`
	Sections []scroll.Section `json:"sections,omitempty"`
	Section  string           `json:"section,omitempty"`
}

// scrollResponse is the server's answer.
type scrollResponse struct {
	Type    string        `json:"type"` // "state", "target" or "error"
	State   *scroll.State `json:"state,omitempty"`
	Section string        `json:"section,omitempty"`
	Top     *float64      `json:"top,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// socketHost is a scroll.Host fed by the measurements a browser sends.
type socketHost struct {
	mu        sync.Mutex
	viewport  scroll.Viewport
	sections  []scroll.Section
	listeners map[int]func()
	nextID    int
}

func newSocketHost() *socketHost {
	return &socketHost{listeners: make(map[int]func())}
}

func (h *socketHost) Viewport() scroll.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport
}

func (h *socketHost) Sections() []scroll.Section {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sections
}

func (h *socketHost) Subscribe(listener func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = listener
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// update records new measurements and fires the listeners. A nil sections
// slice keeps the previously reported offsets.
func (h *socketHost) update(v scroll.Viewport, sections []scroll.Section) {
	h.mu.Lock()
	h.viewport = v
	if sections != nil {
		h.sections = sections
	}
	listeners := make([]func(), 0, len(h.listeners))
	for _, l := range h.listeners {
		listeners = append(listeners, l)
	}
	h.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

func (h *socketHost) find(id string) (scroll.Section, bool) {
	for _, sec := range h.Sections() {
		if sec.ID == id {
			return sec, true
		}
	}
	return scroll.Section{}, false
}

// handleScrollSocket runs one scroll synchronizer per connection. The
// browser reports scroll and resize measurements; every one is answered
// with the derived state.
func (s *Server) handleScrollSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Scroll socket upgrade: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	host := newSocketHost()

	var writeErr error
	synchronizer := scroll.New(host, func(st scroll.State) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(scrollResponse{Type: "state", State: &st})
	})
	defer synchronizer.Dispose()

	for writeErr == nil {
		var req scrollRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Scroll socket %s read: %v", id, err)
			}
			return
		}

		switch req.Type {
		case "scroll", "resize":
			if req.Viewport == nil {
				writeErr = sendScrollError(conn, "viewport is required")
				continue
			}
			var sections []scroll.Section
			if req.Type == "resize" || req.Sections != nil {
				sections = req.Sections
				if sections == nil {
					sections = []scroll.Section{}
				}
			}
			host.update(*req.Viewport, sections)
		case "navigate":
			sec, ok := host.find(req.Section)
			if !ok {
				writeErr = sendScrollError(conn, "unknown section: "+req.Section)
				continue
			}
			top := scroll.Target(sec.OffsetTop)
			writeErr = conn.WriteJSON(scrollResponse{Type: "target", Section: sec.ID, Top: &top})
		default:
			writeErr = sendScrollError(conn, "unknown message type: "+req.Type)
		}
	}

	log.Printf("Scroll socket %s write: %v", id, writeErr)
}

func sendScrollError(conn *websocket.Conn, msg string) error {
	return conn.WriteJSON(scrollResponse{Type: "error", Error: msg})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"image/color"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"shootingrange/internal/events"
	"shootingrange/internal/metrics"
	"shootingrange/internal/rangegame"
	"shootingrange/internal/wshub"
)

type Server struct {
	Hub       *wshub.Hub
	Events    *events.Bus
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Tmpl      *template.Template
	FrameRate int
	Fill      color.RGBA
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.Tmpl.ExecuteTemplate(w, "index.html", nil); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering home page", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, s.Hub.Count())
}

// handleWS runs one shooting range for the lifetime of the connection. The
// page sends its window size to mount the engine and clicks to shoot; the
// engine streams frames back.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := &wshub.Client{
		SessionID: uuid.New().String(),
		Conn:      conn,
		Send:      make(chan []byte, 16),
	}
	s.Hub.Register(client)
	defer s.Hub.Unregister(client.SessionID)

	opts := []rangegame.Option{
		rangegame.WithFrameRate(s.FrameRate),
		rangegame.WithFill(s.Fill),
	}
	if s.Events != nil {
		opts = append(opts, rangegame.WithPublisher(s.Events, client.SessionID))
	}
	engine := rangegame.New(wshub.NewFrameSurface(client), opts...)
	// Runs before Unregister closes client.Send, so no frame is queued on a
	// closed channel.
	defer engine.Unmount()

	go client.WritePump(ctx)

	log.Printf("[WS] Session %s connected\n", client.SessionID)
	for {
		var msg wshub.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			logReadError(client.SessionID, err)
			return
		}

		switch msg.Type {
		case "resize":
			if engine.Mounted() {
				engine.Resize(msg.Width, msg.Height)
				continue
			}
			if err := engine.Mount(ctx, msg.Width, msg.Height); err != nil {
				log.Printf("[WS] Session %s mount: %v\n", client.SessionID, err)
			}
		case "click":
			x, y := rangegame.PointerToSurface(msg.X, msg.Y, msg.Left, msg.Top)
			engine.HandleClick(x, y)
			client.SendMessage(wshub.ServerMessage{Type: "score", Score: engine.Score()})
		default:
			log.Printf("[WS] Session %s sent unknown message type %q\n", client.SessionID, msg.Type)
		}
	}
}

func logReadError(sessionID string, err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Printf("[WS] Session %s disconnected\n", sessionID)
		return
	}
	if errors.Is(err, context.Canceled) {
		log.Printf("[WS] Session %s closed\n", sessionID)
		return
	}
	log.Printf("[WS] Session %s read error: %v\n", sessionID, err)
}

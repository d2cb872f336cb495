package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mapmysteps/location-backend-go/internal/daykey"
	"github.com/mapmysteps/location-backend-go/internal/middleware"
	"github.com/mapmysteps/location-backend-go/internal/models"
	"github.com/mapmysteps/location-backend-go/internal/service"
	"github.com/mapmysteps/location-backend-go/internal/watch"
	"github.com/mapmysteps/location-backend-go/pkg/response"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// watchMessage is one frame pushed to a watching client
type watchMessage struct {
	Type    string            `json:"type"` // "snapshot" or "entry"
	Day     string            `json:"day,omitempty"`
	Entries []models.LogEntry `json:"entries,omitempty"`
	Entry   *models.LogEntry  `json:"entry,omitempty"`
}

// WatchHandler streams a day bucket to the viewer over websocket: the
// current snapshot first, then every entry appended while the socket is up
type WatchHandler struct {
	viewerService *service.ViewerService
	hub           *watch.Hub
	upgrader      websocket.Upgrader
	logger        zerolog.Logger
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(viewerService *service.ViewerService, hub *watch.Hub) *WatchHandler {
	return &WatchHandler{
		viewerService: viewerService,
		hub:           hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is already open to any origin, same as the REST CORS policy
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.With().Str("module", "watch_handler").Logger(),
	}
}

// WatchDay handles GET /api/v1/locations/days/:date/watch
func (h *WatchHandler) WatchDay(c *gin.Context) {
	userID := middleware.UserID(c)
	day := c.Param("date")
	if !daykey.Valid(day) {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	// Subscribe before reading the snapshot: an entry appended in between
	// lands in the channel, so the union of snapshot and stream misses
	// nothing. Entries in both are filtered by id below.
	sub := h.hub.Subscribe(watch.Scope{UserID: userID, Day: day})
	defer h.hub.Unsubscribe(sub)

	snapshot, err := h.viewerService.DayEntries(userID, day)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	inSnapshot := make(map[string]bool, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		inSnapshot[e.ID] = true
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(watchMessage{Type: "snapshot", Day: day, Entries: snapshot.Entries}); err != nil {
		return
	}

	// Drain the client side only to detect disconnects
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case entry := <-sub.Entries:
			if inSnapshot[entry.ID] {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(watchMessage{Type: "entry", Day: day, Entry: &entry}); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

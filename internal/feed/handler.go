package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Serve godoc
// @Summary     Live delivery feed
// @Description WebSocket stream of finalized webhook logs. Send {"type":"subscribe","workspaces":[...]} to filter.
// @Tags        Webhook
// @Param       key query string true "Internal key"
// @Success     101
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /webhook/devtel/feed [GET]
func (h *Hub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "feed upgrade failed: %v", err)
		return
	}

	cl := newClient(h, conn)
	if !h.attach(cl) {
		_ = conn.Close()
		return
	}
	h.l.Infof(c.Request.Context(), "feed client connected: %s", cl.remote)

	go cl.writePump()
	cl.readPump()

	h.l.Infof(c.Request.Context(), "feed client disconnected: %s", cl.remote)
}

package realtime

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ServeWS returns the echo handler for the notification channel. The
// client presents an access token either as a ?token= query parameter
// or in the Authorization header; on success the connection joins the
// hub under the token's user id, on failure it is rejected. The
// handler then blocks reading the socket until the peer disconnects,
// which triggers leave and close.
func ServeWS(hub *Hub, accessSecret string) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.QueryParam("token"))
		if raw == "" {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing token"})
		}
		_, userID, err := utils.ParseAccessToken(accessSecret, raw)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		hub.Join(userID, ws)
		defer func() {
			hub.Leave(userID, ws)
			_ = ws.Close()
		}()

		// Drain the connection; the server never expects client
		// messages, but reading is how close frames surface.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return nil
			}
		}
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/events"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler -> GET /ws. Client menerima push menu_update dan order_update.
// Token lewat query param karena browser websocket tidak bisa set header.
// Koneksi baru untuk session yang sama menggantikan koneksi lama.
func WSHandler(c *gin.Context) {
	token := c.Query("token")
	token = strings.TrimPrefix(token, "Bearer ")
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or missing token"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("ws: upgrade failed: %v", err)
		return
	}

	events.RegisterClient(claims.UserID, conn)
	utils.InfoLogger.Printf("ws: client connected (user=%d)", claims.UserID)

	// Read loop hanya untuk mendeteksi close dari client
	go func() {
		defer events.UnregisterClient(claims.UserID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatGateway struct {
	server   *Server
	upgrader websocket.Upgrader
}

func (c ChatGateway) router(server *Server) {
	c.server = server
	c.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Auth happens on the bearer token; origins stay open like the
		// CORS layer on the REST routes.
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	wsGroup := server.router.Group("/ws")
	wsGroup.GET("bookings/:id/chat", server.authenticated(), c.joinChat)
}

func (c *ChatGateway) joinChat(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	bookingID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBookingID))
		return
	}

	if err := c.server.chats.CanJoin(ctx, activeUser.UserID, bookingID); err != nil {
		c.server.respondServiceError(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already written its own handshake error.
		c.server.logger.Error(apistrings.ChatUpgradeFailed, err)
		return
	}

	c.server.hub.Join(conn, bookingID, activeUser.UserID, func(ctx context.Context, senderID, roomID int64, body string) error {
		_, err := c.server.chats.Send(ctx, senderID, roomID, body)
		return err
	})
}

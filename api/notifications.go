package api

import (
	"net/http"
	"strconv"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	models "github.com/HilomPH/Hilom-Backend/api/models"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Notifications struct {
	server *Server
}

func (n Notifications) router(server *Server) {
	n.server = server

	serverGroupV1 := server.router.Group("/api/v1/notifications")
	serverGroupV1.GET("", server.authenticated(), n.list)
	serverGroupV1.GET("unread-count", server.authenticated(), n.unreadCount)
	serverGroupV1.POST("read-all", server.authenticated(), n.markAllRead)
	serverGroupV1.POST(":id/read", server.authenticated(), n.markRead)
	serverGroupV1.DELETE(":id", server.authenticated(), n.remove)
	serverGroupV1.POST("push-tokens", server.authenticated(), n.registerDevice)
	serverGroupV1.DELETE("push-tokens", server.authenticated(), n.removeDevice)
}

func (n *Notifications) list(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit := int32QueryOr(ctx, "limit", 20)
	offset := int32QueryOr(ctx, "offset", 0)

	notifications, err := n.server.notifications.List(ctx, activeUser.UserID, limit, offset)
	if err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Notifications Fetched Successfully", notifications))
}

func (n *Notifications) unreadCount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	count, err := n.server.notifications.CountUnread(ctx, activeUser.UserID)
	if err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Unread Count Fetched Successfully", gin.H{"unread": count}))
}

func (n *Notifications) markRead(ctx *gin.Context) {
	activeUser, notificationID, ok := n.caller(ctx)
	if !ok {
		return
	}

	model, err := n.server.notifications.MarkRead(ctx, activeUser.UserID, notificationID)
	if err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Notification Marked Read", model))
}

func (n *Notifications) markAllRead(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if err := n.server.notifications.MarkAllRead(ctx, activeUser.UserID); err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Notifications Marked Read", nil))
}

func (n *Notifications) remove(ctx *gin.Context) {
	activeUser, notificationID, ok := n.caller(ctx)
	if !ok {
		return
	}

	if err := n.server.notifications.Delete(ctx, activeUser.UserID, notificationID); err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Notification Deleted Successfully", nil))
}

func (n *Notifications) registerDevice(ctx *gin.Context) {
	request := models.RegisterDeviceRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidDeviceInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	token, err := n.server.notifications.RegisterDevice(ctx, activeUser.UserID, request.Provider, request.Token, request.DeviceUUID)
	if err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Device Registered Successfully", token))
}

func (n *Notifications) removeDevice(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.MissingDeviceToken))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if err := n.server.notifications.RemoveDevice(ctx, activeUser.UserID, token); err != nil {
		n.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Device Removed Successfully", nil))
}

func (n *Notifications) caller(ctx *gin.Context) (utils.TokenObject, int64, bool) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return utils.TokenObject{}, 0, false
	}

	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidNotificationID))
		return utils.TokenObject{}, 0, false
	}

	return activeUser, notificationID, true
}

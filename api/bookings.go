package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	models "github.com/HilomPH/Hilom-Backend/api/models"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/services/booking"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Bookings struct {
	server *Server
}

func (b Bookings) router(server *Server) {
	b.server = server

	serverGroupV1 := server.router.Group("/api/v1/bookings")
	serverGroupV1.POST("", server.authenticated(), b.create)
	serverGroupV1.GET("", server.authenticated(), b.list)
	serverGroupV1.GET(":id", server.authenticated(), b.get)
	serverGroupV1.GET("number/:number", server.authenticated(), b.getByNumber)
	serverGroupV1.POST(":id/accept", server.authenticated(), b.accept)
	serverGroupV1.POST(":id/cancel", server.authenticated(), b.cancel)
	serverGroupV1.POST(":id/status", server.authenticated(), b.updateStatus)
	serverGroupV1.PUT(":id/location", server.authenticated(), b.updateLocation)
	serverGroupV1.GET(":id/location", server.authenticated(), b.location)
	serverGroupV1.POST(":id/sos", server.authenticated(), b.triggerSOS)
	serverGroupV1.POST(":id/hide", server.authenticated(), b.hide)
	serverGroupV1.GET(":id/messages", server.authenticated(), b.messages)
	serverGroupV1.POST(":id/messages", server.authenticated(), b.sendMessage)
}

func (b *Bookings) create(ctx *gin.Context) {
	request := models.CreateBookingRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			lines := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				lines = append(lines, fmt.Sprintf("%v failed on %v", fe.Field(), fe.Tag()))
			}
			ctx.JSON(http.StatusBadRequest, basemodels.NewValidationError(apistrings.InvalidBookingInput, lines))
			return
		}
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBookingInput))
		return
	}

	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	amount, err := decimal.NewFromString(request.ServiceAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBookingInput))
		return
	}

	model, err := b.server.bookings.Create(ctx, booking.CreateParams{
		CustomerID:      activeUser.UserID,
		ProviderID:      request.ProviderID,
		ServiceName:     request.ServiceName,
		PaymentMethod:   booking.PaymentMethod(request.PaymentMethod),
		ServiceAmount:   amount,
		ScheduledAt:     request.ScheduledAt,
		DurationMinutes: request.DurationMinutes,
		Address:         request.Address,
		Latitude:        request.Latitude,
		Longitude:       request.Longitude,
		Notes:           request.Notes,
	})
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Booking Created Successfully", model))
}

func (b *Bookings) list(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit := int32QueryOr(ctx, "limit", 20)
	offset := int32QueryOr(ctx, "offset", 0)

	var bookings []*booking.BookingModel
	if ctx.Query("role") == "provider" {
		bookings, err = b.server.bookings.ListForProvider(ctx, activeUser.UserID, limit, offset)
	} else {
		bookings, err = b.server.bookings.ListForCustomer(ctx, activeUser.UserID, limit, offset)
	}
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Bookings Fetched Successfully", bookings))
}

func (b *Bookings) get(ctx *gin.Context) {
	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	model, err := b.server.bookings.Get(ctx, activeUser.UserID, bookingID)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Fetched Successfully", model))
}

func (b *Bookings) getByNumber(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	model, err := b.server.bookings.GetByNumber(ctx, activeUser.UserID, ctx.Param("number"))
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Fetched Successfully", model))
}

func (b *Bookings) accept(ctx *gin.Context) {
	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	model, err := b.server.bookings.Accept(ctx, activeUser.UserID, bookingID)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Accepted Successfully", model))
}

func (b *Bookings) cancel(ctx *gin.Context) {
	request := models.CancelBookingRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidCancelInput))
		return
	}

	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	model, err := b.server.bookings.Cancel(ctx, activeUser.UserID, bookingID, request.Reason)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Cancelled Successfully", model))
}

func (b *Bookings) updateStatus(ctx *gin.Context) {
	request := models.UpdateStatusRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidStatusInput))
		return
	}

	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	model, err := b.server.bookings.UpdateStatus(ctx, activeUser.UserID, bookingID, booking.Status(request.Status))
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Status Updated Successfully", model))
}

func (b *Bookings) updateLocation(ctx *gin.Context) {
	request := models.UpdateLocationRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidLocationInput))
		return
	}

	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	model, err := b.server.bookings.UpdateLocation(ctx, activeUser.UserID, bookingID, *request.Latitude, *request.Longitude)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Location Updated Successfully", model))
}

func (b *Bookings) location(ctx *gin.Context) {
	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	snap, err := b.server.bookings.Location(ctx, activeUser.UserID, bookingID)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Location Fetched Successfully", snap))
}

func (b *Bookings) triggerSOS(ctx *gin.Context) {
	request := models.SOSRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidSOSInput))
			return
		}
	}

	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	alert, err := b.server.bookings.TriggerSOS(ctx, booking.SOSParams{
		BookingID: bookingID,
		RaisedBy:  activeUser.UserID,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Note:      request.Note,
	})
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("SOS Raised Successfully", alert))
}

func (b *Bookings) hide(ctx *gin.Context) {
	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	if err := b.server.bookings.Hide(ctx, activeUser.UserID, bookingID); err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Booking Hidden Successfully", nil))
}

func (b *Bookings) messages(ctx *gin.Context) {
	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	limit := int32QueryOr(ctx, "limit", 0)
	thread, err := b.server.chats.History(ctx, activeUser.UserID, bookingID, limit)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Messages Fetched Successfully", thread))
}

func (b *Bookings) sendMessage(ctx *gin.Context) {
	request := models.SendMessageRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidMessageInput))
		return
	}

	activeUser, bookingID, ok := b.caller(ctx)
	if !ok {
		return
	}

	message, err := b.server.chats.Send(ctx, activeUser.UserID, bookingID, request.Body)
	if err != nil {
		b.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Message Sent Successfully", message))
}

// caller resolves the authenticated user plus the :id path param,
// writing the error response itself when either is missing.
func (b *Bookings) caller(ctx *gin.Context) (utils.TokenObject, int64, bool) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return utils.TokenObject{}, 0, false
	}

	bookingID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidBookingID))
		return utils.TokenObject{}, 0, false
	}

	return activeUser, bookingID, true
}

func int32QueryOr(ctx *gin.Context, name string, fallback int32) int32 {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || parsed < 0 {
		return fallback
	}
	return int32(parsed)
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/services/booking"
	"github.com/HilomPH/Hilom-Backend/services/chat"
	"github.com/HilomPH/Hilom-Backend/services/notification"
	"github.com/HilomPH/Hilom-Backend/services/wallet"
	"github.com/gin-gonic/gin"
)

// statusFor translates typed service errors into response codes.
// Anything unrecognized is a 500.
func statusFor(err error) int {
	var transition *booking.TransitionError
	var funds *db.InsufficientFundsError

	switch {
	case errors.As(err, &transition):
		return http.StatusConflict
	case errors.As(err, &funds):
		return http.StatusPaymentRequired
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrProviderNotFound),
		errors.Is(err, booking.ErrNoLocation),
		errors.Is(err, chat.ErrBookingNotFound),
		errors.Is(err, notification.ErrNotificationNotFound),
		errors.Is(err, wallet.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrNotYours),
		errors.Is(err, chat.ErrNotYours):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrBookingNotActive),
		errors.Is(err, chat.ErrChatClosed):
		return http.StatusConflict
	case errors.Is(err, booking.ErrUnknownStatus),
		errors.Is(err, booking.ErrUnknownPayment),
		errors.Is(err, booking.ErrScheduleInPast),
		errors.Is(err, booking.ErrInvalidAmount),
		errors.Is(err, booking.ErrInvalidDuration),
		errors.Is(err, booking.ErrCancelReasonMissing),
		errors.Is(err, booking.ErrNoProviderAssigned),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, notification.ErrUnknownProvider),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrMessageTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the mapped status. Typed errors carry
// their own message; anything else is logged and hidden behind the
// generic server error line.
func (s *Server) respondServiceError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(fmt.Sprintf("%v %v failed: %v", ctx.Request.Method, ctx.FullPath(), err))
		ctx.JSON(status, basemodels.NewError(apistrings.ServerError))
		return
	}
	ctx.JSON(status, basemodels.NewError(err.Error()))
}

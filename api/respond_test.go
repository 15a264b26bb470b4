package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/services/booking"
	"github.com/HilomPH/Hilom-Backend/services/chat"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/notification"
	"github.com/HilomPH/Hilom-Backend/services/wallet"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "illegal transition is a conflict",
			err:  booking.NewTransitionError(booking.StatusCompleted, booking.StatusInProgress),
			want: http.StatusConflict,
		},
		{
			name: "wrapped transition still maps",
			err:  fmt.Errorf("update status: %w", booking.NewTransitionError(booking.StatusPending, booking.StatusCompleted)),
			want: http.StatusConflict,
		},
		{
			name: "empty wallet asks for payment",
			err: &db.InsufficientFundsError{
				Required: decimal.NewFromInt(50),
				Current:  decimal.NewFromInt(10),
			},
			want: http.StatusPaymentRequired,
		},
		{
			name: "missing booking",
			err:  booking.ErrBookingNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "missing wallet",
			err:  wallet.ErrWalletNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "missing notification",
			err:  notification.ErrNotificationNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "someone else's booking",
			err:  booking.ErrNotYours,
			want: http.StatusForbidden,
		},
		{
			name: "chat on a foreign booking",
			err:  chat.ErrNotYours,
			want: http.StatusForbidden,
		},
		{
			name: "chat after completion",
			err:  chat.ErrChatClosed,
			want: http.StatusConflict,
		},
		{
			name: "unknown status string",
			err:  booking.ErrUnknownStatus,
			want: http.StatusBadRequest,
		},
		{
			name: "schedule in the past",
			err:  booking.ErrScheduleInPast,
			want: http.StatusBadRequest,
		},
		{
			name: "non-positive top up",
			err:  wallet.ErrInvalidAmount,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown push provider",
			err:  notification.ErrUnknownProvider,
			want: http.StatusBadRequest,
		},
		{
			name: "oversized chat message",
			err:  chat.ErrMessageTooLong,
			want: http.StatusBadRequest,
		},
		{
			name: "anything else is a server error",
			err:  errors.New("pq: connection refused"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := &Server{
		logger: &logging.Logger{Logger: logrus.New()},
	}

	respond := func(err error) (*httptest.ResponseRecorder, basemodels.ErrorResponse) {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)

		server.respondServiceError(ctx, err)

		var body basemodels.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("typed errors keep their message", func(t *testing.T) {
		w, body := respond(booking.ErrNotYours)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "failed", body.Status)
		assert.Equal(t, booking.ErrNotYours.Error(), body.Message)
	})

	t.Run("unknown errors hide behind the generic line", func(t *testing.T) {
		w, body := respond(errors.New("pq: deadlock detected"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apistrings.ServerError, body.Message)
		assert.NotContains(t, body.Message, "deadlock")
	})
}

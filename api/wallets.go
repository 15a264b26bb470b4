package api

import (
	"database/sql"
	"net/http"

	"github.com/HilomPH/Hilom-Backend/api/apistrings"
	models "github.com/HilomPH/Hilom-Backend/api/models"
	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/services/wallet"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Wallets struct {
	server *Server
}

func (w Wallets) router(server *Server) {
	w.server = server

	serverGroupV1 := server.router.Group("/api/v1/wallets")
	serverGroupV1.GET("", server.authenticated(), w.getBalance)
	serverGroupV1.POST("topup", server.authenticated(), w.topUp)
	serverGroupV1.GET("transactions", server.authenticated(), w.getTransactions)
	serverGroupV1.GET("check-fee", server.authenticated(), w.checkFee)
	serverGroupV1.GET("ledger", server.authenticated(), w.verifyLedger)
}

func (w *Wallets) getBalance(ctx *gin.Context) {
	ownerType, ownerID, ok := w.owner(ctx)
	if !ok {
		return
	}

	balance, err := w.server.wallets.GetBalance(ctx, ownerType, ownerID)
	if err != nil {
		w.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Balance Fetched Successfully", balance))
}

func (w *Wallets) topUp(ctx *gin.Context) {
	request := models.TopUpRequest{}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTopUpInput))
		return
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	ownerType, ownerID, ok := w.owner(ctx)
	if !ok {
		return
	}

	transaction, err := w.server.wallets.TopUp(ctx, wallet.TopUpParams{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Amount:    amount,
		Method:    request.Method,
		Reference: request.Reference,
	})
	if err != nil {
		w.server.respondServiceError(ctx, err)
		return
	}

	w.server.metrics.WalletTxns.WithLabelValues(db.TransactionTopUp).Inc()
	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("Wallet Topped Up Successfully", transaction))
}

func (w *Wallets) getTransactions(ctx *gin.Context) {
	ownerType, ownerID, ok := w.owner(ctx)
	if !ok {
		return
	}

	limit := int32QueryOr(ctx, "limit", 20)
	offset := int32QueryOr(ctx, "offset", 0)

	transactions, err := w.server.wallets.ListTransactions(ctx, ownerType, ownerID, limit, offset)
	if err != nil {
		w.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Wallet Transactions Fetched Successfully", transactions))
}

func (w *Wallets) checkFee(ctx *gin.Context) {
	amount, err := decimal.NewFromString(ctx.Query("service_amount"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	ownerType, ownerID, ok := w.owner(ctx)
	if !ok {
		return
	}

	check, err := w.server.wallets.CheckBalanceForFee(ctx, ownerType, ownerID, amount)
	if err != nil {
		w.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Fee Check Completed Successfully", check))
}

func (w *Wallets) verifyLedger(ctx *gin.Context) {
	ownerType, ownerID, ok := w.owner(ctx)
	if !ok {
		return
	}

	report, err := w.server.wallets.VerifyLedger(ctx, ownerType, ownerID)
	if err != nil {
		w.server.respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Ledger Verified Successfully", report))
}

// owner maps the active user to the wallet they operate. Providers
// attached to a shop share the shop wallet; independents use their own.
func (w *Wallets) owner(ctx *gin.Context) (string, int64, bool) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return "", 0, false
	}

	provider, err := w.server.store.GetProviderByUserID(ctx, activeUser.UserID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.ProvidersOnlyWallet))
		return "", 0, false
	} else if err != nil {
		w.server.logger.Error("DB Error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return "", 0, false
	}

	if provider.ShopID.Valid {
		return db.WalletOwnerShop, provider.ShopID.Int64, true
	}
	return db.WalletOwnerProvider, provider.ID, true
}

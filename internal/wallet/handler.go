package wallet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/John-Akins/jago-backend/internal/auth"
	"github.com/John-Akins/jago-backend/internal/biller"
	"github.com/John-Akins/jago-backend/internal/queue"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("billtype", func(fl validator.FieldLevel) bool {
			return biller.BillType(fl.Field().String()).Valid()
		})
	}
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type FundRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
}

type PayBillRequest struct {
	BillType   string  `json:"billType" binding:"required,billtype"`
	BillerCode string  `json:"billerCode" binding:"required"`
	CustomerID string  `json:"customerId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// @Summary      Fund the authenticated user's wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      200 {object} FundReceipt
// @Failure      400 {object} api.ErrorResponse
// @Router       /wallet/fund [post]
func (h *Handler) Fund(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}

	receipt, err := h.service.FundWallet(c.Request.Context(), userID, req.Amount, req.Currency)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// @Summary      Pay a bill from the wallet balance
// @Description  Debits the wallet and enqueues the payment; resolution is asynchronous
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Success      202 {object} PayBillReceipt
// @Failure      400 {object} api.ErrorResponse
// @Router       /wallet/pay-bill [post]
func (h *Handler) PayBill(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "billType, billerCode, customerId and a positive amount are required"})
		return
	}

	receipt, err := h.service.PayBill(c.Request.Context(), userID, PayBillInput{
		BillType:   req.BillType,
		BillerCode: req.BillerCode,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, receipt)
}

// @Summary      Current wallet balance
// @Tags         wallet
// @Produce      json
// @Success      200 {object} Balance
// @Router       /wallet/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// @Summary      Status of a bill-payment transaction
// @Tags         wallet
// @Produce      json
// @Success      200 {object} queue.Job
// @Failure      404 {object} api.ErrorResponse
// @Router       /wallet/transactions/{transactionID}/status [get]
func (h *Handler) TransactionStatus(c *gin.Context) {
	transactionID := c.Param("transactionID")
	if transactionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionID is required"})
		return
	}

	job, err := h.service.GetTransactionStatus(c.Request.Context(), transactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, biller.ErrUnknownBillType),
		errors.Is(err, biller.ErrInvalidCustomerID), errors.Is(err, biller.ErrInvalidPhone),
		errors.Is(err, biller.ErrInvalidSmartCard):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInsufficientFunds.Error()})
	case errors.Is(err, ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrWalletNotFound.Error()})
	case errors.Is(err, queue.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

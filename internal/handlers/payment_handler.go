package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/anonto42/lms/backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PaymentGateway opens orders and checks checkout signatures
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// PaymentHandler handles donation payments
type PaymentHandler struct {
	donationRepository repositories.DonationRepository
	gateway            PaymentGateway
	currency           string
}

func NewPaymentHandler(donationRepo repositories.DonationRepository, gateway PaymentGateway, currency string) *PaymentHandler {
	return &PaymentHandler{
		donationRepository: donationRepo,
		gateway:            gateway,
		currency:           currency,
	}
}

func (h *PaymentHandler) RegisterPaymentRoutes(g *echo.Group) {
	g.POST("/payments/create-order", h.CreateOrder)
	g.POST("/payments/verify", h.Verify)
}

// CreateOrder opens a gateway order and stores a pending donation
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	receipt := "don_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	order, err := h.gateway.CreateOrder(ctx, razorpay.ToSubunits(req.Amount), h.currency, receipt)
	if err != nil {
		c.Logger().Errorf("create order failed: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to create order")
	}

	donation := &models.Donation{
		UserID:          uid,
		Amount:          req.Amount,
		Receipt:         receipt,
		RazorpayOrderID: order.ID,
		Status:          models.DonationPending,
	}
	if req.Message != "" {
		donation.Message = &req.Message
	}
	if err := h.donationRepository.CreateDonation(ctx, donation); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save donation")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    h.gateway.KeyID(),
	})
}

// Verify checks the checkout signature and completes the caller's donation
func (h *PaymentHandler) Verify(c echo.Context) error {
	uid, err := middleware.UserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if !h.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payment signature")
	}

	ctx := c.Request().Context()
	donation, err := h.donationRepository.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Donation record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load donation")
	}
	if donation.UserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	if err := h.donationRepository.MarkCompleted(ctx, req.OrderID, req.PaymentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update donation")
	}
	donation.Status = models.DonationCompleted
	donation.RazorpayPaymentID = &req.PaymentID

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Payment verified successfully",
		"donation": donation,
	})
}

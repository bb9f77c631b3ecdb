package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/service"
)

// BillHandler exposes billing: generation, fee adjustment, payment
// and the reporting queries including revenue totals.
type BillHandler struct {
	Billing *service.BillingService
}

// NewBillHandler constructs a BillHandler.
func NewBillHandler(billing *service.BillingService) *BillHandler {
	return &BillHandler{Billing: billing}
}

type billFeesReq struct {
	DamageFeeCents *int64  `json:"damage_fee_cents" validate:"omitempty,gte=0"`
	DiscountCents  *int64  `json:"discount_cents" validate:"omitempty,gte=0"`
	Notes          *string `json:"notes" validate:"omitempty,max=500"`
}

type payBillReq struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// List handles GET /v1/bills.
func (h *BillHandler) List(c echo.Context) error {
	bills, err := h.Billing.AllBills(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// Get handles GET /v1/bills/:id.
func (h *BillHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bill, err := h.Billing.BillByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}

// Pending handles GET /v1/bills/pending.
func (h *BillHandler) Pending(c echo.Context) error {
	bills, err := h.Billing.PendingBills(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// Overdue handles GET /v1/bills/overdue.
func (h *BillHandler) Overdue(c echo.Context) error {
	bills, err := h.Billing.OverdueBills(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// ByCustomer handles GET /v1/bills/customer/:customerId.
func (h *BillHandler) ByCustomer(c echo.Context) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bills, err := h.Billing.BillsByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// Between handles GET /v1/bills/between?start=&end= over bill dates.
func (h *BillHandler) Between(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bills, err := h.Billing.BillsBetween(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// PaidBetween handles GET /v1/bills/paid?start=&end= over paid dates.
func (h *BillHandler) PaidBetween(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bills, err := h.Billing.BillsPaidBetween(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// Revenue handles GET /v1/bills/revenue?start=&end=.  The total sums
// PAID bills by paid date, inclusive on both ends.
func (h *BillHandler) Revenue(c echo.Context) error {
	start, end, err := rangeParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	total, err := h.Billing.TotalRevenue(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start":               start.Format(dateLayout),
		"end":                 end.Format(dateLayout),
		"total_revenue_cents": total,
	})
}

// Generate handles POST /v1/bills/generate/:rentalId.  Generation is
// idempotent per rental; regenerating returns the existing bill.
func (h *BillHandler) Generate(c echo.Context) error {
	rentalID, err := parseID(c, "rentalId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bill, err := h.Billing.GenerateBill(c.Request().Context(), rentalID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, bill)
}

// UpdateFees handles PUT /v1/bills/:id/fees.
func (h *BillHandler) UpdateFees(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req billFeesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bill, err := h.Billing.UpdateBillWithFees(c.Request().Context(), id, req.DamageFeeCents, req.DiscountCents, req.Notes)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}

// Pay handles PUT /v1/bills/:id/pay.
func (h *BillHandler) Pay(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req payBillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment_method"})
	}
	bill, err := h.Billing.MarkBillAsPaid(c.Request().Context(), id, req.PaymentMethod)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}

// rangeParams reads the start/end date range shared by the
// reporting endpoints.
func rangeParams(c echo.Context) (time.Time, time.Time, error) {
	start, err := parseDateTime(c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateTime(c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

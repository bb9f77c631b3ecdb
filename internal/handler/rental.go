package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sreejithpr/Costume-rentals/internal/service"
)

// RentalHandler exposes the rental lifecycle: creation, return,
// cancellation, notes and the rental query surface.
type RentalHandler struct {
	Rentals *service.RentalService
}

// NewRentalHandler constructs a RentalHandler.
func NewRentalHandler(rentals *service.RentalService) *RentalHandler {
	return &RentalHandler{Rentals: rentals}
}

type createRentalReq struct {
	CustomerID         uint64  `json:"customer_id" validate:"required"`
	CostumeID          uint64  `json:"costume_id" validate:"required"`
	RentalDate         string  `json:"rental_date" validate:"required"`
	ExpectedReturnDate string  `json:"expected_return_date" validate:"required"`
	Notes              *string `json:"notes" validate:"omitempty,max=500"`
	GenerateBill       *bool   `json:"generate_bill"`
}

type returnRentalReq struct {
	ActualReturnDate string `json:"actual_return_date" validate:"required"`
}

type rentalNotesReq struct {
	Notes *string `json:"notes" validate:"omitempty,max=500"`
}

// List handles GET /v1/rentals.
func (h *RentalHandler) List(c echo.Context) error {
	rentals, err := h.Rentals.AllRentals(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// Get handles GET /v1/rentals/:id.
func (h *RentalHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rental, err := h.Rentals.RentalByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

// Active handles GET /v1/rentals/active.
func (h *RentalHandler) Active(c echo.Context) error {
	rentals, err := h.Rentals.ActiveRentals(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// Overdue handles GET /v1/rentals/overdue.
func (h *RentalHandler) Overdue(c echo.Context) error {
	rentals, err := h.Rentals.OverdueRentals(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// ByCustomer handles GET /v1/rentals/customer/:customerId.  The
// optional ?status= query narrows to one lifecycle state.
func (h *RentalHandler) ByCustomer(c echo.Context) error {
	customerID, err := parseID(c, "customerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if status := c.QueryParam("status"); status != "" {
		rentals, err := h.Rentals.RentalsByCustomerAndStatus(ctx, customerID, status)
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, rentals)
	}
	rentals, err := h.Rentals.RentalsByCustomer(ctx, customerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// ByCostume handles GET /v1/rentals/costume/:costumeId.
func (h *RentalHandler) ByCostume(c echo.Context) error {
	costumeID, err := parseID(c, "costumeId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rentals, err := h.Rentals.RentalsByCostume(c.Request().Context(), costumeID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// Between handles GET /v1/rentals/between?start=&end=.
func (h *RentalHandler) Between(c echo.Context) error {
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start date"})
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end date"})
	}
	rentals, err := h.Rentals.RentalsBetween(c.Request().Context(), start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rentals)
}

// Create handles POST /v1/rentals.  Unless generate_bill is
// explicitly false, the bill is issued in the same transaction.
func (h *RentalHandler) Create(c echo.Context) error {
	var req createRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rentalDate, err := parseDate(req.RentalDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental_date"})
	}
	expected, err := parseDate(req.ExpectedReturnDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expected_return_date"})
	}
	if expected.Before(rentalDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected_return_date before rental_date"})
	}
	generateBill := true
	if req.GenerateBill != nil {
		generateBill = *req.GenerateBill
	}
	rental, err := h.Rentals.CreateRental(c.Request().Context(), req.CustomerID, req.CostumeID, rentalDate, expected, req.Notes, generateBill)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, rental)
}

// Return handles PUT /v1/rentals/:id/return.
func (h *RentalHandler) Return(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req returnRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	returnDate, err := parseDate(req.ActualReturnDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid actual_return_date"})
	}
	rental, err := h.Rentals.ReturnCostume(c.Request().Context(), id, returnDate)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

// Cancel handles PUT /v1/rentals/:id/cancel.
func (h *RentalHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rental, err := h.Rentals.CancelRental(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

// UpdateNotes handles PUT /v1/rentals/:id/notes.
func (h *RentalHandler) UpdateNotes(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req rentalNotesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rental, err := h.Rentals.UpdateRentalNotes(c.Request().Context(), id, req.Notes)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

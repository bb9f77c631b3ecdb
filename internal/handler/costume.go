package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sreejithpr/Costume-rentals/internal/model"
	"github.com/Sreejithpr/Costume-rentals/internal/repository"
)

// CostumeHandler exposes inventory CRUD and the catalog queries:
// availability, stock, search, category/size filters and the
// distinct value listings.
type CostumeHandler struct {
	Costumes *repository.CostumeRepo
}

// NewCostumeHandler constructs a CostumeHandler.
func NewCostumeHandler(costumes *repository.CostumeRepo) *CostumeHandler {
	return &CostumeHandler{Costumes: costumes}
}

type costumeReq struct {
	Name                  string  `json:"name" validate:"required,max=100"`
	Description           *string `json:"description" validate:"omitempty,max=500"`
	Size                  string  `json:"size" validate:"required,max=10"`
	Category              string  `json:"category" validate:"required,max=50"`
	DailyRentalPriceCents int64   `json:"daily_rental_price_cents" validate:"required,gt=0"`
	StockQuantity         int     `json:"stock_quantity" validate:"gte=0"`
	Available             *bool   `json:"available"`
}

// List handles GET /v1/costumes.
func (h *CostumeHandler) List(c echo.Context) error {
	costumes, err := h.Costumes.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// ListAvailable handles GET /v1/costumes/available.
func (h *CostumeHandler) ListAvailable(c echo.Context) error {
	costumes, err := h.Costumes.ListAvailable(c.Request().Context(), true)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// ListWithStock handles GET /v1/costumes/with-stock.
func (h *CostumeHandler) ListWithStock(c echo.Context) error {
	costumes, err := h.Costumes.ListWithStock(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// Get handles GET /v1/costumes/:id.
func (h *CostumeHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	costume, err := h.Costumes.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costume)
}

// Search handles GET /v1/costumes/search?term=.
func (h *CostumeHandler) Search(c echo.Context) error {
	term := c.QueryParam("term")
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "term is required"})
	}
	costumes, err := h.Costumes.Search(c.Request().Context(), term)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// Categories handles GET /v1/costumes/categories.
func (h *CostumeHandler) Categories(c echo.Context) error {
	categories, err := h.Costumes.DistinctCategories(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Sizes handles GET /v1/costumes/sizes.
func (h *CostumeHandler) Sizes(c echo.Context) error {
	sizes, err := h.Costumes.DistinctSizes(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, sizes)
}

// ByCategory handles GET /v1/costumes/category/:category.  The
// optional ?available=true|false query narrows on the stored flag.
func (h *CostumeHandler) ByCategory(c echo.Context) error {
	category := c.Param("category")
	if v := c.QueryParam("available"); v != "" {
		costumes, err := h.Costumes.ListByCategoryAndAvailable(c.Request().Context(), category, v == "true")
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, costumes)
	}
	costumes, err := h.Costumes.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// BySize handles GET /v1/costumes/size/:size with the same optional
// availability narrowing as ByCategory.
func (h *CostumeHandler) BySize(c echo.Context) error {
	size := c.Param("size")
	if v := c.QueryParam("available"); v != "" {
		costumes, err := h.Costumes.ListBySizeAndAvailable(c.Request().Context(), size, v == "true")
		if err != nil {
			return writeErr(c, err)
		}
		return c.JSON(http.StatusOK, costumes)
	}
	costumes, err := h.Costumes.ListBySize(c.Request().Context(), size)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costumes)
}

// Create handles POST /v1/costumes.
func (h *CostumeHandler) Create(c echo.Context) error {
	var req costumeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	stock := req.StockQuantity
	if stock == 0 {
		stock = 1
	}
	costume, err := h.Costumes.Create(c.Request().Context(), &model.Costume{
		Name:                  req.Name,
		Description:           req.Description,
		Size:                  req.Size,
		Category:              req.Category,
		DailyRentalPriceCents: req.DailyRentalPriceCents,
		StockQuantity:         stock,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, costume)
}

// Update handles PUT /v1/costumes/:id.  Like the original update,
// the stored available flag is overwritten when supplied and
// derived from stock when not.
func (h *CostumeHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req costumeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	available := req.StockQuantity > 0
	if req.Available != nil {
		available = *req.Available
	}
	costume, err := h.Costumes.Update(c.Request().Context(), &model.Costume{
		ID:                    id,
		Name:                  req.Name,
		Description:           req.Description,
		Size:                  req.Size,
		Category:              req.Category,
		DailyRentalPriceCents: req.DailyRentalPriceCents,
		StockQuantity:         req.StockQuantity,
		Available:             available,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, costume)
}

// Delete handles DELETE /v1/costumes/:id.
func (h *CostumeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Costumes.Delete(c.Request().Context(), id); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

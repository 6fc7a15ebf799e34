package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP del motor de ventas (protegido).
type SaleHandler struct {
	createUC  *sales.CreateSaleUseCase
	queryUC   *sales.SaleQueryUseCase
	receiptUC *sales.ReceiptUseCase
	userRepo  repository.UserRepository
	log       zerolog.Logger
}

// NewSaleHandler construye el handler. userRepo se usa para reconstruir el
// principal del vendedor a partir del user_id del token de sesión.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, queryUC *sales.SaleQueryUseCase, receiptUC *sales.ReceiptUseCase, userRepo repository.UserRepository, log zerolog.Logger) *SaleHandler {
	return &SaleHandler{createUC: createUC, queryUC: queryUC, receiptUC: receiptUC, userRepo: userRepo, log: log}
}

// sellerPrincipal reconstruye el principal del vendedor autenticado.
func (h *SaleHandler) sellerPrincipal(c *fiber.Ctx) (*identity.Principal, error) {
	userID := GetUserID(c)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return &identity.Principal{UID: user.FirebaseUID, Email: user.Email, Name: user.Name}, nil
}

// Create registra una venta: valida stock, asigna consecutivo, resuelve
// cliente por DNI y descuenta inventario, todo en una transacción.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	seller, err := h.sellerPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.createUC.CreateSale(c.Context(), *seller, in)
	if err != nil {
		return h.mapCreateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// mapCreateError traduce errores del motor de ventas a respuestas HTTP.
func (h *SaleHandler) mapCreateError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_STOCK",
			"message":      stockErr.Error(),
			"product_id":   stockErr.ProductID,
			"product_name": stockErr.ProductName,
			"available":    stockErr.Available,
			"requested":    stockErr.Requested,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrProductInactive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "el producto no está disponible para la venta"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto al registrar la venta, reintente"})
	case errors.Is(err, domain.ErrCorruptSequence):
		h.log.Error().Err(err).Msg("secuencia de ventas corrupta")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	default:
		h.log.Error().Err(err).Msg("crear venta")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// List lista ventas paginadas con filtros opcionales de fecha y estado.
// GET /api/sales?page=&limit=&start_date=&end_date=&status=
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}
	filter, err := parseSaleFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.queryUC.List(*filter, page)
	if err != nil {
		h.log.Error().Err(err).Msg("listar ventas")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Get obtiene el detalle completo de una venta.
// GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	sale, err := h.queryUC.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		h.log.Error().Err(err).Str("sale_id", id).Msg("obtener venta")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(sale)
}

// Stats agregados de ventas en un rango opcional de fechas.
// GET /api/sales/stats?start_date=&end_date=
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	start, err := parseDateQuery(c, "start_date", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	end, err := parseDateQuery(c, "end_date", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.queryUC.Stats(c.Context(), start, end)
	if err != nil {
		h.log.Error().Err(err).Msg("stats de ventas")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Receipt genera el comprobante PDF de una venta.
// GET /api/sales/:id/receipt
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, filename, err := h.receiptUC.Generate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		h.log.Error().Err(err).Str("sale_id", id).Msg("generar comprobante")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseSaleFilter lee los filtros de listado desde la query string.
func parseSaleFilter(c *fiber.Ctx) (*repository.SaleFilter, error) {
	filter := &repository.SaleFilter{Status: c.Query("status")}
	start, err := parseDateQuery(c, "start_date", false)
	if err != nil {
		return nil, err
	}
	end, err := parseDateQuery(c, "end_date", true)
	if err != nil {
		return nil, err
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}

// parseDateQuery acepta RFC 3339 o YYYY-MM-DD. endOfDay extiende las fechas
// sin hora al final del día para que el rango sea inclusivo.
func parseDateQuery(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	t, err := parseDate(c.Query(name), endOfDay)
	if err != nil {
		return nil, errors.New(name + " debe tener formato RFC 3339 o YYYY-MM-DD")
	}
	return t, nil
}

func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

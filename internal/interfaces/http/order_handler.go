package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
	apprepl "github.com/Demmoman6666/SBP-CRM-sub004/internal/application/replenishment"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
)

// OrderHandler maneja la colocación y seguimiento de órdenes de compra (protegido).
type OrderHandler struct {
	uc  *apprepl.OrderUseCase
	pdf *apprepl.PDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *apprepl.OrderUseCase, pdf *apprepl.PDFUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pdf: pdf}
}

// Place godoc
// @Summary      Colocar una orden de compra en la plataforma externa
// @Description  Crea la cabecera y añade las líneas en secuencia. Un fallo devuelve
//
//	el mismo cuerpo de resultado con failure poblado (purchase id y cursor
//	incluidos), nunca un error pelado: el operador necesita saber exactamente
//	qué quedó creado.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "cabecera y líneas de la orden"
// @Success      201   {object}  dto.OrderResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.OrderResultDTO
// @Router       /api/replenishment/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	deliveryDate, err := time.Parse("2006-01-02", in.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delivery_date debe ser yyyy-MM-dd"})
	}

	draft := entity.PurchaseOrderDraft{
		SupplierID:   in.SupplierID,
		LocationID:   in.LocationID,
		Currency:     in.Currency,
		DeliveryDate: deliveryDate,
		Lines:        toOrderLines(in.Lines),
	}

	res, err := h.uc.PlaceOrder(c.Context(), draft)
	if err != nil {
		if res == nil {
			return mapDomainError(c, err)
		}
		// Colocación parcial o ambigua: el cuerpo lleva el estado exacto.
		return c.Status(fiber.StatusBadGateway).JSON(toOrderResultDTO(res))
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResultDTO(res))
}

// Get godoc
// @Summary      Estado persistido de un intento de colocación
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del intento"
// @Success      200  {object}  dto.OrderAttemptDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishment/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	attempt, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAttemptDTO(attempt))
}

// ListOpen godoc
// @Summary      Intentos que esperan acción del operador
// @Description  PARTIALLY_FAILED (retomable) o AMBIGUOUS (requiere reconciliación).
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de intentos (default 50)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/replenishment/orders [get]
func (h *OrderHandler) ListOpen(c *fiber.Ctx) error {
	attempts, err := h.uc.ListOpen(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.OrderAttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptDTO(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "attempts": out})
}

// Resume godoc
// @Summary      Retomar un intento PARTIALLY_FAILED
// @Description  Añade solo las líneas restantes a la orden ya creada. Un intento
//
//	AMBIGUOUS debe reconciliarse primero.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del intento"
// @Success      200  {object}  dto.OrderResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.OrderResultDTO
// @Router       /api/replenishment/orders/{id}/resume [post]
func (h *OrderHandler) Resume(c *fiber.Ctx) error {
	res, err := h.uc.Resume(c.Context(), c.Params("id"))
	if err != nil {
		if res == nil {
			return mapDomainError(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(toOrderResultDTO(res))
	}
	return c.JSON(toOrderResultDTO(res))
}

// Reconcile godoc
// @Summary      Reconciliar un intento contra la plataforma
// @Description  Consulta cuántas líneas tiene realmente la orden remota y reposiciona
//
//	el cursor. Único camino de salida del estado AMBIGUOUS.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del intento"
// @Success      200  {object}  dto.OrderAttemptDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/replenishment/orders/{id}/reconcile [post]
func (h *OrderHandler) Reconcile(c *fiber.Ctx) error {
	attempt, err := h.uc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAttemptDTO(attempt))
}

// DownloadPDF godoc
// @Summary      PDF de la orden de compra para el proveedor
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "id del intento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/replenishment/orders/{id}/pdf [get]
func (h *OrderHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

func toOrderLines(in []dto.OrderLineRequest) []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.OrderLine{
			StockItemID: l.StockItemID,
			SKU:         l.SKU,
			Qty:         l.Qty,
			UnitCost:    l.UnitCost,
		})
	}
	return lines
}

func toOrderResultDTO(res *apprepl.OrderResult) dto.OrderResultDTO {
	return dto.OrderResultDTO{
		AttemptID:     res.AttemptID,
		PurchaseID:    res.PurchaseID,
		LinesAppended: res.LinesAppended,
		Total:         res.Total,
		Status:        string(res.Status),
		Failure:       toFailureDTO(res.Failure),
	}
}

func toFailureDTO(err error) *dto.OrderFailureDTO {
	if err == nil {
		return nil
	}
	var headerErr *domain.HeaderCreateError
	if errors.As(err, &headerErr) {
		return &dto.OrderFailureDTO{Kind: "HEADER_CREATION_FAILED", Status: headerErr.Status, Body: headerErr.Body}
	}
	var lineErr *domain.LineAppendError
	if errors.As(err, &lineErr) {
		return &dto.OrderFailureDTO{Kind: "LINE_APPEND_FAILED", Index: lineErr.Index, Status: lineErr.Status, Body: lineErr.Body}
	}
	var ambiguous *domain.AmbiguousOutcomeError
	if errors.As(err, &ambiguous) {
		return &dto.OrderFailureDTO{Kind: "AMBIGUOUS_OUTCOME", Index: ambiguous.Index, Body: ambiguous.Error()}
	}
	return &dto.OrderFailureDTO{Kind: "LINE_APPEND_FAILED", Body: err.Error()}
}

func toAttemptDTO(a *entity.OrderAttempt) dto.OrderAttemptDTO {
	lines := make([]dto.OrderLineRequest, 0, len(a.Lines))
	for _, l := range a.Lines {
		lines = append(lines, dto.OrderLineRequest{
			StockItemID: l.StockItemID,
			SKU:         l.SKU,
			Qty:         l.Qty,
			UnitCost:    l.UnitCost,
		})
	}
	return dto.OrderAttemptDTO{
		ID:           a.ID,
		SupplierID:   a.SupplierID,
		LocationID:   a.LocationID,
		Currency:     a.Currency,
		DeliveryDate: a.DeliveryDate.Format("2006-01-02"),
		PurchaseID:   a.PurchaseID,
		NextLine:     a.NextLine,
		Status:       string(a.Status),
		LastError:    a.LastError,
		Lines:        lines,
		TotalValue:   a.TotalValue(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

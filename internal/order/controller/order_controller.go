package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"comanda/internal/domain"
	"comanda/internal/dto"
	apperrors "comanda/internal/errors"
	"comanda/internal/order/service"
)

type OrderService interface {
	ListUndone(ctx context.Context, idComercial int) ([]domain.Order, error)
	ListWithoutPaying(ctx context.Context, idComercial int) ([]domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	Create(ctx context.Context, header domain.Order, details []domain.OrderDetail) (*domain.Order, error)
	Update(ctx context.Context, id uint, patch service.HeaderPatch, newItems []domain.OrderDetail, edits []service.DetailEdit, removes []int) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
}

// MenuItemChecker backs the referential rule: every line item must point at
// an existing catalog row.
type MenuItemChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// ComercialChecker validates the tenant id of the list routes.
type ComercialChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type OrderController struct {
	service    OrderService
	menuItems  MenuItemChecker
	comercials ComercialChecker
	logger     *zap.Logger
}

func NewOrderController(svc OrderService, menuItems MenuItemChecker, comercials ComercialChecker, logger *zap.Logger) *OrderController {
	return &OrderController{
		service:    svc,
		menuItems:  menuItems,
		comercials: comercials,
		logger:     logger,
	}
}

func (c *OrderController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/undone/{idComercial}", c.HandleListUndone)
	r.Get("/without-paying/{idComercial}", c.HandleListWithoutPaying)
	r.Get("/{id}", c.HandleGet)
	r.Post("/", c.HandleCreate)
	r.Put("/{id}", c.HandleUpdate)
	r.Delete("/{id}", c.HandleDelete)
	return r
}

func (c *OrderController) HandleListUndone(w http.ResponseWriter, r *http.Request) {
	c.handleList(w, r, c.service.ListUndone)
}

func (c *OrderController) HandleListWithoutPaying(w http.ResponseWriter, r *http.Request) {
	c.handleList(w, r, c.service.ListWithoutPaying)
}

func (c *OrderController) handleList(w http.ResponseWriter, r *http.Request, list func(context.Context, int) ([]domain.Order, error)) {
	logger := c.requestLogger(r)

	idComercial, ok := c.comercialFromPath(w, r, logger)
	if !ok {
		return
	}

	orders, err := list(r.Context(), idComercial)
	if err != nil {
		logger.Error("listing orders failed", zap.Int("idComercial", idComercial), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, collectionResponse{
		OK:         true,
		Collection: dto.NewCollection(orders, len(orders)),
	})
}

func (c *OrderController) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "order with id " + strconv.FormatUint(uint64(id), 10) + " does not exist",
			})
			return
		}
		logger.Error("fetching order failed", zap.Uint("idOrden", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, orderResponse{OK: true, Order: order})
}

func (c *OrderController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	details := c.validateCreateRequest(r.Context(), req, logger)
	fecha, fechaOK := parseFecha(req.FechaOrden)
	if req.FechaOrden != "" && !fechaOK {
		details = append(details, apperrors.ValidationDetail{
			Field:   "fechaOrden",
			Message: "fechaOrden must be a valid date",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, details...)
		return
	}

	header := domain.Order{
		IDComercial:   *req.IDComercial,
		IDEmpleado:    *req.IDEmpleado,
		IDMesa:        req.IDMesa,
		NombreCliente: req.NombreCliente,
		FechaOrden:    fecha,
		Pagado:        req.Pagado,
	}

	lines := make([]domain.OrderDetail, len(req.OrderDetails))
	for i, item := range req.OrderDetails {
		lines[i] = domain.OrderDetail{
			IDMenuItem: *item.IDMenuItem,
			Cantidad:   *item.Cantidad,
			Importe:    *item.Importe,
			Comentario: *item.Comentario,
		}
	}

	order, err := c.service.Create(r.Context(), header, lines)
	if err != nil {
		logger.Error("creating order failed", zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, orderResponse{OK: true, Order: order})
}

func (c *OrderController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	details := validateHeaderFields(req.NombreCliente, req.FechaOrden, req.IDEmpleado, req.IDComercial)
	fecha, fechaOK := parseFecha(req.FechaOrden)
	if req.FechaOrden != "" && !fechaOK {
		details = append(details, apperrors.ValidationDetail{
			Field:   "fechaOrden",
			Message: "fechaOrden must be a valid date",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, details...)
		return
	}

	patch := service.HeaderPatch{
		NombreCliente: req.NombreCliente,
		FechaOrden:    fecha,
		IDEmpleado:    *req.IDEmpleado,
		IDComercial:   *req.IDComercial,
		IDMesa:        req.IDMesa,
		Pagado:        req.Pagado,
	}

	newItems := make([]domain.OrderDetail, 0, len(req.NewMenuItems))
	for _, item := range req.NewMenuItems {
		line := domain.OrderDetail{}
		if item.IDMenuItem != nil {
			line.IDMenuItem = *item.IDMenuItem
		}
		if item.Cantidad != nil {
			line.Cantidad = *item.Cantidad
		}
		if item.Importe != nil {
			line.Importe = *item.Importe
		}
		if item.Comentario != nil {
			line.Comentario = *item.Comentario
		}
		newItems = append(newItems, line)
	}

	edits := make([]service.DetailEdit, 0, len(req.ItemsMenuEdit))
	for _, item := range req.ItemsMenuEdit {
		edits = append(edits, service.DetailEdit{
			IDMenuItem: item.IDMenuItem,
			Cantidad:   item.Cantidad,
			Importe:    item.Importe,
			Comentario: item.Comentario,
		})
	}

	order, err := c.service.Update(r.Context(), id, patch, newItems, edits, req.ItemsMenuRemove)
	if err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "order with id " + strconv.FormatUint(uint64(id), 10) + " does not exist",
			})
			return
		}
		logger.Error("updating order failed", zap.Uint("idOrden", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, orderResponse{OK: true, Order: order})
}

func (c *OrderController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.orderIDFromPath(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "order with id " + strconv.FormatUint(uint64(id), 10) + " does not exist",
			})
			return
		}
		logger.Error("deleting order failed", zap.Uint("idOrden", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// validateCreateRequest aggregates every field failure before responding,
// including the referential menu-item checks.
func (c *OrderController) validateCreateRequest(ctx context.Context, req dto.CreateOrderRequest, logger *zap.Logger) []apperrors.ValidationDetail {
	details := validateHeaderFields(req.NombreCliente, req.FechaOrden, req.IDEmpleado, req.IDComercial)

	if len(req.OrderDetails) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "order_details",
			Message: "order_details must have at least one element",
		})
	}

	for idx, item := range req.OrderDetails {
		field := func(name string) string {
			return "order_details[" + strconv.Itoa(idx) + "]." + name
		}

		if item.IDMenuItem == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   field("id_menu_item"),
				Message: "id_menu_item is required and must be an integer",
			})
		} else {
			exists, err := c.menuItems.Exists(ctx, *item.IDMenuItem)
			if err != nil {
				logger.Error("checking menu item existence failed", zap.Int("id_menu_item", *item.IDMenuItem), zap.Error(err))
				exists = false
			}
			if !exists {
				details = append(details, apperrors.ValidationDetail{
					Field:   field("id_menu_item"),
					Message: "menu item " + strconv.Itoa(*item.IDMenuItem) + " does not exist",
				})
			}
		}

		if item.Cantidad == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   field("cantidad"),
				Message: "cantidad is required",
			})
		} else if *item.Cantidad < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   field("cantidad"),
				Message: "cantidad must be an integer greater than zero",
			})
		}

		if item.Importe == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   field("importe"),
				Message: "importe is required and must be numeric",
			})
		}

		if item.Comentario == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   field("comentario"),
				Message: "comentario is required",
			})
		}
	}

	return details
}

// validateHeaderFields covers the rules shared by create and update:
// nombreCliente (present, at least 2 chars), fechaOrden (present),
// idEmpleado and idComercial (present integers).
func validateHeaderFields(nombreCliente, fechaOrden string, idEmpleado, idComercial *int) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail

	if nombreCliente == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "nombreCliente",
			Message: "nombreCliente is required",
		})
	} else if len(nombreCliente) < 2 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "nombreCliente",
			Message: "nombreCliente must have at least 2 characters",
		})
	}

	if fechaOrden == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "fechaOrden",
			Message: "fechaOrden is required",
		})
	}

	if idEmpleado == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "idEmpleado",
			Message: "idEmpleado is required and must be an integer",
		})
	}

	if idComercial == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "idComercial",
			Message: "idComercial is required and must be an integer",
		})
	}

	return details
}

func parseFecha(value string) (time.Time, bool) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (c *OrderController) comercialFromPath(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (int, bool) {
	raw := chi.URLParam(r, "idComercial")
	idComercial, err := strconv.Atoi(raw)
	if err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "idComercial",
			Message: "idComercial must be an integer",
		})
		return 0, false
	}

	exists, err := c.comercials.Exists(r.Context(), idComercial)
	if err != nil {
		logger.Error("checking comercial existence failed", zap.Int("idComercial", idComercial), zap.Error(err))
		c.writeServerError(w)
		return 0, false
	}
	if !exists {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "idComercial",
			Message: "comercial " + raw + " does not exist",
		})
		return 0, false
	}

	return idComercial, true
}

func (c *OrderController) orderIDFromPath(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *OrderController) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(
		zap.String("traceId", uuid.New().String()),
		zap.String("path", r.URL.Path),
	)
}

type collectionResponse struct {
	OK         bool           `json:"ok"`
	Collection dto.Collection `json:"collection"`
}

type orderResponse struct {
	OK    bool          `json:"ok"`
	Order *domain.Order `json:"order"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type validationErrorResponse struct {
	OK     bool                         `json:"ok"`
	Errors []apperrors.ValidationDetail `json:"errors"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		OK:     false,
		Errors: details,
	})
}

func (c *OrderController) writeServerError(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusInternalServerError, okResponse{OK: false})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

package table

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"comanda/internal/domain"
	"comanda/internal/dto"
	apperrors "comanda/internal/errors"
)

type Repository interface {
	FindByComercial(ctx context.Context, idComercial int) ([]domain.Table, error)
	FindAvailableByComercial(ctx context.Context, idComercial int) ([]domain.Table, error)
	FindByID(ctx context.Context, id int) (*domain.Table, error)
	Insert(ctx context.Context, t *domain.Table) error
	Update(ctx context.Context, id int, values map[string]interface{}) (*domain.Table, error)
}

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{idComercial}", c.HandleListByComercial)
	r.Get("/available/{idComercial}", c.HandleListAvailable)
	r.Get("/one/{id}", c.HandleGet)
	r.Post("/", c.HandleCreate)
	r.Put("/{id}", c.HandleUpdate)
	r.Delete("/{id}", c.HandleDelete)
	return r
}

func (c *Controller) HandleListByComercial(w http.ResponseWriter, r *http.Request) {
	c.handleList(w, r, c.repo.FindByComercial)
}

func (c *Controller) HandleListAvailable(w http.ResponseWriter, r *http.Request) {
	c.handleList(w, r, c.repo.FindAvailableByComercial)
}

func (c *Controller) handleList(w http.ResponseWriter, r *http.Request, list func(context.Context, int) ([]domain.Table, error)) {
	logger := c.requestLogger(r)

	idComercial, err := strconv.Atoi(chi.URLParam(r, "idComercial"))
	if err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "idComercial",
			Message: "idComercial must be an integer",
		})
		return
	}

	tables, err := list(r.Context(), idComercial)
	if err != nil {
		logger.Error("listing tables failed", zap.Int("idComercial", idComercial), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, collectionResponse{
		OK:         true,
		Collection: dto.NewCountedCollection(tables, len(tables)),
	})
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.tableIDFromPath(w, r)
	if !ok {
		return
	}

	t, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "table with id " + strconv.Itoa(id) + " does not exist",
			})
			return
		}
		logger.Error("fetching table failed", zap.Int("idMesa", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, tableResponse{OK: true, Table: t})
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	var req dto.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.IDComercial == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "idComercial",
			Message: "idComercial is required and must be an integer",
		})
	}
	if req.Numero == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "numero",
			Message: "numero is required and must be an integer",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, details...)
		return
	}

	t := domain.Table{
		IDComercial: *req.IDComercial,
		Numero:      *req.Numero,
		Disponible:  true,
	}
	if req.Disponible != nil {
		t.Disponible = *req.Disponible
	}

	if err := c.repo.Insert(r.Context(), &t); err != nil {
		logger.Error("creating table failed", zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, tableResponse{OK: true, Table: &t})
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.tableIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	values := map[string]interface{}{}
	if req.Numero != nil {
		values["numero"] = *req.Numero
	}
	if req.Disponible != nil {
		values["disponible"] = *req.Disponible
	}

	t, err := c.repo.Update(r.Context(), id, values)
	if err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "table with id " + strconv.Itoa(id) + " does not exist",
			})
			return
		}
		logger.Error("updating table failed", zap.Int("idMesa", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, tableResponse{OK: true, Table: t})
}

// HandleDelete acknowledges without removing anything, same as the order
// delete flow.
func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	id, ok := c.tableIDFromPath(w, r)
	if !ok {
		return
	}

	if _, err := c.repo.FindByID(r.Context(), id); err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			c.writeValidationError(w, apperrors.ValidationDetail{
				Field:   "id",
				Message: "table with id " + strconv.Itoa(id) + " does not exist",
			})
			return
		}
		logger.Error("fetching table failed", zap.Int("idMesa", id), zap.Error(err))
		c.writeServerError(w)
		return
	}

	logger.Warn("table delete requested, nothing removed", zap.Int("idMesa", id))
	c.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (c *Controller) tableIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		c.writeValidationError(w, apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be an integer",
		})
		return 0, false
	}
	return id, true
}

func (c *Controller) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(
		zap.String("traceId", uuid.New().String()),
		zap.String("path", r.URL.Path),
	)
}

type collectionResponse struct {
	OK         bool           `json:"ok"`
	Collection dto.Collection `json:"collection"`
}

type tableResponse struct {
	OK    bool          `json:"ok"`
	Table *domain.Table `json:"table"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type validationErrorResponse struct {
	OK     bool                         `json:"ok"`
	Errors []apperrors.ValidationDetail `json:"errors"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		OK:     false,
		Errors: details,
	})
}

func (c *Controller) writeServerError(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusInternalServerError, okResponse{OK: false})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

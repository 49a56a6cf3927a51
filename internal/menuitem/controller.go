package menuitem

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
	FindByComercial(ctx context.Context, idComercial int) ([]domain.MenuItem, error)
	Exists(ctx context.Context, id int) (bool, error)
	UpdateDisponibilidad(ctx context.Context, id int, disponible bool) (*domain.MenuItem, error)
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
	return r
}

func (c *Controller) HandleListByComercial(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	idComercial, err := strconv.Atoi(chi.URLParam(r, "idComercial"))
	if err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"ok": false,
			"errors": []apperrors.ValidationDetail{{
				Field:   "idComercial",
				Message: "idComercial must be an integer",
			}},
		})
		return
	}

	items, err := c.repo.FindByComercial(r.Context(), idComercial)
	if err != nil {
		logger.Error("listing menu items failed", zap.Int("idComercial", idComercial), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]bool{"ok": false})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"collection": dto.NewCountedCollection(items, len(items)),
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

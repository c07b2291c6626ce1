package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/item-api/internal/api/shared"
	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/logger"
)

// ItemProcessor runs a batch over every stored item.
// *service.ItemProcessor implements it.
type ItemProcessor interface {
	ProcessAll(ctx context.Context) ([]*domain.Item, error)
}

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	processor ItemProcessor
	logger    *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(processor ItemProcessor, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemHandler{
		processor: processor,
		logger:    logger.With("component", "item_handler"),
	}
}

// ProcessItems handles GET /api/items/process requests.
// It responds 200 with the processed items, or 500 with an empty body if
// the batch failed.
func (h *ItemHandler) ProcessItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	items, err := h.processor.ProcessAll(r.Context())
	if err != nil {
		shared.RespondWithStatusAndLog(w, r, http.StatusInternalServerError, err)
		return
	}

	log.Info("items processed", "count", len(items))
	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}

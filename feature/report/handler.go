package report

import (
	"errors"
	"io/fs"
	"strings"

	"comics-etl/core/dataset"
	"comics-etl/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxLimit caps the page size of list endpoints.
const maxLimit = 1000

// Handler handles HTTP requests for the result tables.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)

	group := app.Group("/results")
	group.Get("/", h.HandleResults)
	group.Get("/discrepancies", h.HandleDiscrepancies)
	group.Get("/summary", h.HandleSummary)
	group.Get("/:id", h.HandleCharacter)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleResults lists aggregated characters.
// Query: name (case-insensitive substring), limit, offset.
func (h *Handler) HandleResults(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		return h.loadError(c, err)
	}

	rows := snap.Results
	if name := strings.ToLower(c.Query("name")); name != "" {
		filtered := make([]dataset.ResultRow, 0)
		for _, r := range rows {
			if strings.Contains(strings.ToLower(r.Name), name) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	return h.page(c, rows)
}

// HandleDiscrepancies lists characters with a positive difference, largest first.
func (h *Handler) HandleDiscrepancies(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		return h.loadError(c, err)
	}
	return h.page(c, snap.Discrepancies)
}

// HandleSummary returns counts over the result tables.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		return h.loadError(c, err)
	}
	return c.JSON(fiber.Map{
		"summary":   snap.Summary,
		"loaded_at": snap.LoadedAt,
	})
}

// HandleCharacter returns every result row of one character id.
func (h *Handler) HandleCharacter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "character id must be an integer",
		})
	}

	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		return h.loadError(c, err)
	}

	var rows []dataset.ResultRow
	for _, r := range snap.Results {
		if r.CharacterID == id {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "character not found",
		})
	}
	return c.JSON(rows)
}

// loadError writes the response for a failed snapshot load.
func (h *Handler) loadError(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.service.logger, c)

	if errors.Is(err, fs.ErrNotExist) {
		l.Warn("Result tables not found", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no results available, run the pipeline first",
		})
	}

	l.Error("Failed to load result tables", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (h *Handler) page(c *fiber.Ctx, rows []dataset.ResultRow) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	total := len(rows)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"total":  total,
		"offset": offset,
		"limit":  limit,
		"items":  rows[offset:end],
	})
}

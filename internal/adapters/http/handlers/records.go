package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/go-container-controller/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-container-controller/internal/app/container"
	"github.com/jsamuelsen/go-container-controller/internal/domain"
	"github.com/jsamuelsen/go-container-controller/internal/platform/logging"
)

// RecordsHandler exposes the controller over HTTP. Mutations run as
// background tasks on the work context named by the :key path parameter;
// reads go through the main context.
type RecordsHandler struct {
	controller *container.Controller
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(controller *container.Controller) *RecordsHandler {
	return &RecordsHandler{controller: controller}
}

// Create handles POST /api/v1/groups/:key/records.
// Answers 201 with the stored record once the save committed.
func (h *RecordsHandler) Create(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.mutate(c, http.StatusCreated, func(_ context.Context, wc *container.WorkContext) *domain.Record {
		if req.ID == "" {
			return wc.Insert(req.Entity, req.Attributes)
		}

		rec := &domain.Record{Entity: req.Entity, ID: req.ID, Attributes: req.Attributes}
		wc.InsertRecord(rec)

		return rec
	})
}

// Update handles PUT /api/v1/groups/:key/records/:entity/:id.
func (h *RecordsHandler) Update(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	rec := &domain.Record{Entity: c.Param("entity"), ID: c.Param("id"), Attributes: req.Attributes}

	h.mutate(c, http.StatusOK, func(_ context.Context, wc *container.WorkContext) *domain.Record {
		wc.Update(rec)
		return rec
	})
}

// Delete handles DELETE /api/v1/groups/:key/records/:entity/:id.
func (h *RecordsHandler) Delete(c *gin.Context) {
	entity, id := c.Param("entity"), c.Param("id")

	h.mutate(c, http.StatusOK, func(_ context.Context, wc *container.WorkContext) *domain.Record {
		wc.Delete(entity, id)
		return nil
	})
}

type mutation func(ctx context.Context, wc *container.WorkContext) *domain.Record

// mutate runs fn followed by a save on the group's background context and
// waits for the save result or the request deadline. A deadline answers
// 504; the task still completes in the background.
func (h *RecordsHandler) mutate(c *gin.Context, successStatus int, fn mutation) {
	var query dto.MutationQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	action := container.SaveErrorActionRollback
	if query.OnError == container.SaveErrorActionNone.String() {
		action = container.SaveErrorActionNone
	}

	key := c.Param("key")
	ctx := logging.WithGroupKey(c.Request.Context(), key)

	var (
		rec    *domain.Record
		staged bool
	)

	done := make(chan container.SaveResult, 1)

	h.controller.PerformBackgroundTaskAndSave(ctx, key,
		func(ctx context.Context, wc *container.WorkContext) {
			rec = fn(ctx, wc)
			staged = wc.HasChanges()
		},
		container.WithErrorAction(action),
		container.WithCompletion(func(r container.SaveResult) { done <- r }),
	)

	select {
	case result := <-done:
		if saveErr, failed := result.(container.SaveError); failed {
			logging.FromContext(ctx).WarnContext(ctx, "background save failed",
				slog.String("on_error", action.String()),
				slog.Any("error", saveErr.Cause),
			)
			dto.HandleError(c, saveErr)

			return
		}

		resp := dto.MutationResponse{Group: key, Result: dto.ResultSaved}
		if !staged {
			resp.Result = dto.ResultNoop
		}

		if rec != nil {
			r := dto.NewRecordResponse(rec)
			resp.Record = &r
		}

		c.JSON(successStatus, resp)

	case <-ctx.Done():
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.NewErrorResponse(
			dto.ErrorCodeTimeout,
			"save did not complete before the request deadline",
		).WithTraceID(dto.GetTraceID(c)))
	}
}

// Get handles GET /api/v1/records/:entity/:id.
func (h *RecordsHandler) Get(c *gin.Context) {
	rec, err := h.controller.MainContext().Fetch(c.Request.Context(), c.Param("entity"), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRecordResponse(rec))
}

// List handles GET /api/v1/records/:entity with cursor pagination over
// record IDs.
func (h *RecordsHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.HandleError(c, err)
		return
	}

	after, err := page.After()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	records, err := h.controller.MainContext().List(c.Request.Context(), c.Param("entity"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Paginate(dto.NewRecordResponses(records), after, page.GetLimit(),
		func(r dto.RecordResponse) string { return r.ID }))
}

// RegisterRoutes registers the records API on rg:
//   - POST   /groups/:key/records
//   - PUT    /groups/:key/records/:entity/:id
//   - DELETE /groups/:key/records/:entity/:id
//   - GET    /records/:entity
//   - GET    /records/:entity/:id
func (h *RecordsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	groups := rg.Group("/groups/:key/records")
	groups.POST("", h.Create)
	groups.PUT("/:entity/:id", h.Update)
	groups.DELETE("/:entity/:id", h.Delete)

	records := rg.Group("/records")
	records.GET("/:entity", h.List)
	records.GET("/:entity/:id", h.Get)
}

package opening

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler wires JSON endpoints for opening balances.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{entityID}", h.Get)
	r.Post("/", h.Create)
}

type openingLineRequest struct {
	AccountID int64           `json:"account_id" validate:"required"`
	Debit     journals.Amount `json:"debit"`
	Credit    journals.Amount `json:"credit"`
}

type postOpeningRequest struct {
	EntityID int64                `json:"entity_id" validate:"required"`
	AsOfDate string               `json:"as_of_date" validate:"required,datetime=2006-01-02"`
	Lines    []openingLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type openingResponse struct {
	ID        int64  `json:"id"`
	EntityID  int64  `json:"entity_id"`
	JournalID int64  `json:"journal_id"`
	AsOfDate  string `json:"as_of_date"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	entityID, err := strconv.ParseInt(chi.URLParam(r, "entityID"), 10, 64)
	if err != nil || entityID == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entity id")
		return
	}
	balance, err := h.service.GetByEntity(r.Context(), entityID)
	if err != nil {
		h.logger.Error("get opening balance", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if balance == nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, toOpeningResponse(*balance))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req postOpeningRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	asOf, err := time.Parse("2006-01-02", req.AsOfDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "as_of_date must be YYYY-MM-DD")
		return
	}

	lines := make([]LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, LineInput{
			AccountID: line.AccountID,
			Debit:     float64(line.Debit),
			Credit:    float64(line.Credit),
		})
	}

	balance, err := h.service.Post(r.Context(), PostingInput{
		EntityID: req.EntityID,
		AsOfDate: asOf,
		PostedBy: actorID(r),
		Lines:    lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrUnbalanced):
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		case errors.Is(err, shared.ErrOpeningExists):
			httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
		case errors.Is(err, shared.ErrInvalidPeriod), errors.Is(err, shared.ErrPeriodLocked):
			httpx.Problem(w, http.StatusUnprocessableEntity, "Posting Rejected", err.Error())
		default:
			h.logger.Error("post opening balance", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, toOpeningResponse(balance))
}

func toOpeningResponse(balance OpeningBalance) openingResponse {
	return openingResponse{
		ID:        balance.ID,
		EntityID:  balance.EntityID,
		JournalID: balance.JournalID,
		AsOfDate:  balance.AsOfDate.Format("2006-01-02"),
	}
}

func actorID(r *http.Request) int64 {
	sess := internalShared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, err := strconv.ParseInt(sess.User(), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

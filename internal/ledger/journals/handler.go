package journals

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler wires JSON endpoints for journal posting.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/void", h.Void)
	r.Post("/{id}/reverse", h.Reverse)
}

type journalLineRequest struct {
	AccountID int64  `json:"account_id" validate:"required"`
	Debit     Amount `json:"debit"`
	Credit    Amount `json:"credit"`
}

type postJournalRequest struct {
	EntityID int64                `json:"entity_id" validate:"required"`
	PeriodID int64                `json:"period_id" validate:"required"`
	Date     string               `json:"date" validate:"required,datetime=2006-01-02"`
	Memo     string               `json:"memo"`
	Lines    []journalLineRequest `json:"lines" validate:"required,min=2,dive"`
}

type journalLineResponse struct {
	AccountID int64   `json:"account_id"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

type journalResponse struct {
	ID           int64                 `json:"id"`
	Number       int64                 `json:"number"`
	EntityID     int64                 `json:"entity_id"`
	PeriodID     int64                 `json:"period_id"`
	Date         string                `json:"date"`
	SourceModule string                `json:"source_module"`
	Memo         string                `json:"memo"`
	Status       string                `json:"status"`
	Lines        []journalLineResponse `json:"lines,omitempty"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entityID, err := strconv.ParseInt(r.URL.Query().Get("entity_id"), 10, 64)
	if err != nil || entityID == 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "entity_id query parameter required")
		return
	}
	entries, err := h.service.List(r.Context(), entityID)
	if err != nil {
		h.logger.Error("list journals", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	meta := internalShared.NewPagination(page, perPage, len(entries))
	start := (meta.Page - 1) * meta.PerPage
	if start > len(entries) {
		start = len(entries)
	}
	end := start + meta.PerPage
	if end > len(entries) {
		end = len(entries)
	}

	out := make([]journalResponse, 0, end-start)
	for _, entry := range entries[start:end] {
		out = append(out, toJournalResponse(entry))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"journals": out, "pagination": meta})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req postJournalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}

	lines := make([]PostingLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, PostingLineInput{
			AccountID: line.AccountID,
			Debit:     float64(line.Debit),
			Credit:    float64(line.Credit),
		})
	}

	entry, err := h.service.PostJournal(r.Context(), PostingInput{
		EntityID:     req.EntityID,
		PeriodID:     req.PeriodID,
		Date:         date,
		SourceModule: SourceManual,
		SourceID:     uuid.New(),
		Memo:         req.Memo,
		PostedBy:     actorID(r),
		Lines:        lines,
	})
	if err != nil {
		h.respondDomainError(w, "post journal", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toJournalResponse(entry))
}

func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid journal id")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = httpx.DecodeJSON(r, &req)
	entry, err := h.service.VoidJournal(r.Context(), VoidInput{
		EntryID: entryID,
		ActorID: actorID(r),
		Reason:  req.Reason,
	})
	if err != nil {
		h.respondDomainError(w, "void journal", err)
		return
	}
	httpx.JSON(w, http.StatusOK, toJournalResponse(entry))
}

func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	entryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid journal id")
		return
	}
	var req struct {
		Memo       string `json:"memo"`
		Override   bool   `json:"override"`
		TargetDate string `json:"target_date"`
	}
	_ = httpx.DecodeJSON(r, &req)
	input := ReverseInput{
		EntryID:  entryID,
		ActorID:  actorID(r),
		Memo:     req.Memo,
		Override: req.Override,
	}
	if req.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "target_date must be YYYY-MM-DD")
			return
		}
		input.TargetDate = &parsed
	}
	entry, err := h.service.ReverseJournal(r.Context(), input)
	if err != nil {
		h.respondDomainError(w, "reverse journal", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toJournalResponse(entry))
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrUnbalanced),
		errors.Is(err, shared.ErrTooFewLines),
		errors.Is(err, shared.ErrDateOutOfRange):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidPeriod),
		errors.Is(err, shared.ErrPeriodLocked),
		errors.Is(err, shared.ErrInvalidStatus):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Posting Rejected", err.Error())
	case errors.Is(err, shared.ErrSourceAlreadyLinked):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrJournalNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func toJournalResponse(entry JournalEntry) journalResponse {
	out := journalResponse{
		ID:           entry.ID,
		Number:       entry.Number,
		EntityID:     entry.EntityID,
		PeriodID:     entry.PeriodID,
		Date:         entry.Date.Format("2006-01-02"),
		SourceModule: entry.SourceModule,
		Memo:         entry.Memo,
		Status:       string(entry.Status),
	}
	for _, line := range entry.Lines {
		out.Lines = append(out.Lines, journalLineResponse{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
		})
	}
	return out
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

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
	"github.com/JoeShih716/go-mem-point/internal/httpx"
	"github.com/JoeShih716/go-mem-point/internal/logger"
	"github.com/JoeShih716/go-mem-point/internal/middleware"
)

const (
	msgCheckID       = "Check Id."
	msgAmountOver    = "Amount Over 1"
	msgInvalidAmount = "Invalid Amount."
)

type userPointResponse struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

type historyResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Amount       int64  `json:"amount"`
	Type         string `json:"type"`
	UpdateMillis int64  `json:"updateMillis"`
}

type Handler struct {
	core   usecase.PointService
	logger logger.Logger
}

func NewHandler(core usecase.PointService, log logger.Logger) *Handler {
	return &Handler{
		core:   core,
		logger: log,
	}
}

// GetPoint GET /point/{id}
func (h *Handler) GetPoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.core.GetPoint(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserPointResponse(p))
}

// History GET /point/{id}/histories
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.core.History(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	resp := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, historyResponse{
			ID:           e.ID,
			UserID:       e.UserID,
			Amount:       e.Amount,
			Type:         e.Type.String(),
			UpdateMillis: e.UpdateMillis,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Charge PATCH /point/{id}/charge，body 是單純的 JSON 整數
func (h *Handler) Charge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.core.Charge)
}

// Use PATCH /point/{id}/use，body 是單純的 JSON 整數
func (h *Handler) Use(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.core.Use)
}

type mutation func(ctx context.Context, userID int64, amount int64) (domain.UserPoint, error)

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, apply mutation) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	// body 必須只有一個整數，"5 6" 之類多餘的 token 也算格式錯誤
	var amount int64
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&amount); err != nil || dec.More() {
		httpx.BadRequest(w, msgInvalidAmount)
		return
	}
	if amount < 0 {
		httpx.BadRequest(w, msgAmountOver)
		return
	}
	p, err := apply(r.Context(), id, amount)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserPointResponse(p))
}

// writeErr 業務錯誤 400 並回傳訊息，其餘 500
func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrValidation) {
		httpx.BadRequest(w, err.Error())
		return
	}
	h.logger.Error("point request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFrom(r.Context()),
		"error", err,
	)
	httpx.InternalError(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		httpx.BadRequest(w, msgCheckID)
		return 0, false
	}
	return id, true
}

func toUserPointResponse(p domain.UserPoint) userPointResponse {
	return userPointResponse{
		ID:           p.ID,
		Point:        p.Point,
		UpdateMillis: p.UpdateMillis,
	}
}

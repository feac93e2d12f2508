package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/queue"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
	queue_publisher "github.com/lehoangphuc/notary-office-server/internal/service"
)

// FileHandler serves the notary file (record) endpoints.
type FileHandler struct {
	Files *repository.FileRepo
}

func NewFileHandler(f *repository.FileRepo) *FileHandler { return &FileHandler{Files: f} }

type createFileReq struct {
	TemplateID   *uint64  `json:"templateId"`
	Title        string   `json:"title"`
	ContractDate *string  `json:"contractDate"` // YYYY-MM-DD
	PartyIDs     []uint64 `json:"partyIds"`
	AssetIDs     []uint64 `json:"assetIds"`
	NotaryFeeVND int64    `json:"notaryFeeVnd"`
	OtherFeesVND int64    `json:"otherFeesVnd"`
}

// Create handles POST /api/files. The file number is allocated
// server-side; the record starts as an unpaid draft.
func (h *FileHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createFileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.NotaryFeeVND < 0 || req.OtherFeesVND < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fees must not be negative"})
	}
	if req.ContractDate != nil {
		if s := strings.TrimSpace(*req.ContractDate); s != "" {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract date, expected YYYY-MM-DD"})
			}
			req.ContractDate = &s
		} else {
			req.ContractDate = nil
		}
	}
	if tid := req.TemplateID; tid != nil && *tid == 0 {
		req.TemplateID = nil
	}
	// A repeated id would trip the join-table primary key and read as a
	// retryable duplicate inside the create transaction.
	req.PartyIDs = dedupeIDs(req.PartyIDs)
	req.AssetIDs = dedupeIDs(req.AssetIDs)

	f := model.NotaryFile{
		TemplateID:   req.TemplateID,
		Title:        req.Title,
		ContractDate: req.ContractDate,
		NotaryFeeVND: req.NotaryFeeVND,
		OtherFeesVND: req.OtherFeesVND,
		CreatedBy:    uid,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.Files.Create(ctx, &f, req.PartyIDs, req.AssetIDs); err != nil {
		switch err {
		case repository.ErrPartyNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party not found"})
		case repository.ErrAssetNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "asset not found"})
		}
		if isTemplateFK(err) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create file failed"})
	}

	created, err := h.Files.GetByID(ctx, f.ID)
	if err != nil {
		// The row exists; fall back to what we have.
		return c.JSON(http.StatusCreated, f)
	}
	return c.JSON(http.StatusCreated, created)
}

// isTemplateFK detects a foreign-key failure on the template reference.
func isTemplateFK(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}

// dedupeIDs drops repeated ids while keeping first-seen order.
func dedupeIDs(ids []uint64) []uint64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// List handles GET /api/files with search, status filter and pagination.
func (h *FileHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	q := repository.FileSearchQuery{
		Search: c.QueryParam("search"),
		Status: strings.TrimSpace(c.QueryParam("status")),
		Page:   page,
		Limit:  limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, total, err := h.Files.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"pagination": newPagination(page, limit, total),
	})
}

// Get handles GET /api/files/:id, returning the record with its
// parties and assets.
func (h *FileHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrFileNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, f)
}

// UpdateStatus handles PATCH /api/files/:id/status. Transitions are
// checked against the lifecycle graph; reaching completed publishes a
// notarization event for the audit consumer. Publishing is best-effort
// and never fails the request.
func (h *FileHandler) UpdateStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Files.UpdateStatus(ctx, id, body.Status, uid); err != nil {
		switch err {
		case repository.ErrFileNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		case repository.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if body.Status == model.StatusCompleted {
		ev := queue.FileNotarizedEvent{
			FileID:      f.ID,
			FileNumber:  f.FileNumber,
			Title:       f.Title,
			TotalFeeVND: f.TotalFeeVND,
			NotarizedBy: uid,
			PartyCount:  len(f.Parties),
			AssetCount:  len(f.Assets),
			NotarizedAt: time.Now().UTC().Format(time.RFC3339),
		}
		_ = queue_publisher.PublishFileNotarized(c.Request().Context(), ev)
	}
	return c.JSON(http.StatusOK, f)
}

// UpdatePayment handles PATCH /api/files/:id/payment.
func (h *FileHandler) UpdatePayment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidPaymentStatus(body.PaymentStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Files.UpdatePayment(ctx, id, body.PaymentStatus); err != nil {
		if err == repository.ErrFileNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update payment failed"})
	}

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, f)
}

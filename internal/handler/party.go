package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// PartyHandler serves the party registry endpoints.
type PartyHandler struct {
	Parties *repository.PartyRepo
}

func NewPartyHandler(p *repository.PartyRepo) *PartyHandler { return &PartyHandler{Parties: p} }

// partyReq is the request body for creating or updating a party.
// Pointer fields distinguish "absent" from "empty" so updates only
// touch the fields the client sent.
type partyReq struct {
	Type                   *string `json:"type"`
	FullName               *string `json:"fullName"`
	CitizenID              *string `json:"citizenId"`
	TaxCode                *string `json:"taxCode"`
	Phone                  *string `json:"phone"`
	Email                  *string `json:"email"`
	Address                *string `json:"address"`
	BirthDate              *string `json:"birthDate"` // YYYY-MM-DD
	BirthPlace             *string `json:"birthPlace"`
	Gender                 *string `json:"gender"`
	Nationality            *string `json:"nationality"`
	Occupation             *string `json:"occupation"`
	RepresentativeName     *string `json:"representativeName"`
	RepresentativePosition *string `json:"representativePosition"`
	BankAccount            *string `json:"bankAccount"`
	BankName               *string `json:"bankName"`
	Notes                  *string `json:"notes"`
}

// applyTo merges the request into a party record. Only fields present
// in the JSON body are written.
func (req *partyReq) applyTo(p *model.Party) error {
	if req.Type != nil {
		p.Type = strings.TrimSpace(*req.Type)
	}
	if req.FullName != nil {
		p.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.CitizenID != nil {
		p.CitizenID = trimmedOrNil(*req.CitizenID)
	}
	if req.TaxCode != nil {
		p.TaxCode = trimmedOrNil(*req.TaxCode)
	}
	if req.Phone != nil {
		p.Phone = trimmedOrNil(*req.Phone)
	}
	if req.Email != nil {
		p.Email = trimmedOrNil(*req.Email)
	}
	if req.Address != nil {
		p.Address = trimmedOrNil(*req.Address)
	}
	if req.BirthDate != nil {
		if s := strings.TrimSpace(*req.BirthDate); s == "" {
			p.BirthDate = nil
		} else {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return err
			}
			p.BirthDate = &t
		}
	}
	if req.BirthPlace != nil {
		p.BirthPlace = trimmedOrNil(*req.BirthPlace)
	}
	if req.Gender != nil {
		p.Gender = trimmedOrNil(*req.Gender)
	}
	if req.Nationality != nil && strings.TrimSpace(*req.Nationality) != "" {
		p.Nationality = strings.TrimSpace(*req.Nationality)
	}
	if req.Occupation != nil {
		p.Occupation = trimmedOrNil(*req.Occupation)
	}
	if req.RepresentativeName != nil {
		p.RepresentativeName = trimmedOrNil(*req.RepresentativeName)
	}
	if req.RepresentativePosition != nil {
		p.RepresentativePosition = trimmedOrNil(*req.RepresentativePosition)
	}
	if req.BankAccount != nil {
		p.BankAccount = trimmedOrNil(*req.BankAccount)
	}
	if req.BankName != nil {
		p.BankName = trimmedOrNil(*req.BankName)
	}
	if req.Notes != nil {
		p.Notes = trimmedOrNil(*req.Notes)
	}
	return nil
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// checkDuplicates runs the advisory uniqueness pre-checks so the user
// gets a precise message; the unique indexes stay authoritative.
func (h *PartyHandler) checkDuplicates(ctx context.Context, p *model.Party) (string, error) {
	if p.CitizenID != nil {
		taken, err := h.Parties.CitizenIDTaken(ctx, *p.CitizenID, p.ID)
		if err != nil {
			return "", err
		}
		if taken {
			return "citizen id already exists", nil
		}
	}
	if p.TaxCode != nil {
		taken, err := h.Parties.TaxCodeTaken(ctx, *p.TaxCode, p.ID)
		if err != nil {
			return "", err
		}
		if taken {
			return "tax code already exists", nil
		}
	}
	return "", nil
}

// Create handles POST /api/parties.
func (h *PartyHandler) Create(c echo.Context) error {
	var req partyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	p := model.Party{Nationality: "Việt Nam"}
	if err := req.applyTo(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birth date, expected YYYY-MM-DD"})
	}
	if p.Type != model.PartyIndividual && p.Type != model.PartyOrganization {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be individual or organization"})
	}
	if p.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if msg, err := h.checkDuplicates(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Parties.Create(ctx, &p); err != nil {
		switch err {
		case repository.ErrDuplicateCitizenID:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "citizen id already exists"})
		case repository.ErrDuplicateTaxCode:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create party failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /api/parties with search, type filter and pagination.
func (h *PartyHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	q := repository.PartySearchQuery{
		Search: c.QueryParam("search"),
		Type:   c.QueryParam("type"),
		Page:   page,
		Limit:  limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, total, err := h.Parties.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"pagination": newPagination(page, limit, total),
	})
}

// Get handles GET /api/parties/:id.
func (h *PartyHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	p, err := h.Parties.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPartyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "party not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/parties/:id with a partial body.
func (h *PartyHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req partyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Parties.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPartyNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "party not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := req.applyTo(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid birth date, expected YYYY-MM-DD"})
	}
	if p.Type != model.PartyIndividual && p.Type != model.PartyOrganization {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be individual or organization"})
	}
	if p.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName is required"})
	}

	if msg, err := h.checkDuplicates(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Parties.Update(ctx, &p); err != nil {
		switch err {
		case repository.ErrPartyNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "party not found"})
		case repository.ErrDuplicateCitizenID:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "citizen id already exists"})
		case repository.ErrDuplicateTaxCode:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tax code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update party failed"})
	}
	return c.JSON(http.StatusOK, p)
}

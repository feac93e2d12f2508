package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/config"
	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// SeedHandler populates an empty database with a starter data set:
// two accounts, the standard template categories, one sample template
// and a sample party/asset pair. It refuses to run once any user
// exists, so it cannot clobber a live installation.
type SeedHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Parties   *repository.PartyRepo
	Assets    *repository.AssetRepo
	Templates *repository.TemplateRepo
}

func NewSeedHandler(cfg config.Config, u *repository.UserRepo, p *repository.PartyRepo,
	a *repository.AssetRepo, t *repository.TemplateRepo) *SeedHandler {
	return &SeedHandler{Cfg: cfg, Users: u, Parties: p, Assets: a, Templates: t}
}

// Seed handles POST /api/seed. Passwords come from the environment,
// never from the request body or hard-coded defaults.
func (h *SeedHandler) Seed(c echo.Context) error {
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	userPass := os.Getenv("SEED_USER_PASSWORD")
	if adminPass == "" || userPass == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "SEED_ADMIN_PASSWORD and SEED_USER_PASSWORD must be set",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	n, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if n > 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "database already seeded"})
	}

	adminID, err := h.Users.Create(ctx, "admin", "admin@notary.local", adminPass,
		"Quản trị viên", model.RoleAdmin, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed users failed"})
	}
	if _, err := h.Users.Create(ctx, "congchungvien", "ccv@notary.local", userPass,
		"Công chứng viên", model.RoleUser, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed users failed"})
	}

	categories := []model.Category{
		{Name: "Hợp đồng mua bán", Description: strPtr("Mua bán nhà đất, xe cộ và tài sản khác"), SortOrder: 1},
		{Name: "Hợp đồng tặng cho", Description: strPtr("Tặng cho quyền sử dụng đất và tài sản"), SortOrder: 2},
		{Name: "Hợp đồng ủy quyền", Description: strPtr("Ủy quyền quản lý, định đoạt tài sản"), SortOrder: 3},
		{Name: "Di chúc và thừa kế", Description: strPtr("Di chúc, khai nhận và phân chia di sản"), SortOrder: 4},
	}
	for i := range categories {
		if err := h.Templates.CreateCategory(ctx, &categories[i]); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed categories failed"})
		}
	}

	tpl := model.Template{
		Name:       "Hợp đồng mua bán nhà ở",
		CategoryID: &categories[0].ID,
		TemplateContent: "HỢP ĐỒNG MUA BÁN NHÀ Ở\n\n" +
			"Bên bán: {{ben_ban}}, CMND/CCCD số {{cccd_ben_ban}}\n" +
			"Bên mua: {{ben_mua}}, CMND/CCCD số {{cccd_ben_mua}}\n\n" +
			"Hai bên thỏa thuận mua bán nhà ở tại địa chỉ {{dia_chi}} " +
			"với giá {{gia_ban}} đồng.\n\n" +
			"Ghi chú: {{ghi_chu}}",
		RequiredFields: []string{"ben_ban", "cccd_ben_ban", "ben_mua", "cccd_ben_mua", "dia_chi", "gia_ban"},
		VariableFields: []string{"ghi_chu"},
		IsActive:       true,
		CreatedBy:      adminID,
	}
	if err := h.Templates.Create(ctx, &tpl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed template failed"})
	}

	party := model.Party{
		Type:        model.PartyIndividual,
		FullName:    "Nguyễn Văn An",
		CitizenID:   strPtr("079089001234"),
		Phone:       strPtr("0903123456"),
		Address:     strPtr("123 Lê Lợi, Quận 1, TP. Hồ Chí Minh"),
		Nationality: "Việt Nam",
	}
	if err := h.Parties.Create(ctx, &party); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed party failed"})
	}

	area := "85.50"
	value := int64(3_500_000_000)
	asset := model.Asset{
		Type:              "real_estate",
		Name:              "Căn hộ chung cư Sunrise City",
		Location:          strPtr("Quận 7, TP. Hồ Chí Minh"),
		AreaM2:            &area,
		CertificateNumber: strPtr("CS-2023-045678"),
		MarketValueVND:    &value,
		OwnerID:           &party.ID,
	}
	if err := h.Assets.Create(ctx, &asset); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed asset failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "seed completed",
		"users":      2,
		"categories": len(categories),
		"templates":  1,
		"parties":    1,
		"assets":     1,
	})
}

func strPtr(s string) *string { return &s }

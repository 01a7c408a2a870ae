package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves categories, activities, banners, promos and payment
// methods. Reads are public; writes are mounted under /admin.
type CatalogHandler struct {
	category    usecase.CategoryService
	activity    usecase.ActivityService
	banner      usecase.BannerService
	promo       usecase.PromoService
	transaction usecase.TransactionService
	log         *zap.Logger
}

func NewCatalogHandler(service *usecase.Service, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		category:    service.Category,
		activity:    service.Activity,
		banner:      service.Banner,
		promo:       service.Promo,
		transaction: service.Transaction,
		log:         log.With(zap.String("handler", "catalog")),
	}
}

// ==================== CATEGORIES ====================

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.category.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get categories")
		return
	}
	utils.ResponseSuccess(w, "success", categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.category.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get category")
		return
	}
	utils.ResponseSuccess(w, "success", category)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.category.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create category")
		return
	}
	utils.ResponseCreated(w, "Category created", category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.category.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update category")
		return
	}
	utils.ResponseSuccess(w, "Category updated", category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.category.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete category")
		return
	}
	utils.ResponseSuccess(w, "Category deleted", nil)
}

// ==================== ACTIVITIES ====================

// GetActivities handles GET /api/v1/activities?category_id=&search=&page=&per_page=
func (h *CatalogHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ActivityListRequest{
		PaginatedRequest: request.PageFromQuery(query, 10),
		CategoryID:       query.Get("category_id"),
		Search:           query.Get("search"),
	}

	activities, err := h.activity.GetAll(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get activities")
		return
	}
	utils.ResponseSuccess(w, "success", activities)
}

func (h *CatalogHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.activity.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get activity")
		return
	}
	utils.ResponseSuccess(w, "success", activity)
}

func (h *CatalogHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req request.ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activity, err := h.activity.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create activity")
		return
	}
	utils.ResponseCreated(w, "Activity created", activity)
}

func (h *CatalogHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req request.ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activity, err := h.activity.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update activity")
		return
	}
	utils.ResponseSuccess(w, "Activity updated", activity)
}

func (h *CatalogHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.activity.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete activity")
		return
	}
	utils.ResponseSuccess(w, "Activity deleted", nil)
}

// ==================== BANNERS ====================

func (h *CatalogHandler) GetBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banner.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get banners")
		return
	}
	utils.ResponseSuccess(w, "success", banners)
}

func (h *CatalogHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	banner, err := h.banner.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get banner")
		return
	}
	utils.ResponseSuccess(w, "success", banner)
}

func (h *CatalogHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var req request.BannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.banner.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create banner")
		return
	}
	utils.ResponseCreated(w, "Banner created", banner)
}

func (h *CatalogHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req request.BannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.banner.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update banner")
		return
	}
	utils.ResponseSuccess(w, "Banner updated", banner)
}

func (h *CatalogHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.banner.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete banner")
		return
	}
	utils.ResponseSuccess(w, "Banner deleted", nil)
}

// ==================== PROMOS ====================

func (h *CatalogHandler) GetPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.promo.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get promos")
		return
	}
	utils.ResponseSuccess(w, "success", promos)
}

func (h *CatalogHandler) GetPromo(w http.ResponseWriter, r *http.Request) {
	promo, err := h.promo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get promo")
		return
	}
	utils.ResponseSuccess(w, "success", promo)
}

func (h *CatalogHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req request.PromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	promo, err := h.promo.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create promo")
		return
	}
	utils.ResponseCreated(w, "Promo created", promo)
}

func (h *CatalogHandler) UpdatePromo(w http.ResponseWriter, r *http.Request) {
	var req request.PromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	promo, err := h.promo.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update promo")
		return
	}
	utils.ResponseSuccess(w, "Promo updated", promo)
}

func (h *CatalogHandler) DeletePromo(w http.ResponseWriter, r *http.Request) {
	if err := h.promo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete promo")
		return
	}
	utils.ResponseSuccess(w, "Promo deleted", nil)
}

// ==================== PAYMENT METHODS ====================

func (h *CatalogHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.transaction.GetPaymentMethods(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get payment methods")
		return
	}
	utils.ResponseSuccess(w, "success", methods)
}

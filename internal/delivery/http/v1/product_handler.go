package v1

import (
	"net/http"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type ProductHandler struct {
	productUC domain.ProductUsecase
}

func NewProductHandler(uc domain.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUC: uc}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.productUC.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUC.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.ID = r.PathValue("id")

	product, err := h.productUC.Update(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: product})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productUC.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.productUC.Search(r.Context(), searchInput(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: page})
}

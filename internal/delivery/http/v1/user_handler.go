package v1

import (
	"net/http"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(uc domain.UserUsecase) *UserHandler {
	return &UserHandler{userUC: uc}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userUC.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: user})
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.userUC.Search(r.Context(), searchInput(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: page})
}

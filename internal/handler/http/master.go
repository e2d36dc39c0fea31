package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
	"github.com/pupr-presensi/presensi-backend-go/internal/service/master"
)

type MasterHandler interface {
	ListUnits(w http.ResponseWriter, r *http.Request)
	GetUnit(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

func (h *masterHandlerImpl) ListUnits(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListUnits(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) GetUnit(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetUnit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package handlers

import (
	"log"
	"net/http"

	"route-insertion-service/internal/api/dto"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

// ShipmentHandler exposes read-only shipment retrieval endpoints.
type ShipmentHandler struct {
	Repo ports.ShipmentRepository
}

func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	shipments, err := h.Repo.ListShipments(r.Context())
	if err != nil {
		log.Printf("list shipments failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListShipmentsResponse{Shipments: make([]dto.ShipmentResponse, 0, len(shipments))}
	for _, s := range shipments {
		res.Shipments = append(res.Shipments, dto.NewShipmentResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

package httptransport

import (
	"net/http"

	httpjson "northpole/internal/transport/http/json"
	wishservice "northpole/internal/wish/service"
)

// handleWishRegister handles POST /api/wish.
func (h *Handler) handleWishRegister(w http.ResponseWriter, r *http.Request) {
	productName, quantity, beneficiaryID, err := parseRegisterWish(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	wish, err := h.wishes.Register(r.Context(), productName, quantity, beneficiaryID)
	if err != nil {
		writeError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusCreated, toWishResponse(wish))
}

// handleWishList handles GET /api/wish.
func (h *Handler) handleWishList(w http.ResponseWriter, r *http.Request) {
	wishes, err := h.wishes.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, toWishResponses(wishes))
}

// handleWishReplace handles PUT /api/wishreplace.
func (h *Handler) handleWishReplace(w http.ResponseWriter, r *http.Request) {
	newWish, oldID, err := parseReplaceWish(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	deleted, created, err := h.wishes.Replace(r.Context(), wishservice.Replacement{
		NewWish:       newWish,
		IDToReplace:   oldID,
		BeneficiaryID: newWish.BeneficiaryID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, replaceWishResponse{
		DeletedWish: toWishResponse(deleted),
		NewWish:     toWishResponse(created),
	})
}

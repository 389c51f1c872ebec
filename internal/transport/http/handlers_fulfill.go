package httptransport

import (
	"fmt"
	"net/http"
)

// handleWishFulfill handles POST /api/wishfulfill. On success the response is
// plain text describing the found hash, block header, and search time.
func (h *Handler) handleWishFulfill(w http.ResponseWriter, r *http.Request) {
	wishID, err := parseFulfillWish(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.fulfillment.Fulfill(r.Context(), wishID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Found valid santa hash: %s for block header: %s in %d ms",
		result.Hash, result.BlockHeader, result.Elapsed.Milliseconds())
}

package httptransport

import (
	"net/http"

	httpjson "northpole/internal/transport/http/json"
)

// handlePeopleRegister handles POST /api/people.
func (h *Handler) handlePeopleRegister(w http.ResponseWriter, r *http.Request) {
	person, err := parseRegisterPerson(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	registered, err := h.people.Register(r.Context(), person)
	if err != nil {
		writeError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusCreated, toPersonResponse(registered))
}

// handlePeopleList handles GET /api/people.
func (h *Handler) handlePeopleList(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, toPersonResponses(people))
}

// handlePeopleUpdate handles PUT /api/people. The payload carries the version
// token the client last read; a stale token loses the optimistic lock race.
func (h *Handler) handlePeopleUpdate(w http.ResponseWriter, r *http.Request) {
	person, err := parseUpdatePerson(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.people.Update(r.Context(), person); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

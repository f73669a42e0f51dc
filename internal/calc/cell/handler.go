package cell

import (
	"encoding/json"
	"io"
	"net/http"
)

type Handler struct {
	Constants MaterialConstants
}

type defaultsResponse struct {
	Input     Input             `json:"input"`
	Constants MaterialConstants `json:"constants"`
}

func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, defaultsResponse{Input: DefaultInput(), Constants: h.Constants})
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	b, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	WriteJSON(w, b.Result)
}

func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	b, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	WriteJSON(w, b)
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) (Breakdown, bool) {
	in, ok := readInput(w, r)
	if !ok {
		return Breakdown{}, false
	}
	b := Evaluate(in, h.Constants)
	if err := b.Check(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Breakdown{}, false
	}
	return b, true
}

// DecodeInput reads a JSON input record; omitted fields keep their defaults.
func DecodeInput(body io.Reader) (Input, error) {
	in := DefaultInput()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Input{}, err
	}
	return in, nil
}

func readInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	in, err := DecodeInput(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Input{}, false
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Input{}, false
	}
	return in, true
}

// WriteJSON encodes v before touching w, so an encoding failure is still
// reported as a 500.
func WriteJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Response encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(body, '\n'))
}

package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	cell "PouchCell/internal/calc/cell"
)

// Input is the report request; cell fields left out keep their defaults.
// Unknown keys at either level are rejected, as on the calc routes.
type Input struct {
	Meta
	Cell *cell.Input `json:"cell"`
}

type Handler struct {
	Constants cell.MaterialConstants
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	defaults := cell.DefaultInput()
	input := Input{Cell: &defaults}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in := cell.DefaultInput()
	if input.Cell != nil {
		in = *input.Cell
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := cell.Evaluate(in, h.Constants)
	if err := b.Check(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input.Meta, in, b, time.Now()); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"cell-report.pdf\"")
	buf.WriteTo(w)
}

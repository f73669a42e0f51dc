package workbook

import (
	"net/http"

	cell "PouchCell/internal/calc/cell"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Constants cell.MaterialConstants
}

type ImportResult struct {
	Input  cell.Input  `json:"input"`
	Result cell.Result `json:"result"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in, err := ParseScenario(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
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
	cell.WriteJSON(w, ImportResult{Input: in, Result: b.Result})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	in, err := cell.DecodeInput(r.Body)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
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
	f, err := Build(in, b)
	if err != nil {
		http.Error(w, "Workbook generation error", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Workbook generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"cell-design.xlsx\"")
	buf.WriteTo(w)
}

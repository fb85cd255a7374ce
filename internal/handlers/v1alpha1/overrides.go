package v1alpha1

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
	"github.com/kubev2v/rvtools-assessor/pkg/metrics"
)

type OverrideForm struct {
	VMName       string  `json:"vmName" validate:"omitempty,vm_name"`
	Excluded     *bool   `json:"excluded,omitempty"`
	WorkloadType *string `json:"workloadType,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// (PUT /api/v1/assessments/current/overrides/{vmID})
func (h *ServiceHandler) PutOverride(w http.ResponseWriter, r *http.Request) {
	vmID := chi.URLParam(r, "vmID")

	var form OverrideForm
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := h.session.PutOverride(api.Override{
		VMID:         vmID,
		VMName:       form.VMName,
		Excluded:     form.Excluded,
		WorkloadType: form.WorkloadType,
		Notes:        form.Notes,
	})
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	metrics.IncreaseOverrideEditsMetric("put")
	_ = render.Render(w, r, AssessmentReply{result})
}

// (DELETE /api/v1/assessments/current/overrides/{vmID})
func (h *ServiceHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.DeleteOverride(chi.URLParam(r, "vmID"))
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	metrics.IncreaseOverrideEditsMetric("delete")
	_ = render.Render(w, r, AssessmentReply{result})
}

// (GET /api/v1/assessments/current/overrides)
// Downloads the override envelope for offline keeping.
func (h *ServiceHandler) ExportOverrides(w http.ResponseWriter, r *http.Request) {
	data, err := h.session.ExportOverrides()
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=overrides.json")
	_, _ = w.Write(data)
}

type ImportReply struct {
	Result     *overrides.ImportResult `json:"result"`
	Assessment *api.Assessment         `json:"assessment"`
}

func (i ImportReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// (POST /api/v1/assessments/current/overrides)
// Imports a previously exported envelope. A fingerprint mismatch is
// reported in the reply, not rejected.
func (h *ServiceHandler) ImportOverrides(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	result, assessment, err := h.session.ImportOverrides(data)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	metrics.IncreaseOverrideEditsMetric("import")
	_ = render.Render(w, r, ImportReply{Result: result, Assessment: assessment})
}

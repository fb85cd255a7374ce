package v1alpha1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/render"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

type AssessmentReply struct {
	*api.Assessment
}

func (a AssessmentReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// (POST /api/v1/assessments)
// Accepts a multipart upload under the "file" field, or a raw body when the
// content type is not multipart. Replaces the current assessment wholesale.
func (h *ServiceHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadMiB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	fileName, content, err := readUpload(r, maxBytes)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := h.session.Load(r.Context(), fileName, content)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	render.Status(r, http.StatusCreated)
	_ = render.Render(w, r, AssessmentReply{result})
}

// (GET /api/v1/assessments/current)
func (h *ServiceHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	result, err := h.session.Current()
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	_ = render.Render(w, r, AssessmentReply{result})
}

type WaveModeForm struct {
	Mode string `json:"mode" validate:"wave_mode"`
}

// (PUT /api/v1/assessments/current/waves)
func (h *ServiceHandler) SetWaveMode(w http.ResponseWriter, r *http.Request) {
	var form WaveModeForm
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := h.validator.Struct(form); err != nil {
		renderError(w, r, http.StatusBadRequest, err)
		return
	}

	mode, err := h.session.ParseWaveMode(form.Mode)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	result, err := h.session.SetWaveMode(mode)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}
	_ = render.Render(w, r, AssessmentReply{result})
}

func readUpload(r *http.Request, maxBytes int64) (string, []byte, error) {
	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 9 && contentType[:9] == "multipart" {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return "", nil, fmt.Errorf("failed to parse multipart form: %w", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, content, nil
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	return "upload.xlsx", content, nil
}

package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/kubev2v/rvtools-assessor/internal/handlers/validator"
	"github.com/kubev2v/rvtools-assessor/internal/proxy"
	"github.com/kubev2v/rvtools-assessor/internal/service"
	"github.com/kubev2v/rvtools-assessor/pkg/requestid"
)

// ServiceHandler exposes the assessment session over HTTP. The proxy
// client is optional; when nil the insight endpoints answer 503.
type ServiceHandler struct {
	session      *service.Session
	validator    *validator.Validator
	maxUploadMiB int64
	proxy        *proxy.Client
}

func NewServiceHandler(session *service.Session, maxUploadMiB int64, proxyClient *proxy.Client) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewAssessmentValidationRules()...)
	v.Register(validator.NewOverrideValidationRules()...)

	return &ServiceHandler{
		session:      session,
		validator:    v,
		maxUploadMiB: maxUploadMiB,
		proxy:        proxyClient,
	}
}

func (h *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/assessments", h.CreateAssessment)
		r.Get("/assessments/current", h.GetAssessment)
		r.Put("/assessments/current/waves", h.SetWaveMode)
		r.Put("/assessments/current/overrides/{vmID}", h.PutOverride)
		r.Delete("/assessments/current/overrides/{vmID}", h.DeleteOverride)
		r.Get("/assessments/current/overrides", h.ExportOverrides)
		r.Post("/assessments/current/overrides", h.ImportOverrides)
		r.Post("/assessments/current/classify", h.ClassifyWorkloads)
		r.Get("/assessments/current/insights", h.GetInsights)
	})
}

func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type ErrorReply struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	render.Status(r, status)
	_ = render.Render(w, r, ErrorReply{Message: err.Error(), RequestID: requestid.FromRequest(r)})
}

// statusFor maps typed service errors onto HTTP status codes.
func statusFor(err error) int {
	switch err.(type) {
	case *service.ErrFileCorrupted:
		return http.StatusBadRequest
	case *service.ErrInvalidWaveMode:
		return http.StatusBadRequest
	case *service.ErrNoAssessment:
		return http.StatusNotFound
	case *proxy.ErrProxyRequest:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

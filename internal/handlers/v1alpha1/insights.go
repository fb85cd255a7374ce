package v1alpha1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/kubev2v/rvtools-assessor/internal/proxy"
)

type ClassificationReply struct {
	Classifications []proxy.WorkloadClassification `json:"classifications"`
}

func (c ClassificationReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type InsightsReply struct {
	Insights string `json:"insights"`
}

func (i InsightsReply) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ClassifyWorkloads asks the proxy to label every in-scope VM with a
// workload type. The assessment itself is not modified; labels are
// applied by the user through overrides.
func (h *ServiceHandler) ClassifyWorkloads(w http.ResponseWriter, r *http.Request) {
	if h.proxy == nil {
		renderError(w, r, http.StatusServiceUnavailable, errors.New("workload proxy is not configured"))
		return
	}

	current, err := h.session.Current()
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	guestOS := make(map[string]string, len(current.Inventory.VMs))
	for _, vm := range current.Inventory.VMs {
		guestOS[vm.Name] = vm.GuestOS
	}

	items := make([]proxy.WorkloadItem, 0, len(current.Complexity))
	for _, c := range current.Complexity {
		items = append(items, proxy.WorkloadItem{
			VMID:    c.VMID,
			VMName:  c.VMName,
			GuestOS: guestOS[c.VMName],
		})
	}

	classifications, err := h.proxy.ClassifyWorkloads(r.Context(), items)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	_ = render.Render(w, r, ClassificationReply{Classifications: classifications})
}

// GetInsights returns a free-text narrative over the current metrics
// bundle. Responses are cached by the proxy client.
func (h *ServiceHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	if h.proxy == nil {
		renderError(w, r, http.StatusServiceUnavailable, errors.New("workload proxy is not configured"))
		return
	}

	current, err := h.session.Current()
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	payload, err := json.Marshal(current.Metrics)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	text, err := h.proxy.Insights(r.Context(), payload)
	if err != nil {
		renderError(w, r, statusFor(err), err)
		return
	}

	_ = render.Render(w, r, InsightsReply{Insights: text})
}

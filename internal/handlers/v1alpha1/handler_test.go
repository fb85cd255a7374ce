package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	handlers "github.com/kubev2v/rvtools-assessor/internal/handlers/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/service"
)

func sampleWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]string{
		"vInfo": {
			{"VM", "Powerstate", "CPUs", "Memory", "OS according to the configuration file", "HW version"},
			{"web-1", "poweredOn", "2", "4096", "Ubuntu Linux (64-bit)", "vmx-15"},
			{"db-1", "poweredOn", "4", "8192", "Red Hat Enterprise Linux 8 (64-bit)", "vmx-15"},
		},
		"vDisk": {
			{"VM", "Capacity MiB"},
			{"web-1", "40960"},
			{"db-1", "204800"},
		},
		"vNetwork": {
			{"VM", "Network", "Port Group"},
			{"web-1", "VM Network", "pg-web"},
			{"db-1", "VM Network", "pg-db"},
		},
	}
	for sheet, rows := range sheets {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
		for r, row := range rows {
			for c, value := range row {
				col, _ := excelize.ColumnNumberToName(c + 1)
				if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+1), value); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newRouter(defaultMode api.WaveMode) *chi.Mux {
	srv := service.NewAssessmentService(defaultMode)
	session := service.NewSession(srv, defaultMode)
	handler := handlers.NewServiceHandler(session, 100, nil)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func uploadWorkbook(t *testing.T, router *chi.Mux) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", bytes.NewReader(sampleWorkbook(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload returned %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSetWaveModeEmptyKeepsConfiguredDefault(t *testing.T) {
	router := newRouter(api.WaveModeNetwork)
	uploadWorkbook(t, router)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/assessments/current/waves", strings.NewReader(`{"mode":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("wave mode request returned %d: %s", rec.Code, rec.Body.String())
	}

	var result api.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Waves) == 0 {
		t.Fatal("no waves planned")
	}
	for _, w := range result.Waves {
		if !strings.HasPrefix(w.Name, "Network:") {
			t.Errorf("wave %q abandoned the configured default mode", w.Name)
		}
	}
}

func TestSetWaveModeExplicitSwitch(t *testing.T) {
	router := newRouter(api.WaveModeNetwork)
	uploadWorkbook(t, router)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/assessments/current/waves", strings.NewReader(`{"mode":"complexity"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("wave mode request returned %d: %s", rec.Code, rec.Body.String())
	}

	var result api.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	for _, w := range result.Waves {
		if !strings.HasPrefix(w.Name, "Complexity:") {
			t.Errorf("wave %q did not follow the requested mode", w.Name)
		}
	}
}

func TestSetWaveModeRejectsUnknownMode(t *testing.T) {
	router := newRouter(api.WaveModeComplexity)
	uploadWorkbook(t, router)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/assessments/current/waves", strings.NewReader(`{"mode":"alphabetical"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown mode returned %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

package intake

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metabotwin/internal/risk"
)

func setupRouter(t *testing.T) (*chi.Mux, Service) {
	t.Helper()
	svc, _, _ := setupService(0.3)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, NewHandler(svc))
	})
	return r, svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateAndAdvance(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/intake", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var created Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StepIdentity, created.Step)

	rec = doJSON(t, router, http.MethodPost, "/api/intake/"+created.ID.String()+"/advance",
		StepInput{Identity: &IdentityInput{Name: "Srishti"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var advanced Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &advanced))
	assert.Equal(t, StepGender, advanced.Step)
}

func TestHandler_ValidationFailureIs422(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/intake", nil)
	var created Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPost, "/api/intake/"+created.ID.String()+"/advance",
		StepInput{Identity: &IdentityInput{Name: "  "}})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "name", body["field"])
}

func TestHandler_InvalidSessionID(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/intake/not-a-uuid/advance", StepInput{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AssessFlow(t *testing.T) {
	router, svc := setupRouter(t)
	id := completeIntake(t, svc)

	rec := doJSON(t, router, http.MethodPost, "/api/intake/"+id.String()+"/assess",
		AssessRequest{Adjustments: &risk.Adjustments{Glucose: 140, BMI: 30, DiastolicBP: 85}})

	require.Equal(t, http.StatusOK, rec.Code)
	var result SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 140.0, result.Adjustments.Glucose)
	assert.Len(t, result.Sweep, 24)
	assert.Equal(t, risk.StatusHealthy, result.Assessment.Status)
}

func TestHandler_SaveAndAssessRequireCompletion(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/intake", nil)
	var created Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPost, "/api/intake/"+created.ID.String()+"/assess", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/intake/"+created.ID.String()+"/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

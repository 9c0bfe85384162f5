package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/livestockhub/internal/entity"
	animalRepo "anoa.com/livestockhub/internal/modules/animal/repository"
	healthDto "anoa.com/livestockhub/internal/modules/health/dto"
	healthRepo "anoa.com/livestockhub/internal/modules/health/repository"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVetFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator.Register()

	db := testutil.NewTestDB(t)
	farmer := testutil.CreateUser(t, db, "farmer@example.com", true, entity.RoleFarmer)
	vet := testutil.CreateUser(t, db, "vet@example.com", true, entity.RoleVeterinaryOfficer)
	animal := testutil.CreateAnimal(t, db, farmer.ID, "cattle")

	h := NewVetHandler(healthService.NewHealthService(healthRepo.NewHealthRepository(db), animalRepo.NewAnimalRepository(db), nil))
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", vet.ID.String()) })
	r.GET("/vet/cases", h.ListCases)
	r.GET("/vet/vaccinations/due", h.DueVaccinations)
	r.POST("/vet/animals/:id/health-records", h.AddRecord)
	r.POST("/vet/animals/:id/vaccinations", h.AddVaccination)

	send := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	today := time.Now().UTC().Format("2006-01-02")
	w := send(http.MethodPost, "/vet/animals/"+animal.ID.String()+"/health-records", map[string]any{
		"record_date": today, "condition": "Lumpy skin", "status": "under_treatment",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(http.MethodGet, "/vet/cases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cases struct {
		Data []entity.HealthRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cases))
	require.Len(t, cases.Data, 1)
	assert.Equal(t, entity.CaseStatusUnderTreatment, cases.Data[0].Status)

	next := time.Now().UTC().AddDate(0, 0, 10).Format("2006-01-02")
	w = send(http.MethodPost, "/vet/animals/"+animal.ID.String()+"/vaccinations", map[string]any{
		"vaccine_name": "FMD", "date_given": today, "next_due_date": next,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(http.MethodGet, "/vet/vaccinations/due?window_days=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var due struct {
		Data []healthDto.DueVaccination `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &due))
	require.Len(t, due.Data, 1)
	assert.Equal(t, "FMD", due.Data[0].VaccineName)
	assert.False(t, due.Data[0].Overdue)

	w = send(http.MethodGet, "/vet/vaccinations/due?window_days=0&state=Goa", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

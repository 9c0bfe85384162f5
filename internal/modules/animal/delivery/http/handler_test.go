package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/animal/repository"
	"anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/internal/testutil"
	"anoa.com/livestockhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()

	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", true, entity.RoleFarmer)
	h := NewAnimalHandler(service.NewAnimalService(repository.NewAnimalRepository(db), nil, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", owner.ID.String()) })
	r.GET("/animals", h.List)
	r.POST("/animals", h.Create)
	r.DELETE("/animals/:id", h.Delete)
	return r, db, owner.ID
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
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

func TestCreate_MissingSpeciesOrGenderFailsValidation(t *testing.T) {
	r, db, _ := setup(t)

	cases := []map[string]any{
		{"gender": "female", "name": "Gauri"},
		{"species": "cattle", "name": "Gauri"},
		{"species": "dragon", "gender": "female"},
	}
	for _, body := range cases {
		w := do(r, http.MethodPost, "/animals", body)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		var res map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Validation Error", res["error"])
		assert.NotEmpty(t, res["message"])
	}

	var count int64
	require.NoError(t, db.Model(&entity.Animal{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_MissingSpeciesMessage(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodPost, "/animals", map[string]any{"gender": "male"})
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "species is required", res["message"])
}

func TestDelete_RemovesFromList(t *testing.T) {
	r, _, _ := setup(t)

	w := do(r, http.MethodPost, "/animals", map[string]any{"species": "goat", "gender": "female", "name": "Chhoti"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.Animal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, entity.HealthStatusHealthy, created.HealthStatus)

	w = do(r, http.MethodGet, "/animals", nil)
	var page struct {
		Data []entity.Animal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)

	w = do(r, http.MethodDelete, "/animals/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/animals", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Data)

	w = do(r, http.MethodDelete, "/animals/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

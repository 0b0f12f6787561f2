package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Ramez23/Movies-System/internal/model"
)

func TestGenresListsEnums(t *testing.T) {
	e := echo.New()
	e.GET("/genres", (&MovieHandler{}).Genres)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/genres", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Genres  []model.Genre  `json:"genres"`
		Ratings []model.Rating `json:"ratings"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.Genres(), body.Genres)
	assert.Equal(t, model.Ratings(), body.Ratings)
}

package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutech-id/campus-timetable-api/internal/dto"
	"github.com/edutech-id/campus-timetable-api/internal/models"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	"github.com/edutech-id/campus-timetable-api/internal/service"
)

func newRosterFixture(t *testing.T) (*RosterHandler, *repository.RegistryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := repository.NewRegistryRepository()
	return NewRosterHandler(service.NewRosterService(registry, nil, nil)), registry
}

func newUploadContext(t *testing.T, path, contents string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	return c, w
}

func TestRosterHandlerImportTeachers(t *testing.T) {
	handler, registry := newRosterFixture(t)

	c, w := newUploadContext(t, "/teachers/import", "ID,Name,Type\nt1,Ibu Sari,\n")
	handler.ImportTeachers(c)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data dto.ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Data.Imported)

	teachers := registry.Teachers()
	require.Len(t, teachers, 1)
	assert.Equal(t, models.DefaultTeacherType, teachers[0].Type)
}

func TestRosterHandlerImportTeachersMissingFile(t *testing.T) {
	handler, _ := newRosterFixture(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/teachers/import", nil)
	c.Request = req

	handler.ImportTeachers(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandlerImportRooms(t *testing.T) {
	handler, registry := newRosterFixture(t)

	c, w := newUploadContext(t, "/rooms/import", "ID,Name,Campus\nr1,Lab 101,North\n")
	handler.ImportRooms(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.Rooms(), 1)
}

func TestRosterHandlerListTeachers(t *testing.T) {
	handler, registry := newRosterFixture(t)
	registry.ReplaceTeachers([]models.Teacher{{ID: "t1", Name: "Ibu Sari", Type: "Full-time"}})

	c, w := newGinContext(http.MethodGet, "/teachers", nil)
	handler.ListTeachers(c)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []models.Teacher `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
}

func TestRosterHandlerUpdateTeacher(t *testing.T) {
	handler, registry := newRosterFixture(t)
	registry.ReplaceTeachers([]models.Teacher{{ID: "t1", Name: "Ibu Sari", Type: "Full-time"}})

	payload, _ := json.Marshal(service.UpdateTeacherRequest{Name: "Ibu Sari Dewi", Type: "Part-time"})
	c, w := newGinContext(http.MethodPut, "/teachers/t1", payload)
	c.Params = gin.Params{{Key: "id", Value: "t1"}}

	handler.UpdateTeacher(c)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := registry.TeacherByID("t1")
	require.NoError(t, err)
	assert.Equal(t, "Ibu Sari Dewi", stored.Name)
	assert.Equal(t, "Part-time", stored.Type)
}

func TestRosterHandlerUpdateTeacherUnknown(t *testing.T) {
	handler, _ := newRosterFixture(t)

	payload, _ := json.Marshal(service.UpdateTeacherRequest{Name: "Anyone"})
	c, w := newGinContext(http.MethodPut, "/teachers/ghost", payload)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}

	handler.UpdateTeacher(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

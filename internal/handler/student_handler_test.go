package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/query"
	"github.com/noah-isme/ssis-api/internal/service"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

type fakeStudentService struct {
	student    models.Student
	lastParams query.Params
	lastURL    *string
	imageCalls int
}

func (f *fakeStudentService) Resource() service.Resource { return service.StudentResource }

func (f *fakeStudentService) List(_ context.Context, params query.Params) (*models.Page[models.Student], error) {
	f.lastParams = params
	return &models.Page[models.Student]{Data: []models.Student{f.student}}, nil
}

func (f *fakeStudentService) Get(_ context.Context, key string) (*models.Student, error) {
	if key != f.student.StudentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	return &f.student, nil
}

func (f *fakeStudentService) Create(_ context.Context, row models.Student) (*models.Student, error) {
	return &row, nil
}

func (f *fakeStudentService) Update(_ context.Context, _ string, row models.Student) (*models.Student, error) {
	return &row, nil
}

func (f *fakeStudentService) Delete(_ context.Context, _ string) (*models.Student, error) {
	return &f.student, nil
}

func (f *fakeStudentService) UpdateImage(_ context.Context, studentID string, url *string) (*models.Student, error) {
	f.imageCalls++
	if studentID != f.student.StudentID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	f.lastURL = url
	f.student.ImageURL = url
	return &f.student, nil
}

func newFakeStudentService() *fakeStudentService {
	return &fakeStudentService{student: models.Student{
		StudentID: "2021-0001", FirstName: "Ada", LastName: "Lovelace", YearLevel: 2, Gender: "Female", ProgramCode: "BSCS",
	}}
}

func TestStudentHandlerListFilters(t *testing.T) {
	svc := newFakeStudentService()
	h := NewStudentHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/students?program=BSCS&year=2&gender=&college=CCS", "")
	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"program": "BSCS", "year": "2", "college": "CCS"}, svc.lastParams.Filters)
}

func TestStudentHandlerUpdateImage(t *testing.T) {
	svc := newFakeStudentService()
	h := NewStudentHandler(svc)

	c, rec := newTestContext(http.MethodPatch, "/students/2021-0001/image", `{"image_url":"https://cdn.example/ada.png"}`)
	c.Params = gin.Params{{Key: "id", Value: "2021-0001"}}
	h.UpdateImage(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Student image updated successfully", body["message"])
	assert.Equal(t, "https://cdn.example/ada.png", body["student"].(map[string]interface{})["image_url"])
}

func TestStudentHandlerUpdateImageRequiresURL(t *testing.T) {
	svc := newFakeStudentService()
	h := NewStudentHandler(svc)

	for _, payload := range []string{`{}`, `{"image_url":null}`, `{"image_url":"  "}`} {
		c, rec := newTestContext(http.MethodPatch, "/students/2021-0001/image", payload)
		c.Params = gin.Params{{Key: "id", Value: "2021-0001"}}
		h.UpdateImage(c)

		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, "image_url is required", decodeBody(t, rec)["error"])
	}
	assert.Zero(t, svc.imageCalls)
}

func TestStudentHandlerDeleteImage(t *testing.T) {
	svc := newFakeStudentService()
	url := "https://cdn.example/ada.png"
	svc.student.ImageURL = &url
	h := NewStudentHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/students/2021-0001/image", "")
	c.Params = gin.Params{{Key: "id", Value: "2021-0001"}}
	h.DeleteImage(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.lastURL)
	assert.Nil(t, decodeBody(t, rec)["student"].(map[string]interface{})["image_url"])

	c, rec = newTestContext(http.MethodDelete, "/students/2099-0000/image", "")
	c.Params = gin.Params{{Key: "id", Value: "2099-0000"}}
	h.DeleteImage(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

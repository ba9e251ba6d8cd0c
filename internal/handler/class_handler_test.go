package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type fakeClassSrv struct {
	lastFilter models.ClassFilter
	lastUpdate dto.UpdateClassRequest
	err        error
}

func (f *fakeClassSrv) List(_ context.Context, filter models.ClassFilter) ([]models.Class, error) {
	f.lastFilter = filter
	return []models.Class{{ID: 1, Name: "5 - A1"}}, f.err
}

func (f *fakeClassSrv) Get(_ context.Context, id int64) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Class{ID: id, Name: "5 - A1"}, nil
}

func (f *fakeClassSrv) Create(_ context.Context, req dto.CreateClassRequest) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Class{ID: 1, Name: req.Name}, nil
}

func (f *fakeClassSrv) Update(_ context.Context, id int64, req dto.UpdateClassRequest) (*models.Class, error) {
	f.lastUpdate = req
	return &models.Class{ID: id, Name: req.Name}, f.err
}

func (f *fakeClassSrv) Delete(context.Context, int64) error { return f.err }

func TestClassHandlerListPassesFilter(t *testing.T) {
	srv := &fakeClassSrv{}
	h := NewClassHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/api/classes?grade=5&search=%20a1%20", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ClassFilter{Grade: "5", Search: "a1"}, srv.lastFilter)
}

func TestClassHandlerCreateDuplicate(t *testing.T) {
	h := NewClassHandler(&fakeClassSrv{err: appErrors.Clone(appErrors.ErrConflict, "class name already exists")})

	c, rec := newTestContext(http.MethodPost, "/api/classes", []byte(`{"name":"5 - A1"}`))
	h.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "class name already exists")
}

func TestClassHandlerUpdate(t *testing.T) {
	srv := &fakeClassSrv{}
	h := NewClassHandler(srv)

	c, rec := newTestContext(http.MethodPut, "/api/classes/3", []byte(`{"section":"B"}`))
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, srv.lastUpdate.Section) {
		assert.Equal(t, "B", *srv.lastUpdate.Section)
	}
}

func TestClassHandlerGetNegativeID(t *testing.T) {
	h := NewClassHandler(&fakeClassSrv{})

	c, rec := newTestContext(http.MethodGet, "/api/classes/-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

type mockTeacherRepo struct {
	items  map[int64]*models.Teacher
	nextID int64
}

func (m *mockTeacherRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if teacher, ok := m.items[id]; ok {
		cp := *teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Teacher)
	}
	m.nextID++
	teacher.ID = m.nextID
	cp := *teacher
	m.items[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	cp := *teacher
	m.items[teacher.ID] = &cp
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func TestTeacherServiceCreate(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := NewTeacherService(repo, nil, appValidator.New(), zap.NewNop())

	capacity := 30
	specialization := "Mathematics"
	teacher, err := svc.Create(context.Background(), dto.CreateTeacherRequest{Name: "Manisha", Specialization: &specialization, MaxWeeklyHours: &capacity})
	require.NoError(t, err)
	assert.Equal(t, int64(1), teacher.ID)
	assert.Equal(t, 30, teacher.MaxWeeklyHours)
}

func TestTeacherServiceCreateRejectsNegativeCapacity(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, nil, nil, nil)

	capacity := -1
	_, err := svc.Create(context.Background(), dto.CreateTeacherRequest{Name: "Manisha", MaxWeeklyHours: &capacity})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Details, "maxWeeklyHours")
}

func TestTeacherServiceUpdateKeepsOmittedFields(t *testing.T) {
	phone := "0812"
	repo := &mockTeacherRepo{items: map[int64]*models.Teacher{
		1: {ID: 1, Name: "Manisha", Phone: &phone, MaxWeeklyHours: 30},
	}}
	inv := &recordingInvalidator{}
	svc := NewTeacherService(repo, inv, nil, nil)

	teacher, err := svc.Update(context.Background(), 1, dto.UpdateTeacherRequest{Name: "Manisha K"})
	require.NoError(t, err)
	assert.Equal(t, "Manisha K", teacher.Name)
	assert.Equal(t, "0812", *teacher.Phone)
	assert.Equal(t, 30, teacher.MaxWeeklyHours)
	assert.Equal(t, 1, inv.calls)
}

func TestTeacherServiceUpdateMissing(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 9, dto.UpdateTeacherRequest{Name: "X"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "teacher not found", appErr.Message)
}

func TestTeacherServiceDelete(t *testing.T) {
	repo := &mockTeacherRepo{items: map[int64]*models.Teacher{1: {ID: 1, Name: "Manisha"}}}
	inv := &recordingInvalidator{}
	svc := NewTeacherService(repo, inv, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, repo.items)
	assert.Equal(t, 1, inv.calls)

	err := svc.Delete(context.Background(), 1)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
	assert.Equal(t, 1, inv.calls)
}

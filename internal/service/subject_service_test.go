package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type mockSubjectRepo struct {
	items  map[int64]*models.Subject
	nextID int64
}

func (m *mockSubjectRepo) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	if subject, ok := m.items[id]; ok {
		cp := *subject
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Subject)
	}
	m.nextID++
	subject.ID = m.nextID
	cp := *subject
	m.items[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	cp := *subject
	m.items[subject.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func TestSubjectServiceCreateDefaultsColor(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	subject, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Math"})
	require.NoError(t, err)
	require.NotNil(t, subject.Color)
	assert.Equal(t, models.DefaultSubjectColor, *subject.Color)
	assert.Zero(t, subject.WeeklyHours)
}

func TestSubjectServiceCreateRejectsBadColor(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	color := "blue"
	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{Name: "Math", Color: &color})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "color must be a color in #RRGGBB format", appErr.Details["color"])
}

func TestSubjectServiceUpdate(t *testing.T) {
	color := "#ff0000"
	repo := &mockSubjectRepo{items: map[int64]*models.Subject{1: {ID: 1, Name: "Math", Color: &color, WeeklyHours: 5}}}
	svc := NewSubjectService(repo, nil, nil, nil)

	hours := 6
	subject, err := svc.Update(context.Background(), 1, dto.UpdateSubjectRequest{WeeklyHours: &hours})
	require.NoError(t, err)
	assert.Equal(t, "Math", subject.Name)
	assert.Equal(t, 6, subject.WeeklyHours)
	assert.Equal(t, "#ff0000", *subject.Color)
}

func TestSubjectServiceDeleteMissing(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil, nil)

	err := svc.Delete(context.Background(), 3)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type timetableService interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, error)
	ListByClass(ctx context.Context, classID int64) ([]models.TimetableEntry, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TimetableEntry, error)
	Get(ctx context.Context, id int64) (*models.TimetableEntry, error)
	Create(ctx context.Context, req dto.CreateTimetableRequest) (*models.TimetableEntry, error)
	Update(ctx context.Context, id int64, req dto.UpdateTimetableRequest) (*models.TimetableEntry, error)
	Delete(ctx context.Context, id int64) error
}

// TimetableHandler exposes timetable entry endpoints. Writes that would
// double-book a class or a teacher answer 409 with the colliding entry.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List timetable entries
// @Tags Timetables
// @Produce json
// @Param dayOfWeek query int false "Day of week (1 = Monday)"
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	day, ok := parseDay(c, c.Query("dayOfWeek"), "dayOfWeek")
	if !ok {
		return
	}
	filter := models.TimetableFilter{}
	if day != nil {
		filter.DayOfWeek = *day
	}
	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Get godoc
// @Summary Get timetable entry
// @Tags Timetables
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// ListByClass godoc
// @Summary List entries of a class
// @Tags Timetables
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/class/{classId} [get]
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	entries, err := h.service.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// ListByTeacher godoc
// @Summary List entries of a teacher
// @Tags Timetables
// @Produce json
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/teacher/{teacherId} [get]
func (h *TimetableHandler) ListByTeacher(c *gin.Context) {
	teacherID, ok := parseID(c, "teacherId")
	if !ok {
		return
	}
	entries, err := h.service.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Create godoc
// @Summary Create timetable entry
// @Description Rejects the entry when the class or the teacher is already booked for the same period and day.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.CreateTimetableRequest true "Entry payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.ConflictEnvelope
// @Router /timetables [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.CreateTimetableRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Update timetable entry
// @Description Changes subject, teacher or day. Class and period are fixed.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param payload body dto.UpdateTimetableRequest true "Entry payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.ConflictEnvelope
// @Router /timetables/{id} [put]
func (h *TimetableHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTimetableRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete timetable entry
// @Tags Timetables
// @Param id path int true "Entry ID"
// @Success 204 {string} string ""
// @Failure 404 {object} response.Envelope
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

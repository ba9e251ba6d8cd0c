package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type scheduleService interface {
	ClassSchedule(ctx context.Context, classID int64) (*models.ClassSchedule, bool, error)
	TeacherSchedule(ctx context.Context, teacherID int64) (*models.TeacherSchedule, bool, error)
	WeekdaySchedule(ctx context.Context, dayOfWeek int) (*models.WeekdaySchedule, bool, error)
}

type statsService interface {
	Stats(ctx context.Context) (*models.TimetableStats, bool, error)
}

type exportService interface {
	ExportClassSchedule(ctx context.Context, classID int64, format string) (*service.ExportFile, error)
	ExportTeacherSchedule(ctx context.Context, teacherID int64, format string) (*service.ExportFile, error)
	ExportWeekdaySchedule(ctx context.Context, dayOfWeek int, format string) (*service.ExportFile, error)
}

// ScheduleHandler serves the grid projections, their exports and the
// dashboard statistics.
type ScheduleHandler struct {
	schedules scheduleService
	stats     statsService
	exports   exportService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules scheduleService, stats statsService, exports exportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, stats: stats, exports: exports}
}

// ClassSchedule godoc
// @Summary Weekly grid of a class
// @Description Seven days by every period. Unassigned slots carry null subject and teacher.
// @Tags Schedules
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope{data=models.ClassSchedule}
// @Failure 404 {object} response.Envelope
// @Router /timetables/class/{classId}/schedule [get]
func (h *ScheduleHandler) ClassSchedule(c *gin.Context) {
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	schedule, cacheHit, err := h.schedules.ClassSchedule(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, schedule, cacheHit)
}

// TeacherSchedule godoc
// @Summary Weekly grid of a teacher
// @Tags Schedules
// @Produce json
// @Param teacherId path int true "Teacher ID"
// @Success 200 {object} response.Envelope{data=models.TeacherSchedule}
// @Failure 404 {object} response.Envelope
// @Router /timetables/teacher/{teacherId}/schedule [get]
func (h *ScheduleHandler) TeacherSchedule(c *gin.Context) {
	teacherID, ok := parseID(c, "teacherId")
	if !ok {
		return
	}
	schedule, cacheHit, err := h.schedules.TeacherSchedule(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, schedule, cacheHit)
}

// WeekdaySchedule godoc
// @Summary Every class against every period for one day
// @Tags Schedules
// @Produce json
// @Param dayOfWeek path int true "Day of week (1 = Monday)"
// @Success 200 {object} response.Envelope{data=models.WeekdaySchedule}
// @Failure 400 {object} response.Envelope
// @Router /timetables/weekday/{dayOfWeek} [get]
func (h *ScheduleHandler) WeekdaySchedule(c *gin.Context) {
	day, ok := parseRequiredDay(c)
	if !ok {
		return
	}
	schedule, cacheHit, err := h.schedules.WeekdaySchedule(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, schedule, cacheHit)
}

// Stats godoc
// @Summary Teacher workload and subject distribution
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope{data=models.TimetableStats}
// @Router /timetables/stats [get]
func (h *ScheduleHandler) Stats(c *gin.Context) {
	stats, cacheHit, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, stats, cacheHit)
}

// ExportClassSchedule godoc
// @Summary Download a class grid
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param classId path int true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /timetables/class/{classId}/schedule/export [get]
func (h *ScheduleHandler) ExportClassSchedule(c *gin.Context) {
	classID, ok := parseID(c, "classId")
	if !ok {
		return
	}
	file, err := h.exports.ExportClassSchedule(c.Request.Context(), classID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// ExportTeacherSchedule godoc
// @Summary Download a teacher grid
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param teacherId path int true "Teacher ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /timetables/teacher/{teacherId}/schedule/export [get]
func (h *ScheduleHandler) ExportTeacherSchedule(c *gin.Context) {
	teacherID, ok := parseID(c, "teacherId")
	if !ok {
		return
	}
	file, err := h.exports.ExportTeacherSchedule(c.Request.Context(), teacherID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// ExportWeekdaySchedule godoc
// @Summary Download the grid of one day
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param dayOfWeek path int true "Day of week (1 = Monday)"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /timetables/weekday/{dayOfWeek}/export [get]
func (h *ScheduleHandler) ExportWeekdaySchedule(c *gin.Context) {
	day, ok := parseRequiredDay(c)
	if !ok {
		return
	}
	file, err := h.exports.ExportWeekdaySchedule(c.Request.Context(), day, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func parseRequiredDay(c *gin.Context) (int, bool) {
	raw := c.Param("dayOfWeek")
	if raw == "" {
		raw = "0"
	}
	day, ok := parseDay(c, raw, "dayOfWeek")
	if !ok {
		return 0, false
	}
	return *day, true
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/workinghours/dto"
	"remotcyberhelp/internal/application/workinghours/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type getScheduleUseCase interface {
	Execute(ctx context.Context) (*dto.ScheduleDTO, error)
	Status(ctx context.Context) (*dto.StatusDTO, error)
}

type updateScheduleUseCase interface {
	Execute(ctx context.Context, days []usecases.DayInput) (*dto.ScheduleDTO, error)
}

type manageHolidaysUseCase interface {
	Add(ctx context.Context, date, name string) (*dto.HolidayDTO, error)
	Delete(ctx context.Context, date string) error
}

type DayRequest struct {
	Day    string `json:"day" validate:"required"`
	Open   string `json:"open" validate:"omitempty,clock"`
	Close  string `json:"close" validate:"omitempty,clock"`
	Closed bool   `json:"closed"`
}

type UpdateScheduleRequest struct {
	Days []DayRequest `json:"days" validate:"required,min=1,max=7,dive"`
}

type HolidayRequest struct {
	Date string `json:"date" validate:"required,date"`
	Name string `json:"name" validate:"required,max=100"`
}

type WorkingHoursHandler struct {
	schedule getScheduleUseCase
	update   updateScheduleUseCase
	holidays manageHolidaysUseCase
}

func NewWorkingHoursHandler(schedule getScheduleUseCase, update updateScheduleUseCase, holidays manageHolidaysUseCase) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		schedule: schedule,
		update:   update,
		holidays: holidays,
	}
}

// GetSchedule handles GET /working-hours
func (h *WorkingHoursHandler) GetSchedule(c *gin.Context) {
	result, err := h.schedule.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetStatus godoc
// @Summary      Whether the office is open right now
// @Tags         working-hours
// @Produce      json
// @Success      200 {object} utils.APIResponse{data=dto.StatusDTO}
// @Router       /working-hours/status [get]
func (h *WorkingHoursHandler) GetStatus(c *gin.Context) {
	result, err := h.schedule.Status(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateSchedule handles PUT /admin/working-hours
func (h *WorkingHoursHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	days := make([]usecases.DayInput, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, usecases.DayInput{Day: d.Day, Open: d.Open, Close: d.Close, Closed: d.Closed})
	}

	result, err := h.update.Execute(c.Request.Context(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Working hours updated", result)
}

// AddHoliday handles POST /admin/working-hours/holidays
func (h *WorkingHoursHandler) AddHoliday(c *gin.Context) {
	var req HolidayRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.holidays.Add(c.Request.Context(), req.Date, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Holiday added")
}

// DeleteHoliday handles DELETE /admin/working-hours/holidays/:date
func (h *WorkingHoursHandler) DeleteHoliday(c *gin.Context) {
	if err := h.holidays.Delete(c.Request.Context(), c.Param("date")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Holiday removed", nil)
}

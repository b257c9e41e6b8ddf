package http

import (
	"net/http"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/fleetdesk/timeclock-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	ListUpcoming(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.Service
}

func NewScheduleHandler(scheduleService schedule.Service) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ListUpcoming implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListUpcomingShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

type CalendarDay struct {
	Day             int    `json:"day"`
	Date            string `json:"date"`
	Label           string `json:"label"`
	Weekday         string `json:"weekday"`
	WeekdayDari     string `json:"weekday_dari"`
	IsWeeklyHoliday bool   `json:"is_weekly_holiday"`
}

type CalendarResponse struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	DayCount  int           `json:"day_count"`
	Days      []CalendarDay `json:"days"`
}

type CalendarHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct{}

func NewCalendarHandler() CalendarHandler {
	return &calendarHandlerImpl{}
}

// GetMonth handles GET /calendar/{year}/{month}
func (h *calendarHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month := getPeriodURLParams(r)

	period, err := jalali.ResolvePeriod(year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := CalendarResponse{
		Year:      period.Year,
		Month:     period.Month,
		MonthName: jalali.MonthName(period.Month),
		Start:     period.Start.Format("2006-01-02"),
		End:       period.End.Format("2006-01-02"),
		DayCount:  period.DayCount,
		Days:      make([]CalendarDay, 0, period.DayCount),
	}
	for i, d := range period.Days() {
		dari, english := jalali.WeekdayNames(d)
		result.Days = append(result.Days, CalendarDay{
			Day:             i + 1,
			Date:            d.Format("2006-01-02"),
			Label:           jalali.FullLabel(d),
			Weekday:         english,
			WeekdayDari:     dari,
			IsWeeklyHoliday: jalali.IsWeeklyHoliday(d),
		})
	}

	response.Success(w, result)
}

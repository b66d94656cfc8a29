package echoapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/event"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
)

const dayLayout = "2006-01-02"

type variationsApi struct {
	driver  *worker.Driver
	backend string // school backend base URL
}

func registerVariationsAPI(app *echo.Echo, driver *worker.Driver) {
	api := variationsApi{
		driver:  driver,
		backend: core.Conf.GetString("backendURL"),
	}
	app.GET("/variazioni", api.query)
}

// query returns the timetable variations for one day, filtered down to a
// class section or a professor. Events come from the school backend through
// the worker's network-first route, so the last good copy still answers
// when the backend is unreachable.
func (api *variationsApi) query(ctx echo.Context) error {
	day, err := parseDay(ctx.QueryParam("date"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: err.Error()})
	}
	section := ctx.QueryParam("section")
	professor := ctx.QueryParam("professor")

	events, err := api.fetchEvents(ctx, day, section)
	if err != nil {
		return err
	}

	events = event.OnDay(events, day)
	if section != "" {
		events = event.FilterByClass(events, section)
	}
	if professor != "" {
		events = event.FilterByProfessor(events, professor)
	}
	events = event.SortByStart(events)
	if events == nil {
		events = []event.Event{}
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"date":   day.Format(dayLayout),
		"events": events,
	})
}

func (api *variationsApi) fetchEvents(ctx echo.Context, day time.Time, section string) ([]event.Event, error) {
	q := url.Values{}
	q.Set("date", day.Format(dayLayout))
	if section != "" {
		q.Set("section", core.CleanString(section, true /* upper */))
	}

	req, err := http.NewRequest(http.MethodGet, api.backend+"/events?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building events request")
	}
	req = req.WithContext(ctx.Request().Context())

	resp, err := api.driver.Dispatch(req.Context(), worker.Event{Kind: worker.KindFetch, Request: req})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.Wrap(core.ErrNetworkUnavailable, "fetching events")
	}
	if resp.Status != http.StatusOK {
		return nil, core.BackendRejectedError{Status: resp.Status}
	}

	var events []event.Event
	if err := json.Unmarshal(resp.Body, &events); err != nil {
		return nil, errors.Wrap(err, "decoding events")
	}
	return events, nil
}

// parseDay accepts "today", "tomorrow", an ISO date or empty (today).
// Days are reckoned in UTC, matching how events are bucketed per date.
func parseDay(raw string) (time.Time, error) {
	now := time.Now().UTC()
	switch raw {
	case "", "today", "oggi":
		return now.Truncate(24 * time.Hour), nil
	case "tomorrow", "domani":
		return now.Truncate(24*time.Hour).AddDate(0, 0, 1), nil
	}
	day, err := time.Parse(dayLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("must be today, tomorrow or YYYY-MM-DD")
	}
	return day, nil
}

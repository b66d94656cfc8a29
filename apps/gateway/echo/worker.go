package echoapi

import (
	"io/ioutil"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core/notification"
	"github.com/aamritt0/FermiToday-pwa/core/worker"
)

type workerApi struct {
	driver *worker.Driver
	hub    *Hub
}

func registerWorkerAPI(app *echo.Echo, driver *worker.Driver, hub *Hub) {
	api := workerApi{driver: driver, hub: hub}

	wg := app.Group("/worker")
	wg.GET("/version", api.version)
	wg.GET("/state", api.state)
	wg.POST("/message", api.message)
	wg.GET("/notifications", api.notifications)
	wg.POST("/notifications/click", api.click)

	// inbound push deliveries from the relay
	app.POST("/push", api.push)

	cg := app.Group("/clients")
	cg.POST("", api.registerClient)
	cg.DELETE("/:id", api.unregisterClient)
	cg.GET("/:id/messages", api.drainClient)
}

// Handlers

// version answers like a page asking GET_VERSION over the message channel.
func (api *workerApi) version(ctx echo.Context) error {
	reply := make(chan string, 1)
	msg := worker.Message{Type: worker.MessageGetVersion, Reply: reply}
	if _, err := api.driver.Dispatch(ctx.Request().Context(), worker.Event{Kind: worker.KindMessage, Message: &msg}); err != nil {
		return errors.Wrap(err, "dispatching version query")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"version": <-reply})
}

func (api *workerApi) state(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"state":   api.driver.State().String(),
		"version": api.driver.Version(),
	})
}

func (api *workerApi) message(ctx echo.Context) error {
	var data worker.Message
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Message")
	}
	switch data.Type {
	case worker.MessageSkipWaiting:
		if _, err := api.driver.Dispatch(ctx.Request().Context(), worker.Event{Kind: worker.KindMessage, Message: &data}); err != nil {
			return errors.Wrap(err, "dispatching message")
		}
		return ctx.NoContent(http.StatusAccepted)
	case worker.MessageGetVersion:
		return api.version(ctx)
	default:
		return errUnknownMessage
	}
}

// push dispatches a raw payload exactly as a push service would deliver it:
// possibly empty, possibly not JSON.
func (api *workerApi) push(ctx echo.Context) error {
	body, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading push payload")
	}
	ev := worker.Event{Kind: worker.KindPush, Payload: body, DeliveredAt: time.Now()}
	if _, err := api.driver.Dispatch(ctx.Request().Context(), ev); err != nil {
		return errors.Wrap(err, "dispatching push")
	}
	return ctx.NoContent(http.StatusAccepted)
}

func (api *workerApi) notifications(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.hub.Notifications())
}

type clickRequest struct {
	Tag  string            `json:"tag"`
	Data notification.Data `json:"data"`
}

func (api *workerApi) click(ctx echo.Context) error {
	var data clickRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to clickRequest")
	}
	if _, ok := api.hub.Notification(data.Tag); !ok {
		return errHttpNotFound
	}
	ev := worker.Event{
		Kind: worker.KindNotificationClick,
		Clicked: &worker.Clicked{
			Tag:     data.Tag,
			Data:    data.Data,
			Clients: api.hub.Clients(),
		},
	}
	if _, err := api.driver.Dispatch(ctx.Request().Context(), ev); err != nil {
		return errors.Wrap(err, "dispatching click")
	}
	return ctx.NoContent(http.StatusAccepted)
}

type clientRequest struct {
	URL string `json:"url"`
}

func (api *workerApi) registerClient(ctx echo.Context) error {
	var data clientRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to clientRequest")
	}
	id := api.hub.Register(data.URL)
	return ctx.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (api *workerApi) unregisterClient(ctx echo.Context) error {
	api.hub.Unregister(ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *workerApi) drainClient(ctx echo.Context) error {
	msgs, err := api.hub.Drain(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	if msgs == nil {
		msgs = []interface{}{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

// shellHandler serves any unclaimed GET through the worker's fetch routing,
// so the cached app shell answers even with the upstream down.
func shellHandler(driver *worker.Driver) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ev := worker.Event{Kind: worker.KindFetch, Request: ctx.Request()}
		resp, err := driver.Dispatch(ctx.Request().Context(), ev)
		if err != nil {
			return err
		}
		if resp == nil {
			return echo.NewHTTPError(http.StatusGatewayTimeout, "offline and not cached")
		}
		h := ctx.Response().Header()
		for k, vs := range resp.Header {
			for _, v := range vs {
				h.Add(k, v)
			}
		}
		contentType := resp.Header.Get(echo.HeaderContentType)
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}
		return ctx.Blob(resp.Status, contentType, resp.Body)
	}
}

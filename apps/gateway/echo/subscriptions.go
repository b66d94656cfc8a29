package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core/prefs"
	"github.com/aamritt0/FermiToday-pwa/core/subscription"
)

type subscriptionApi struct {
	svc        *subscription.Service
	prefsSvc   *prefs.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerSubscriptionAPI(
	app *echo.Echo,
	svc *subscription.Service,
	prefsSvc *prefs.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := subscriptionApi{
		svc:        svc,
		prefsSvc:   prefsSvc,
		validate:   validate,
		translator: translator,
	}

	sg := app.Group("/subscriptions")
	sg.POST("", api.enable)
	sg.DELETE("", api.disable)
	sg.PUT("/preferences", api.updatePreferences)
	sg.GET("/preferences", api.getPreferences)
}

// Handlers

func (api *subscriptionApi) enable(ctx echo.Context) error {
	var data subscription.Preferences
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Preferences")
	}
	data.Clean()
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	rec, err := api.svc.Enable(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	if _, err := api.prefsSvc.SetNotification(ctx.Request().Context(), true, data); err != nil {
		return errors.Wrap(err, "persisting notification settings")
	}

	return ctx.JSON(http.StatusCreated, rec)
}

func (api *subscriptionApi) disable(ctx echo.Context) error {
	if err := api.svc.Disable(ctx.Request().Context()); err != nil {
		return err
	}

	s, err := api.prefsSvc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	if _, err := api.prefsSvc.SetNotification(ctx.Request().Context(), false, s.Notification); err != nil {
		return errors.Wrap(err, "persisting notification settings")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (api *subscriptionApi) updatePreferences(ctx echo.Context) error {
	var data subscription.Preferences
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Preferences")
	}
	data.Clean()
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	s, err := api.prefsSvc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	if _, err := api.prefsSvc.SetNotification(ctx.Request().Context(), s.NotificationsEnabled, data); err != nil {
		return errors.Wrap(err, "persisting notification settings")
	}

	// best-effort: skipped when not subscribed, failures only logged
	api.svc.SyncPreferences(ctx.Request().Context(), data)

	return ctx.JSON(http.StatusOK, data)
}

func (api *subscriptionApi) getPreferences(ctx echo.Context) error {
	s, err := api.prefsSvc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"enabled":     s.NotificationsEnabled,
		"preferences": s.Notification,
	})
}

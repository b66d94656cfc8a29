package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/prefs"
)

type settingsApi struct {
	svc *prefs.Service
}

func registerSettingsAPI(app *echo.Echo, svc *prefs.Service) {
	api := settingsApi{svc: svc}

	sg := app.Group("/settings")
	sg.GET("", api.retrieve)
	sg.PUT("/theme", api.setTheme)
	sg.PUT("/onboarding", api.completeOnboarding)
	sg.POST("/sections", api.addSection)
	sg.DELETE("/sections/:code", api.removeSection)
	sg.POST("/professors", api.addProfessor)
	sg.DELETE("/professors/:name", api.removeProfessor)
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

type themeRequest struct {
	Mode string `json:"mode"`
}

func (api *settingsApi) setTheme(ctx echo.Context) error {
	var data themeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to themeRequest")
	}
	switch data.Mode {
	case prefs.ThemeLight, prefs.ThemeDark, prefs.ThemeAuto:
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "mode", Error: "must be light, dark or auto"})
	}

	s, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	s.ThemeMode = data.Mode
	if err := api.svc.Save(ctx.Request().Context(), s); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) completeOnboarding(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading settings")
	}
	s.OnboardingComplete = true
	if err := api.svc.Save(ctx.Request().Context(), s); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

type sectionRequest struct {
	Code string `json:"code"`
}

func (api *settingsApi) addSection(ctx echo.Context) error {
	var data sectionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to sectionRequest")
	}
	if core.CleanString(data.Code, true /* upper */) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "code", Error: "this field is required"})
	}
	s, err := api.svc.AddSection(ctx.Request().Context(), data.Code)
	if err != nil {
		return errors.Wrap(err, "adding section")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) removeSection(ctx echo.Context) error {
	s, err := api.svc.RemoveSection(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "removing section")
	}
	return ctx.JSON(http.StatusOK, s)
}

type professorRequest struct {
	Name string `json:"name"`
}

func (api *settingsApi) addProfessor(ctx echo.Context) error {
	var data professorRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to professorRequest")
	}
	if core.CleanString(data.Name, true /* upper */) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field is required"})
	}
	s, err := api.svc.AddProfessor(ctx.Request().Context(), data.Name)
	if err != nil {
		return errors.Wrap(err, "adding professor")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) removeProfessor(ctx echo.Context) error {
	s, err := api.svc.RemoveProfessor(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return errors.Wrap(err, "removing professor")
	}
	return ctx.JSON(http.StatusOK, s)
}

package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamritt0/FermiToday-pwa/core/prefs"
)

func Test_settingsApi_defaults(t *testing.T) {
	rig := setup(t)

	req, rec := newRequest(http.MethodGet, "/settings")
	rig.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var s prefs.Settings
	decodeBody(t, rec, &s)
	assert.Equal(t, prefs.ThemeAuto, s.ThemeMode)
	assert.False(t, s.OnboardingComplete)
	assert.True(t, s.Notification.DigestEnabled)
}

func Test_settingsApi_theme(t *testing.T) {
	rig := setup(t)

	req, rec := newRequest(http.MethodPut, "/settings/theme", []byte(`{"mode":"dark"}`))
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var s prefs.Settings
	decodeBody(t, rec, &s)
	assert.Equal(t, prefs.ThemeDark, s.ThemeMode)

	req, rec = newRequest(http.MethodPut, "/settings/theme", []byte(`{"mode":"neon"}`))
	rig.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_settingsApi_sections(t *testing.T) {
	rig := setup(t)

	add := func(code string) *prefs.Settings {
		req, rec := newRequest(http.MethodPost, "/settings/sections", []byte(`{"code":"`+code+`"}`))
		rig.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var s prefs.Settings
		decodeBody(t, rec, &s)
		return &s
	}

	s := add("5a")
	assert.Equal(t, []string{"5A"}, s.SavedSections)

	// duplicates are ignored, case-insensitively
	s = add("5A")
	assert.Equal(t, []string{"5A"}, s.SavedSections)

	s = add("3C")
	assert.Equal(t, []string{"5A", "3C"}, s.SavedSections)

	req, rec := newRequest(http.MethodDelete, "/settings/sections/5A")
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var after prefs.Settings
	decodeBody(t, rec, &after)
	assert.Equal(t, []string{"3C"}, after.SavedSections)

	// empty code rejected
	req, rec = newRequest(http.MethodPost, "/settings/sections", []byte(`{"code":"  "}`))
	rig.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_settingsApi_professors(t *testing.T) {
	rig := setup(t)

	req, rec := newRequest(http.MethodPost, "/settings/professors", []byte(`{"name":"rossi"}`))
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var s prefs.Settings
	decodeBody(t, rec, &s)
	assert.Equal(t, []string{"ROSSI"}, s.SavedProfessors)

	req, rec = newRequest(http.MethodDelete, "/settings/professors/ROSSI")
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &s)
	assert.Empty(t, s.SavedProfessors)
}

func Test_settingsApi_onboarding(t *testing.T) {
	rig := setup(t)

	req, rec := newRequest(http.MethodPut, "/settings/onboarding", nil)
	rig.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var s prefs.Settings
	decodeBody(t, rec, &s)
	assert.True(t, s.OnboardingComplete)
}

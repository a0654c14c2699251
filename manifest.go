package folio

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type webManifest struct {
	Name        string         `json:"name"`
	ShortName   string         `json:"short_name"`
	Description string         `json:"description,omitempty"`
	StartURL    string         `json:"start_url"`
	Display     string         `json:"display"`
	Icons       []manifestIcon `json:"icons"`
}

func (a *App) handleManifest(c echo.Context) error {
	m := webManifest{
		Name:        a.Config.Name,
		ShortName:   a.Config.ShortName,
		Description: a.Config.Description,
		StartURL:    "/",
		Display:     "standalone",
		Icons: []manifestIcon{
			{Src: "/public/favicon-32x32.png", Sizes: "32x32", Type: "image/png"},
			{Src: "/public/favicon-16x16.png", Sizes: "16x16", Type: "image/png"},
			{Src: "/public/android-chrome-192x192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/public/android-chrome-512x512.png", Sizes: "512x512", Type: "image/png"},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/manifest+json; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return json.NewEncoder(c.Response()).Encode(m)
}

package folio

import "embed"

// EmbeddedAssets contains static assets shipped with folio: folio.js, the
// view counter client.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

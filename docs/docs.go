// Package docs registers the OpenAPI description of the /v1 API with swag.
// swagger.json mirrors the annotations on the handlers in internal/handlers.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds the values substituted into the template when the
// document is served.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Hotel API",
	Description:      "Rooms, bookings and the back office of a single hotel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

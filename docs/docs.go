// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in with email and password", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/v1/auth/refresh-token": {"post": {"tags": ["Auth"], "summary": "Exchange a refresh token for a new token pair", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "End the current session", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current session user", "responses": {"200": {"description": "OK"}}}},
        "/v1/rooms": {
            "get": {"tags": ["Room"], "summary": "List rooms", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Room"], "summary": "Create a room", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/rooms/{id}": {
            "get": {"tags": ["Room"], "summary": "Get a room", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Room"], "summary": "Update a room", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Room"], "summary": "Delete a room", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/rooms/{id}/availability": {"get": {"tags": ["Room"], "summary": "Check room availability for a date range", "responses": {"200": {"description": "OK"}}}},
        "/v1/rooms/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Room"], "summary": "Change room status", "responses": {"200": {"description": "OK"}}}},
        "/v1/rooms/{id}/image": {"put": {"security": [{"BearerAuth": []}], "tags": ["Room"], "summary": "Upload a room image", "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "List bookings", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Booking"], "summary": "Create a booking", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/bookings/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Export bookings as a spreadsheet", "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Get a booking", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Delete a booking", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/bookings/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["Booking"], "summary": "Move a booking through its lifecycle", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/v1/staff": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Staff"], "summary": "List staff", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Staff"], "summary": "Add a staff member", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/staff/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Staff"], "summary": "Get a staff member", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["Staff"], "summary": "Update a staff member", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Staff"], "summary": "Remove a staff member", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["Dashboard"], "summary": "Occupancy, revenue and today's movements", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hotel Management API",
	Description:      "Rooms, bookings, staff and the occupancy dashboard of a single hotel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs serves the OpenAPI description of the marketplace API. It
// follows the layout swag init generates from the handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login/email": {
            "post": {"tags": ["auth"], "summary": "Login with email", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/auth/login/phone": {
            "post": {"tags": ["auth"], "summary": "Login with phone", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/auth/validate": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Validate session", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "post": {"tags": ["users"], "summary": "Register a user", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/id/{id}": {
            "get": {"tags": ["users"], "summary": "Get user by id", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/email/{email}": {
            "get": {"tags": ["users"], "summary": "Get user by email", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/otp/resend": {
            "post": {"tags": ["users"], "summary": "Resend verification code", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/otp/verify": {
            "post": {"tags": ["users"], "summary": "Verify email", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/password/reset": {
            "post": {"tags": ["users"], "summary": "Request password reset", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/password/reset/{token}": {
            "get": {"tags": ["users"], "summary": "Verify reset token", "parameters": [{"type": "string", "name": "token", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/users/password/update": {
            "post": {"tags": ["users"], "summary": "Set a new password", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/settings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["settings"], "summary": "Get account settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/orders": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Create an order", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/orders/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get an order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Delete an order", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/orders/{id}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update order status", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/messages": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "Post a chat message", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/messages/{orderId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "List chat messages", "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}, "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.Envelope"}}}}
        }
    },
    "definitions": {
        "handler.Envelope": {
            "type": "object",
            "properties": {
                "result": {"type": "string", "enum": ["success", "error"]},
                "message": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Delivery Marketplace API",
	Description:      "Accounts, email verification, password reset, orders and order chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

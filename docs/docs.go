// Package docs holds the swagger document for the HTTP API. It is generated
// by swag from the handler annotations in internal/adapters/in/http:
//
//	swag init -g cmd/app/main.go -d ./,./internal/adapters/in/http
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
        "/connections/{connection_id}": {
            "put": {
                "consumes": ["application/json"],
                "tags": ["connections"],
                "summary": "Associate a bridge connection with a call",
                "parameters": [
                    {"type": "string", "description": "Connection ID", "name": "connection_id", "in": "path", "required": true},
                    {"description": "Call", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.BindConnectionRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            },
            "delete": {
                "tags": ["connections"],
                "summary": "Forget a bridge connection",
                "parameters": [
                    {"type": "string", "description": "Connection ID", "name": "connection_id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/functions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "List the functions the voice agent may call",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.FunctionList"}}}
            }
        },
        "/functions/{name}": {
            "post": {
                "description": "The body is the argument object. Failures are reported in the result with ok=false.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Call a function",
                "parameters": [
                    {"type": "string", "description": "Function name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Voice bridge connection", "name": "X-Connection-Id", "in": "header"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/menu": {
            "get": {
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Current menu",
                "parameters": [
                    {"type": "boolean", "description": "Refetch from the source", "name": "refresh", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.Menu"}}}
            }
        },
        "/orders/in-progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Orders not yet ready, newest first",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of orders", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.View"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/{order_number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Most recent order with a number",
                "parameters": [
                    {"type": "string", "description": "Four-digit order number", "name": "order_number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.View"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        },
        "/orders/{order_number}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order to a new kitchen status",
                "parameters": [
                    {"type": "string", "description": "Four-digit order number", "name": "order_number", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateOrderStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.View"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.Error"}}
                }
            }
        }
    },
    "definitions": {
        "http.BindConnectionRequest": {
            "type": "object",
            "properties": {"call_sid": {"type": "string"}}
        },
        "http.Error": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "http.FunctionList": {
            "type": "object",
            "properties": {"functions": {"type": "array", "items": {"type": "object"}}}
        },
        "http.Menu": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"},
                "description": {"type": "string"},
                "flavors": {"type": "array", "items": {"type": "string"}},
                "toppings": {"type": "array", "items": {"type": "string"}},
                "addons": {"type": "array", "items": {"type": "string"}},
                "sizes": {"type": "array", "items": {"type": "string"}},
                "prices": {"type": "object", "additionalProperties": {"type": "object", "additionalProperties": {"type": "number"}}}
            }
        },
        "http.UpdateOrderStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["received", "preparing", "ready"]}}
        },
        "order.View": {
            "type": "object",
            "properties": {
                "order_number": {"type": "string"},
                "items": {"type": "array", "items": {"type": "object"}},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "order_type": {"type": "string"},
                "status": {"type": "string"},
                "created_at": {"type": "integer", "format": "int64"},
                "saved_at": {"type": "string"},
                "committed": {"type": "boolean"},
                "pricing": {"type": "object"},
                "charges": {"type": "object"},
                "total": {"type": "number"},
                "record_id": {"type": "string"},
                "warning": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "AI Voice Pizza Ordering API",
	Description:      "Function-call boundary for the voice agent and operator endpoints for the kitchen.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin login",
                "parameters": [
                    {
                        "description": "Admin secret",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List customer signups",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/customers/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a customer signup",
                "parameters": [
                    {"type": "string", "description": "Submission id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deleteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.healthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.healthResponse"}}
                }
            }
        },
        "/api/merchants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List merchant applications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/merchants/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a merchant application",
                "parameters": [
                    {"type": "string", "description": "Submission id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deleteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/submit": {
            "post": {
                "description": "Stores a customer or merchant signup selected by the type field.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Join the waitlist",
                "parameters": [
                    {
                        "description": "Customer or merchant signup",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.submitRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.submitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.validationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.duplicateResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.deleteResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "customer deleted"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.duplicateResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "duplicate submission"},
                "message": {"type": "string", "example": "this email is already registered"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "submission not found"}
            }
        },
        "handler.listResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 1},
                "data": {"type": "array", "items": {}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "s3cret"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "success": {"type": "boolean", "example": true},
                "token": {"type": "string"}
            }
        },
        "handler.submitRequest": {
            "type": "object",
            "properties": {
                "budget": {"type": "string", "enum": ["under-100", "100-250", "250-500", "500-1000", "1000+"], "example": "100-250"},
                "businessName": {"type": "string", "example": "Atelier Nord"},
                "category": {"type": "string", "enum": ["clothing", "footwear", "accessories", "jewelry", "bags", "other"], "example": "accessories"},
                "contactName": {"type": "string", "example": "Sam Ortiz"},
                "email": {"type": "string", "example": "jo@example.com"},
                "name": {"type": "string", "example": "Jo Lin"},
                "style": {"type": "string", "enum": ["minimalist", "vintage", "streetwear", "formal", "casual", "other"], "example": "minimalist"},
                "type": {"type": "string", "enum": ["customer", "merchant"], "example": "customer"}
            }
        },
        "handler.submitResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "6f1c2f0e-8d4b-4c3e-9a57-0b6d1e2f3a4b"},
                "message": {"type": "string", "example": "thanks for joining the waitlist"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.validationErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"type": "string"}, "example": ["email must be a valid email address"]},
                "error": {"type": "string", "example": "validation failed"}
            }
        },
        "handlers.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handlers.healthResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handlers.dependencyStatus"}
                },
                "status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
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
	Title:            "StyleMatch Waitlist API",
	Description:      "Customer and merchant waitlist intake with admin review endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

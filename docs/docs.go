// Package docs holds the OpenAPI template served at /swagger-doc.json.
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
        "/notes": {
            "get": {
                "description": "Filters by exact title, else by owner. An empty result is reported as a message object.",
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List notes",
                "parameters": [
                    {"type": "string", "description": "Exact title", "name": "title", "in": "query"},
                    {"type": "string", "description": "Owner id", "name": "userId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.NoteResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note",
                "parameters": [
                    {"description": "Note body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Delete a note",
                "parameters": [
                    {"description": "Note id", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DeleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "patch": {
                "description": "Rewrites title and text. The note is always marked completed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Update a note",
                "parameters": [
                    {"description": "Note fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "description": "Password hashes are never returned.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "User body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "delete": {
                "description": "Refused while the user owns notes. Replies with a plain JSON string.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"description": "User id", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DeleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "patch": {
                "description": "The password is re-hashed only when a non-empty value is supplied.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"description": "User fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateNoteRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "Replace the toner"},
                "title": {"type": "string", "example": "Fix printer"},
                "user": {"type": "string", "example": "5f0c2a7e-3f5e-4a58-9d8f-1b2b8f7f0e11"}
            }
        },
        "dto.CreateUserRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "x"},
                "roles": {"type": "array", "items": {"type": "string"}, "example": ["Employee"]},
                "username": {"type": "string", "example": "bob"}
            }
        },
        "dto.DeleteRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.NoteResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "completed": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "text": {"type": "string"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "dto.UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "id": {"type": "string"},
                "password": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "username": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "active": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "updatedAt": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3500",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Technotes API",
	Description:      "Notes and users management API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

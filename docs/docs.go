// Package docs registra la definición OpenAPI servida en /swagger/*.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/event-categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Catálogo de categorías de eventos",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Registrar un evento para uno o varios niños",
                "parameters": [
                    {"type": "string", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "name": "Authorization", "in": "header"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid payload"},
                    "401": {"description": "unauthorized"},
                    "403": {"description": "forbidden"},
                    "422": {"description": "could not save the event"},
                    "500": {"description": "could not save the event"}
                }
            }
        },
        "/events/{eventID}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Borrado lógico de un evento",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "event not found"}}
            }
        },
        "/children/{childID}/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Timeline de un niño",
                "parameters": [
                    {"type": "string", "name": "childID", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"},
                    {"type": "string", "name": "categories", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/children": {
            "post": {"tags": ["children"], "summary": "Crear niño", "responses": {"201": {"description": "Created"}}}
        },
        "/children/{childID}": {
            "get": {"tags": ["children"], "summary": "Ver niño", "responses": {"200": {"description": "OK"}}}
        },
        "/classrooms": {
            "get": {"tags": ["classrooms"], "summary": "Listar salas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["classrooms"], "summary": "Crear sala", "responses": {"201": {"description": "Created"}}}
        },
        "/classrooms/{classroomID}": {
            "get": {"tags": ["classrooms"], "summary": "Ver sala", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["classrooms"], "summary": "Renombrar sala", "responses": {"200": {"description": "OK"}}}
        },
        "/classrooms/{classroomID}/children": {
            "get": {"tags": ["children"], "summary": "Niños de una sala", "responses": {"200": {"description": "OK"}}}
        },
        "/me": {
            "get": {"tags": ["users"], "summary": "Mi perfil", "responses": {"200": {"description": "OK"}}}
        },
        "/me/children": {
            "get": {"tags": ["children"], "summary": "Mis hijos (tutor)", "responses": {"200": {"description": "OK"}}}
        },
        "/users": {
            "get": {"tags": ["users"], "summary": "Listar usuarios por rol", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Crear usuario", "responses": {"201": {"description": "Created"}}}
        },
        "/guard/{screen}": {
            "get": {"tags": ["access"], "summary": "Evaluar acceso a una pantalla", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Daycare Log API",
	Description:      "Registro de eventos de cuidado (comida, sueño, pañales, medicación, notas) por niño.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registra en swag el documento Swagger 2.0 que sirve /swagger/*.
// Se mantiene a mano junto a las anotaciones godoc de los handlers.
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
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Perfil; birth_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid json / birth_date inválido", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Perfil de mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/vaccines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Listar registros de seguimiento (incluye archivados)",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vaccines.trackingResponse"}}}
                }
            }
        },
        "/pets/{petID}/vaccines/initial-series": {
            "post": {
                "description": "Calcula el calendario de dosis según la especie de la mascota a partir de start_date.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Iniciar serie de vacunación inicial",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "start_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaccines.setupInitialSeriesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/vaccines.trackingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}},
                    "409": {"description": "ALREADY_TRACKED", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/vaccines/initial-series/doses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Registrar dosis de la serie inicial",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Dosis aplicada; date_administered en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaccines.recordDoseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaccines.trackingResponse"}},
                    "400": {"description": "FUTURE_DATE_NOT_ALLOWED / UNSUPPORTED_VACCINE / DOSE_NOT_FOUND", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}},
                    "404": {"description": "TRACKING_NOT_FOUND", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/vaccines/regular": {
            "post": {
                "description": "Agrega una aplicación al historial periódico. Si la mascota no tenía seguimiento periódico, se crea.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Registrar vacuna periódica",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Vacuna aplicada; date_administered en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaccines.recordRegularRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaccines.trackingResponse"}},
                    "400": {"description": "FUTURE_DATE_NOT_ALLOWED / UNSUPPORTED_VACCINE", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/vaccines/status": {
            "get": {
                "description": "Para INITIAL_SERIES: IN_PROGRESS, OVERDUE, COMPLETED. Para REGULAR: UP_TO_DATE, DUE_SOON, OVERDUE.",
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Estado de vacunación",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaccines.statusResponse"}},
                    "404": {"description": "TRACKING_NOT_FOUND", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/vaccines/transition": {
            "post": {
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Pasar de serie inicial a seguimiento periódico",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaccines.trackingResponse"}},
                    "404": {"description": "TRACKING_NOT_FOUND", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}},
                    "409": {"description": "SERIES_NOT_COMPLETE", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        },
        "/vaccines/catalog/{species}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vaccines"],
                "summary": "Calendario de referencia por especie",
                "parameters": [
                    {"type": "string", "description": "dog | cat", "name": "species", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaccines.catalogResponse"}},
                    "400": {"description": "UNSUPPORTED_SPECIES", "schema": {"$ref": "#/definitions/vaccines.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "pets.Sex": {"type": "string", "enum": ["male", "female", "unknown"]},
        "pets.Species": {"type": "string", "enum": ["dog", "cat"]},
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "microchip": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "sex": {"type": "string"},
                "species": {"type": "string"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "birth_date": {"type": "string"},
                "breed": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "microchip": {"type": "string"},
                "name": {"type": "string"},
                "notes": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "sex": {"$ref": "#/definitions/pets.Sex"},
                "species": {"$ref": "#/definitions/pets.Species"},
                "updated_at": {"type": "string"}
            }
        },
        "vaccines.catalogResponse": {
            "type": "object",
            "properties": {
                "initial_series": {"type": "array", "items": {"$ref": "#/definitions/vaccines.templateEntryResponse"}},
                "intervals": {"type": "array", "items": {"$ref": "#/definitions/vaccines.intervalResponse"}},
                "species": {"$ref": "#/definitions/pets.Species"}
            }
        },
        "vaccines.doseResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "date_administered": {"type": "string"},
                "date_due": {"type": "string"},
                "dose_number": {"type": "integer"},
                "notes": {"type": "string"},
                "vaccine_name": {"type": "string"},
                "vet_id": {"type": "string"}
            }
        },
        "vaccines.dueItemResponse": {
            "type": "object",
            "properties": {
                "dose_number": {"type": "integer"},
                "due_date": {"type": "string"},
                "vaccine_name": {"type": "string"}
            }
        },
        "vaccines.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "vaccines.initialSeriesResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "doses": {"type": "array", "items": {"$ref": "#/definitions/vaccines.doseResponse"}},
                "start_date": {"type": "string"}
            }
        },
        "vaccines.intervalResponse": {
            "type": "object",
            "properties": {
                "core": {"type": "boolean"},
                "interval_days": {"type": "integer"},
                "vaccine_name": {"type": "string"}
            }
        },
        "vaccines.recordDoseRequest": {
            "type": "object",
            "properties": {
                "date_administered": {"type": "string"},
                "dose_number": {"type": "integer"},
                "notes": {"type": "string"},
                "vaccine_name": {"type": "string"},
                "vet_id": {"type": "string"}
            }
        },
        "vaccines.recordRegularRequest": {
            "type": "object",
            "properties": {
                "batch_number": {"type": "string"},
                "date_administered": {"type": "string"},
                "notes": {"type": "string"},
                "vaccine_name": {"type": "string"},
                "vet_id": {"type": "string"}
            }
        },
        "vaccines.setupInitialSeriesRequest": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"}
            }
        },
        "vaccines.statusResponse": {
            "type": "object",
            "properties": {
                "lifecycle": {"type": "string"},
                "next_due": {"$ref": "#/definitions/vaccines.dueItemResponse"},
                "record_id": {"type": "string"},
                "status": {"type": "string"},
                "tracking_type": {"type": "string"},
                "upcoming": {"type": "array", "items": {"$ref": "#/definitions/vaccines.dueItemResponse"}}
            }
        },
        "vaccines.templateEntryResponse": {
            "type": "object",
            "properties": {
                "dose_number": {"type": "integer"},
                "notes": {"type": "string"},
                "vaccine_name": {"type": "string"},
                "week_offset": {"type": "integer"}
            }
        },
        "vaccines.trackingResponse": {
            "type": "object",
            "properties": {
                "archived_at": {"type": "string"},
                "created_at": {"type": "string"},
                "history": {"type": "array", "items": {"$ref": "#/definitions/vaccines.vaccinationResponse"}},
                "id": {"type": "string"},
                "initial_series": {"$ref": "#/definitions/vaccines.initialSeriesResponse"},
                "lifecycle": {"type": "string"},
                "pet_id": {"type": "string"},
                "species": {"$ref": "#/definitions/pets.Species"},
                "tracking_type": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "vaccines.vaccinationResponse": {
            "type": "object",
            "properties": {
                "batch_number": {"type": "string"},
                "date_administered": {"type": "string"},
                "next_due_date": {"type": "string"},
                "notes": {"type": "string"},
                "vaccine_name": {"type": "string"},
                "vet_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo permite ajustar Host/BasePath al arrancar.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Health Record API",
	Description:      "Seguimiento de vacunas de mascotas: serie inicial, refuerzos periódicos y estado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document served at /swagger/index.html.
// It mirrors the swag annotations on cmd/api and internal/handler and can be
// regenerated with swag init -g cmd/api/main.go.
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
        "/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sistema"
                ],
                "summary": "Estado del backend",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "endpoints": {
                                            "type": "array",
                                            "items": {
                                                "type": "string"
                                            }
                                        },
                                        "mensaje": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "description": "Compara la contraseña con ADMIN_PASSWORD_HASH (bcrypt) y emite un JWT.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Login de operador",
                "parameters": [
                    {
                        "description": "Contraseña",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.LoginSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Administración no configurada",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/admin/orientaciones": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Devuelve las últimas orientaciones guardadas, más recientes primero.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Historial de orientaciones",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "1-200, por defecto 50",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "count": {
                                            "type": "integer"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "orientaciones": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.OrientationRecord"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/admin/reload": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Fuerza la descarga de los CSV de matrícula FP y de centros en paralelo.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Recargar los datasets de la GVA",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "centros": {
                                            "$ref": "#/definitions/centros.Stats"
                                        },
                                        "fp": {
                                            "$ref": "#/definitions/fpindex.Stats"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/centros": {
            "get": {
                "description": "Ordenados por probabilidad de impartir FP. only_fp=1 descarta los improbables.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Datos GVA"
                ],
                "summary": "Centros educativos de un municipio",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Municipio",
                        "name": "municipio",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "1-100, por defecto 25",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "1 para filtrar",
                        "name": "only_fp",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "centros": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Centro"
                                            }
                                        },
                                        "count": {
                                            "type": "integer"
                                        },
                                        "municipio": {
                                            "type": "string"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "source": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/ciudades": {
            "get": {
                "description": "Búsqueda exacta y, si no hay coincidencia, aproximada (token_set_ratio >= 55).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Datos GVA"
                ],
                "summary": "Municipios donde se imparte un ciclo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Nombre del ciclo",
                        "name": "ciclo",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Grado (Medio, Superior...)",
                        "name": "grado",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "ciclo": {
                                            "type": "string"
                                        },
                                        "ciudades": {
                                            "type": "array",
                                            "items": {
                                                "type": "string"
                                            }
                                        },
                                        "count": {
                                            "type": "integer"
                                        },
                                        "grado": {
                                            "type": "string"
                                        },
                                        "match": {
                                            "$ref": "#/definitions/fpindex.MatchInfo"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "source": {
                                            "type": "string"
                                        },
                                        "warning": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/ciudades/debug": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Datos GVA"
                ],
                "summary": "Recargar y describir el índice de ciclos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "type": "string"
                                        },
                                        "index_cycles": {
                                            "type": "integer"
                                        },
                                        "index_pairs": {
                                            "type": "integer"
                                        },
                                        "matcher": {
                                            "type": "string"
                                        },
                                        "municipios_count": {
                                            "type": "integer"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "source": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/municipios": {
            "get": {
                "description": "Con q filtra de forma aproximada (mejores coincidencias primero).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Datos GVA"
                ],
                "summary": "Municipios con oferta de FP",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Texto a buscar",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Máximo de resultados",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "count": {
                                            "type": "integer"
                                        },
                                        "municipios": {
                                            "type": "array",
                                            "items": {
                                                "type": "string"
                                            }
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "source": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/orientacion": {
            "post": {
                "description": "Envía las respuestas del cuestionario a Amazon Nova y devuelve 3 ciclos formativos.\nSi el modelo no devuelve JSON parseable la respuesta es 200 con ok=false.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Orientación"
                ],
                "summary": "Recomendar ciclos de FP",
                "parameters": [
                    {
                        "description": "Respuestas del alumno",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.OrientacionResponse"
                        }
                    },
                    "400": {
                        "description": "JSON inválido o vacío",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "Cuestionario demasiado grande",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Demasiadas solicitudes",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error del modelo",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Faltan variables de entorno de Bedrock",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/orientaciones/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Orientación"
                ],
                "summary": "Consultar una orientación guardada",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Id devuelto por /api/orientacion",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "orientacion": {
                                            "$ref": "#/definitions/models.OrientationRecord"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "bedrockReady indica si la configuración de Bedrock permite invocar el modelo.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sistema"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "type": "object"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "bedrockReady": {
                                            "type": "boolean"
                                        },
                                        "matcher": {
                                            "type": "string"
                                        },
                                        "modelId": {
                                            "type": "string"
                                        },
                                        "ok": {
                                            "type": "boolean"
                                        },
                                        "region": {
                                            "type": "string"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/ws/orientacion": {
            "get": {
                "description": "**No es una API HTTP estándar**: conectar con ws:// o wss://.\nEl cliente envía las respuestas del cuestionario como objeto JSON.\nEl servidor responde start, varios delta con el texto parcial del modelo\ny finalmente result (con data e id) o error.\nLa conexión admite varios cuestionarios seguidos, sujetos al mismo límite por IP\nque /api/orientacion. Un mensaje de más de 64 KiB cierra la conexión (1009).",
                "tags": [
                    "Orientación"
                ],
                "summary": "Orientación en streaming (WebSocket)",
                "responses": {
                    "101": {
                        "description": "101 Switching Protocols",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "Faltan variables de entorno de Bedrock",
                        "schema": {
                            "$ref": "#/definitions/handler.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "centros.Stats": {
            "type": "object",
            "properties": {
                "centros": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                },
                "loaded_at": {
                    "type": "string"
                },
                "localidades": {
                    "type": "integer"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "fpindex.MatchInfo": {
            "type": "object",
            "properties": {
                "grado_score": {
                    "type": "integer"
                },
                "match_score": {
                    "type": "integer"
                },
                "matched_ciclo": {
                    "type": "string"
                },
                "matched_grado": {
                    "type": "string"
                },
                "matcher": {
                    "type": "string"
                }
            }
        },
        "fpindex.Stats": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "index_cycles": {
                    "type": "integer"
                },
                "index_pairs": {
                    "type": "integer"
                },
                "loaded_at": {
                    "type": "string"
                },
                "municipios_count": {
                    "type": "integer"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "Falta parámetro 'ciclo'"
                },
                "ok": {
                    "type": "boolean",
                    "example": false
                }
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {
                    "type": "string",
                    "example": "password123"
                }
            }
        },
        "handler.LoginSuccessResponse": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean",
                    "example": true
                },
                "token": {
                    "type": "string",
                    "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
                }
            }
        },
        "handler.OrientacionResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/models.Orientation"
                },
                "id": {
                    "type": "string",
                    "example": "3f0c1e9a-6a4e-4d8b-9f59-2a1c7e0b5d11"
                },
                "ok": {
                    "type": "boolean",
                    "example": true
                }
            }
        },
        "models.Centro": {
            "type": "object",
            "properties": {
                "codigo": {
                    "type": "string"
                },
                "cp": {
                    "type": "string"
                },
                "direccion": {
                    "type": "string"
                },
                "lat": {
                    "type": "number"
                },
                "localidad": {
                    "type": "string"
                },
                "lon": {
                    "type": "number"
                },
                "nombre": {
                    "type": "string"
                },
                "numero": {
                    "type": "string"
                },
                "provincia": {
                    "type": "string"
                },
                "regimen": {
                    "type": "string"
                },
                "telefono": {
                    "type": "string"
                },
                "tipo": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "models.Orientation": {
            "type": "object",
            "properties": {
                "nota_salarios": {
                    "type": "string"
                },
                "recomendaciones": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Recommendation"
                    }
                }
            }
        },
        "models.OrientationRecord": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "model_id": {
                    "type": "string"
                },
                "ok": {
                    "type": "boolean"
                },
                "respuestas": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "resultado": {
                    "$ref": "#/definitions/models.Orientation"
                }
            }
        },
        "models.Recommendation": {
            "type": "object",
            "properties": {
                "ciclo": {
                    "type": "string"
                },
                "encaje": {
                    "type": "integer"
                },
                "familia_profesional": {
                    "type": "string"
                },
                "grado": {
                    "type": "string"
                },
                "motivo": {
                    "type": "string"
                },
                "rango_salarial": {
                    "type": "string"
                },
                "salidas_laborales": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
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
	Title:            "OrientadorFP API",
	Description:      "Orientación de Formación Profesional (Comunitat Valenciana) con Amazon Bedrock Nova y datos abiertos de la GVA.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

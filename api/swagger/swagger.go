package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CivicPulse Issues API",
        "description": "Citizen-reported civic issue intake and management",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Intake", "description": "Issue intake pipeline"},
        {"name": "Issues", "description": "CRUD access to stored issues"},
        {"name": "Analytics", "description": "Dashboard aggregates"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/intake": {
            "post": {
                "tags": ["Intake"],
                "summary": "Report a civic issue",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IntakeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Receipt"},
                    "400": {"description": "Missing userId, transcript and audio"},
                    "502": {"description": "Collaborator failure"}
                }
            }
        },
        "/api/v1/issues": {
            "get": {
                "tags": ["Issues"],
                "summary": "List issues",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "urgency", "in": "query", "type": "string"},
                    {"name": "issueType", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/issues/{id}": {
            "get": {
                "tags": ["Issues"],
                "summary": "Get issue",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Issue not found"}
                }
            },
            "put": {
                "tags": ["Issues"],
                "summary": "Update issue",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "404": {"description": "Issue not found"}
                }
            },
            "delete": {
                "tags": ["Issues"],
                "summary": "Delete issue",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/issues/export": {
            "get": {
                "tags": ["Issues"],
                "summary": "Export issues as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "urgency", "in": "query", "type": "string"},
                    {"name": "issueType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/v1/analytics/summary": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Issue analytics summary",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/analytics/system": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Service instrumentation snapshot",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "IntakeRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "string"},
                "audio": {"type": "string", "description": "base64-encoded audio payload"},
                "transcript": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

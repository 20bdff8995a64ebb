// Package docs registers the OpenAPI description served at /swagger/*.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.signInResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "New user", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/users/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"enum": ["STUDENT", "TEACHER", "MASTER", "COMPANY"], "type": "string", "name": "role", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}}
                }
            }
        },
        "/users/code/{code}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user by login code",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/users/userId/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user by id",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/certificate/type/all": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificate-types"],
                "summary": "List certificate types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.certificateTypeResponse"}}}
                }
            }
        },
        "/certificate/type/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificate-types"],
                "summary": "Create a certificate type",
                "parameters": [
                    {"description": "Type name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createCertificateTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.certificateTypeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/certificate/issue": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "Issue a pending certificate to a student",
                "parameters": [
                    {"description": "Certificate", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.issueCertificateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.certificateResponse"}}
                }
            }
        },
        "/certificate/student/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "List a student's certificates",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.certificateWithTypeResponse"}}}
                }
            }
        },
        "/certificate/teacher/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "List certificates assigned to a teacher",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.certificateWithTypeResponse"}}}
                }
            }
        },
        "/certificate/studentByType/{typeId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "List students holding a certificate of a type",
                "parameters": [{"type": "string", "name": "typeId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.studentCertificateResponse"}}}
                }
            }
        },
        "/certificate/verify/{id}": {
            "get": {
                "tags": ["certificates"],
                "summary": "Verify a certificate",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.verificationResponse"}}
                }
            }
        },
        "/certificate/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "Get a certificate with its type",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.certificateWithTypeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "Sign a pending certificate",
                "parameters": [
                    {"type": "string", "description": "Teacher id", "name": "id", "in": "path", "required": true},
                    {"description": "Scanned certificate", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signCertificateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.certificateResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/certificate/{id}/approve": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["certificates"],
                "summary": "Approve a signed certificate",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.certificateResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.signInRequest": {
            "type": "object", "required": ["code", "password"],
            "properties": {"code": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.signInResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.userResponse"}}
        },
        "handler.createUserRequest": {
            "type": "object", "required": ["code", "name", "role"],
            "properties": {
                "code": {"type": "string"}, "name": {"type": "string"},
                "role": {"type": "string", "enum": ["STUDENT", "TEACHER", "MASTER", "COMPANY"]},
                "password": {"type": "string"}, "image": {"type": "string"}, "dateOfBirth": {"type": "string"}
            }
        },
        "handler.updateUserRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"},
                "password": {"type": "string"}, "dateOfBirth": {"type": "string"}, "role": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "code": {"type": "string"}, "name": {"type": "string"},
                "role": {"type": "string"}, "image": {"type": "string"}, "dateOfBirth": {"type": "string"},
                "walletAddress": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        },
        "handler.createCertificateTypeRequest": {
            "type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}
        },
        "handler.certificateTypeResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "handler.issueCertificateRequest": {
            "type": "object", "required": ["studentId", "teacherId", "certificateTypeId"],
            "properties": {
                "studentId": {"type": "string"}, "teacherId": {"type": "string"}, "certificateTypeId": {"type": "string"},
                "score": {"type": "number"}, "image": {"type": "string"}, "description": {"type": "string"}
            }
        },
        "handler.signCertificateRequest": {
            "type": "object", "required": ["certificateId"],
            "properties": {"code": {"type": "string"}, "subject": {"type": "string"}, "certificateId": {"type": "string"}}
        },
        "handler.certificateResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "studentId": {"type": "string"}, "teacherId": {"type": "string"},
                "certificateTypeId": {"type": "string"}, "score": {"type": "number"},
                "status": {"type": "string", "enum": ["PENDING", "SIGNED", "APPROVED"]},
                "image": {"type": "string"}, "description": {"type": "string"}, "certId": {"type": "string"},
                "signedBy": {"type": "string"}, "signedAt": {"type": "string"},
                "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
            }
        },
        "handler.certificateWithTypeResponse": {
            "type": "object",
            "properties": {
                "certificate": {"$ref": "#/definitions/handler.certificateResponse"},
                "certificateType": {"$ref": "#/definitions/handler.certificateTypeResponse"}
            }
        },
        "handler.studentCertificateResponse": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/handler.userResponse"},
                "certificate": {"$ref": "#/definitions/handler.certificateResponse"}
            }
        },
        "handler.verificationResponse": {
            "type": "object",
            "properties": {"certificateId": {"type": "string"}, "valid": {"type": "boolean"}, "message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Certificate System API",
	Description:      "Issue, sign, approve and verify student certificates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

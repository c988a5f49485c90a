// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/quiz/": {
            "get": {
                "tags": ["quiz"],
                "summary": "List active quizzes",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/quiz/{quizID}": {
            "get": {
                "tags": ["quiz"],
                "summary": "Get an active quiz",
                "parameters": [{"type": "string", "name": "quizID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "NotFound"}}
            }
        },
        "/quiz/questions/{quizID}": {
            "get": {
                "tags": ["quiz"],
                "summary": "Get the question at a zero-based index",
                "parameters": [
                    {"type": "string", "name": "quizID", "in": "path", "required": true},
                    {"type": "integer", "name": "question_index", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No more questions"}}
            }
        },
        "/quiz/submit-answer": {
            "post": {
                "tags": ["quiz"],
                "summary": "Submit or replace the answer to a question",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/answer.SubmitRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "ValidationError"},
                    "404": {"description": "NotFound"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/quiz/quiz-ai-analysis": {
            "post": {
                "tags": ["quiz"],
                "summary": "Generate and store the analysis of a user's answers",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/analysis.AnalysisRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "NotFound"}, "409": {"description": "Conflict"}, "500": {"description": "UpstreamError"}}
            }
        },
        "/quiz/fetch-quiz-analysis": {
            "get": {
                "tags": ["quiz"],
                "summary": "Fetch the stored analysis",
                "parameters": [
                    {"type": "string", "name": "username", "in": "query", "required": true},
                    {"type": "string", "name": "quiz_id", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "NotFound"}}
            }
        },
        "/users/new-user-signup": {"post": {"tags": ["users"], "summary": "Start a signup", "responses": {"200": {"description": "OK"}}}},
        "/users/complete-user-profile": {"post": {"tags": ["users"], "summary": "Set a password on an existing profile", "responses": {"200": {"description": "OK"}}}},
        "/users/create-user": {"get": {"tags": ["users"], "summary": "Create the account from a verification token", "responses": {"302": {"description": "Redirect"}}}},
        "/users/create-user-2": {"get": {"tags": ["users"], "summary": "Activate a profile from a verification token", "responses": {"302": {"description": "Redirect"}}}},
        "/users/create-user-profile": {"post": {"tags": ["users"], "summary": "Create a passwordless profile", "responses": {"200": {"description": "OK"}}}},
        "/users/login": {"post": {"tags": ["users"], "summary": "Exchange credentials for a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/users/me": {
            "get": {"tags": ["users"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["users"], "summary": "Update the current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/users/password-reset": {"post": {"tags": ["users"], "summary": "Email a password reset link", "responses": {"200": {"description": "OK"}}}},
        "/users/update-password": {"post": {"tags": ["users"], "summary": "Set a new password from a reset token", "responses": {"200": {"description": "OK"}}}},
        "/company/contact-us": {"post": {"tags": ["company"], "summary": "Send a message to the company", "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "answer.SubmitRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "question_id": {"type": "string"},
                "selected_option": {"description": "option id or array of option ids"},
                "rating": {"type": "integer"},
                "text": {"type": "string"},
                "choice": {"type": "boolean"}
            }
        },
        "analysis.AnalysisRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "quiz_id": {"type": "string"}
            }
        },
        "apperror.Body": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "detail": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "quizlens API",
	Description:      "Questionnaires, answers and generated analyses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

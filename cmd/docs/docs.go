// Package docs holds the OpenAPI 2.0 document served under /swagger.
// Keep it in step with the godoc annotations on the handlers.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user",
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh the access token",
                "parameters": [{"in": "body", "name": "refresh", "required": true, "schema": {"$ref": "#/definitions/dto.RefreshTokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/google/login-url": {
            "get": {
                "tags": ["oauth"],
                "summary": "Google consent screen URL",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GoogleLoginURLResponse"}}}
            }
        },
        "/auth/google/exchange-code": {
            "post": {
                "tags": ["oauth"],
                "summary": "Exchange a Google authorization code for a session",
                "parameters": [{"in": "body", "name": "code", "required": true, "schema": {"$ref": "#/definitions/dto.GoogleExchangeCodeRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}}}
            }
        },
        "/auth/google/id-token": {
            "post": {
                "tags": ["oauth"],
                "summary": "Sign in with a Google ID token",
                "parameters": [{"in": "body", "name": "token", "required": true, "schema": {"$ref": "#/definitions/dto.GoogleIDTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}}}
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "string", "name": "nextToken", "in": "query"},
                    {"type": "string", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransactionsResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "parameters": [{"in": "body", "name": "transaction", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransactionRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}}
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "string", "name": "transactionID", "in": "path", "required": true},
                    {"in": "body", "name": "transaction", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTransactionRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/transactions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["transactions"],
                "summary": "Export transactions as XLSX",
                "parameters": [{"type": "string", "default": "all", "name": "dateFilter", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/transactions/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["transactions"],
                "summary": "Import transactions from XLSX",
                "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ImportTransactionsResponse"}}}
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["transactions"],
                "summary": "Category suggestions",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoriesResponse"}}}
            }
        },
        "/budgets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "List budgets",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListBudgetsResponse"}}}
            }
        },
        "/budgets/{month}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Set a monthly budget",
                "parameters": [
                    {"type": "string", "name": "month", "in": "path", "required": true},
                    {"in": "body", "name": "budget", "required": true, "schema": {"$ref": "#/definitions/dto.SetBudgetRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BudgetResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["budgets"],
                "summary": "Remove a monthly budget",
                "parameters": [{"type": "string", "name": "month", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard view",
                "parameters": [
                    {"type": "string", "name": "dateFilter", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "targetMonth", "in": "query"},
                    {"type": "integer", "name": "window", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}}}
            }
        },
        "/dashboard/stream": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Live dashboard",
                "parameters": [{"type": "string", "name": "access_token", "in": "query"}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update current user",
                "parameters": [{"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.UpdateProfileRequest": {"type": "object", "required": ["username"], "properties": {"username": {"type": "string", "minLength": 1, "maxLength": 50}}},
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.RegisterRequest": {"type": "object", "required": ["email", "password", "username"], "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "username": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RefreshTokenRequest": {"type": "object", "required": ["userID"], "properties": {"refreshToken": {"type": "string"}, "userID": {"type": "string"}}},
        "dto.GoogleExchangeCodeRequest": {"type": "object", "required": ["code"], "properties": {"code": {"type": "string"}}},
        "dto.GoogleIDTokenRequest": {"type": "object", "required": ["idToken"], "properties": {"idToken": {"type": "string"}}},
        "dto.GoogleLoginURLResponse": {"type": "object", "properties": {"state": {"type": "string"}, "url": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"authProvider": {"type": "string"}, "createdAt": {"type": "string"}, "email": {"type": "string"}, "userID": {"type": "string"}, "username": {"type": "string"}}},
        "dto.LoginResponse": {"type": "object", "properties": {"expiresAt": {"type": "string"}, "refreshToken": {"type": "string"}, "refreshTokenExpiresAt": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.CreateTransactionRequest": {"type": "object", "required": ["amount", "date", "description"], "properties": {"amount": {"type": "number"}, "category": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"}, "kind": {"type": "string", "enum": ["income", "expense"]}}},
        "dto.UpdateTransactionRequest": {"type": "object", "properties": {"amount": {"type": "number"}, "category": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"}, "kind": {"type": "string", "enum": ["income", "expense"]}}},
        "dto.TransactionResponse": {"type": "object", "properties": {"amount": {"type": "number"}, "category": {"type": "string"}, "createdAt": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"}, "kind": {"type": "string"}, "lastUpdatedAt": {"type": "string"}, "transactionID": {"type": "string"}}},
        "dto.ListTransactionsResponse": {"type": "object", "properties": {"nextToken": {"type": "string"}, "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}}},
        "dto.ImportRowError": {"type": "object", "properties": {"error": {"type": "string"}, "row": {"type": "integer"}}},
        "dto.ImportTransactionsResponse": {"type": "object", "properties": {"imported": {"type": "integer"}, "rejected": {"type": "array", "items": {"$ref": "#/definitions/dto.ImportRowError"}}}},
        "dto.CategoriesResponse": {"type": "object", "properties": {"categories": {"type": "array", "items": {"type": "string"}}}},
        "dto.SetBudgetRequest": {"type": "object", "required": ["limit"], "properties": {"limit": {"type": "number"}}},
        "dto.BudgetResponse": {"type": "object", "properties": {"lastUpdatedAt": {"type": "string"}, "limit": {"type": "number"}, "month": {"type": "string"}}},
        "dto.ListBudgetsResponse": {"type": "object", "properties": {"budgets": {"type": "array", "items": {"$ref": "#/definitions/dto.BudgetResponse"}}}},
        "dto.DashboardResponse": {"type": "object", "properties": {"budgetStatus": {"type": "object"}, "categories": {"type": "array", "items": {"type": "string"}}, "categoryBreakdown": {"type": "array", "items": {"type": "object"}}, "dateFilter": {"type": "string"}, "generatedAt": {"type": "string"}, "insights": {"type": "array", "items": {"type": "object"}}, "monthlySeries": {"type": "array", "items": {"type": "object"}}, "targetMonth": {"type": "string"}, "totals": {"type": "object"}, "transactions": {"type": "object"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FinTrack API",
	Description:      "Personal finance tracking: transactions, monthly budgets and a live dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

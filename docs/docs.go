// Package docs registers the OpenAPI description served under /swagger.
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
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				]
			}
		},
		"/auth/employee/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Employee login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.employeeLoginRequest"
						}
					}
				]
			}
		},
		"/v1/clients": {
			"post": {
				"tags": [
					"clients"
				],
				"summary": "Register a client",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerClientRequest"
						}
					}
				]
			}
		},
		"/v1/accounts/me": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Get the caller's account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/accounts/me/balance": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Get the caller's balance",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/accounts/me/history": {
			"get": {
				"tags": [
					"accounts"
				],
				"summary": "Get the caller's transaction history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/accounts/me/pin": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Set the card PIN",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.pinRequest"
						}
					}
				]
			}
		},
		"/v1/accounts/me/deposit": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Deposit money",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.moneyRequest"
						}
					}
				]
			}
		},
		"/v1/accounts/me/withdraw": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Withdraw money",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.moneyRequest"
						}
					}
				]
			}
		},
		"/v1/accounts/me/transfer": {
			"post": {
				"tags": [
					"accounts"
				],
				"summary": "Transfer money to a card or a company account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.transferRequest"
						}
					}
				]
			}
		},
		"/v1/companies": {
			"post": {
				"tags": [
					"companies"
				],
				"summary": "Open a corporate account",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerCompanyRequest"
						}
					}
				]
			}
		},
		"/v1/companies/me/balance": {
			"get": {
				"tags": [
					"companies"
				],
				"summary": "Get the company balance",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/companies/me/history": {
			"get": {
				"tags": [
					"companies"
				],
				"summary": "Get the company transaction history",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/companies/me/deposit": {
			"post": {
				"tags": [
					"companies"
				],
				"summary": "Deposit money on the company account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.moneyRequest"
						}
					}
				]
			}
		},
		"/v1/companies/me/withdraw": {
			"post": {
				"tags": [
					"companies"
				],
				"summary": "Withdraw money from the company account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.moneyRequest"
						}
					}
				]
			}
		},
		"/v1/companies/me/transfer": {
			"post": {
				"tags": [
					"companies"
				],
				"summary": "Transfer money from the company account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"in": "header",
						"name": "Idempotency-Key",
						"required": false,
						"description": "Idempotency key to prevent duplicate submissions"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.transferRequest"
						}
					}
				]
			}
		},
		"/v1/employee/cards": {
			"get": {
				"tags": [
					"employee"
				],
				"summary": "List client card numbers",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/employee/clients/{login}/approve": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Approve a pending account request",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "login",
						"required": true
					}
				]
			}
		},
		"/v1/employee/clients/{login}/reject": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Reject a pending account request",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "login",
						"required": true
					}
				]
			}
		},
		"/v1/employee/companies/{id}/loans/approve": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Approve a company loan request",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "id",
						"required": true
					}
				]
			}
		},
		"/v1/employee/companies/{id}/loans/reject": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Reject a company loan request",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "id",
						"required": true
					}
				]
			}
		},
		"/v1/employee/accounts/{card}/freeze": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Freeze an account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "card",
						"required": true
					}
				]
			}
		},
		"/v1/employee/accounts/{card}/unfreeze": {
			"post": {
				"tags": [
					"employee"
				],
				"summary": "Unfreeze an account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"in": "path",
						"name": "card",
						"required": true
					}
				]
			}
		},
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Liveness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/health/ready": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Readiness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"login": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handler.employeeLoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handler.registerClientRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"national_id": {
					"type": "string"
				},
				"login": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"withdrawal_limit": {
					"type": "string"
				}
			}
		},
		"handler.pinRequest": {
			"type": "object",
			"properties": {
				"pin": {
					"type": "string"
				}
			}
		},
		"handler.moneyRequest": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "string"
				}
			}
		},
		"handler.transferRequest": {
			"type": "object",
			"properties": {
				"destination": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				}
			}
		},
		"handler.registerCompanyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"tax_id": {
					"type": "string"
				},
				"withdrawal_limit": {
					"type": "string"
				},
				"account_id": {
					"type": "string"
				},
				"password": {
					"type": "string"
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
	Title:            "Banque Registration API",
	Description:      "Client registration, personal and corporate accounts, employee operations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

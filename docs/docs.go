// Package docs holds the OpenAPI document served at /swagger. Regenerate with swag init.
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
		"/auth/login": {
			"post": {
				"tags": [
					"Authentication"
				],
				"summary": "Operator login",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"description": "LoginRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.LoginRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/dashboard": {
			"get": {
				"tags": [
					"Dashboard"
				],
				"summary": "Dashboard",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Stock-health alert cards; cards with a positive count link to the filtered catalog",
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/categorias": {
			"get": {
				"tags": [
					"Products"
				],
				"summary": "List categories",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					}
				}
			}
		},
		"/api/produtos": {
			"get": {
				"tags": [
					"Products"
				],
				"summary": "List products",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"enum": [
							"VENCIDOS",
							"VENCENDO",
							"BAIXO_ESTOQUE",
							"SEM_ESTOQUE"
						],
						"type": "string",
						"description": "Stock-health filter",
						"name": "filtro",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Search by name, brand or category (ignored when filtro is set)",
						"name": "busca",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Fetch a fresh list instead of searching the loaded one",
						"name": "atualizar",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"Products"
				],
				"summary": "Create product",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"description": "ProductRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ProductRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/produtos/{id}": {
			"put": {
				"tags": [
					"Products"
				],
				"summary": "Update product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Product ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "ProductRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ProductRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"Products"
				],
				"summary": "Delete product",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Product ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/vendas/rascunhos": {
			"post": {
				"tags": [
					"Sales"
				],
				"summary": "Open sale",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Start a sale draft with a fresh product list and an empty cart",
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/vendas/rascunhos/{id}": {
			"get": {
				"tags": [
					"Sales"
				],
				"summary": "Get sale",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Draft ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"Sales"
				],
				"summary": "Close sale",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Discard the draft and its cart",
				"parameters": [
					{
						"type": "string",
						"description": "Draft ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/vendas/rascunhos/{id}/itens": {
			"post": {
				"tags": [
					"Sales"
				],
				"summary": "Add item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Add a product to the cart, merging with an existing line for the same product",
				"parameters": [
					{
						"type": "string",
						"description": "Draft ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "AddLineRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.AddLineRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/api/vendas/rascunhos/{id}/itens/{produtoId}": {
			"delete": {
				"tags": [
					"Sales"
				],
				"summary": "Remove item",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Draft ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Product ID",
						"name": "produtoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/vendas/rascunhos/{id}/finalizar": {
			"post": {
				"tags": [
					"Sales"
				],
				"summary": "Complete sale",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Submit the cart as an order. On failure the cart is kept and the inventory message is returned.",
				"parameters": [
					{
						"type": "string",
						"description": "Draft ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/pedidos": {
			"get": {
				"tags": [
					"Orders"
				],
				"summary": "List orders",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"description": "Order history, newest first",
				"parameters": [
					{
						"type": "boolean",
						"description": "Force a refetch",
						"name": "atualizar",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/api/pedidos/{id}": {
			"get": {
				"tags": [
					"Orders"
				],
				"summary": "Get order",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Response"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/models.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Order ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"models.Response": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"data": {}
			}
		},
		"models.ErrorResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"models.LoginRequest": {
			"type": "object",
			"required": [
				"usuario",
				"senha"
			],
			"properties": {
				"usuario": {
					"type": "string"
				},
				"senha": {
					"type": "string"
				}
			}
		},
		"models.AddLineRequest": {
			"type": "object",
			"required": [
				"produtoId"
			],
			"properties": {
				"produtoId": {
					"type": "integer"
				},
				"quantidade": {
					"type": "integer"
				}
			}
		},
		"models.ProductRequest": {
			"type": "object",
			"required": [
				"nome",
				"marca",
				"categoria"
			],
			"properties": {
				"nome": {
					"type": "string"
				},
				"marca": {
					"type": "string"
				},
				"categoria": {
					"type": "string",
					"enum": [
						"ALIMENTICIO",
						"BEBIDAS",
						"ELETRONICO",
						"DECORACAO",
						"HIGIENE_PESSOAL",
						"LIMPEZA",
						"ESCRITORIO",
						"FERRAMENTAS",
						"OUTROS"
					]
				},
				"preco": {
					"type": "number"
				},
				"quantidade": {
					"type": "integer",
					"minimum": 0
				},
				"validade": {
					"type": "string",
					"example": "2026-12-31"
				},
				"garantiaMeses": {
					"type": "integer",
					"minimum": 1
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
	Host:             "localhost:8090",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Estoque Console API",
	Description:      "Back-office console for the inventory API: catalog, sales and dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

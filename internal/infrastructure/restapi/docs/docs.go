// Package docs holds the OpenAPI description of the roast API served by gin-swagger.
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
        "/api/roast": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["roast"],
                "summary": "Roast a wallet",
                "parameters": [
                    {
                        "description": "wallet address and optional network",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/restapi.RoastRequestBody"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/restapi.RoastResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/restapi.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "restapi.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "restapi.RoastRequestBody": {
            "type": "object",
            "required": ["address"],
            "properties": {
                "address": {"type": "string", "example": "0x02a212de6a9dfa3a69e22387acfbafbb1a9e591bd9d636e7895dcfc8de05f331"},
                "network": {"type": "string", "enum": ["mainnet", "testnet", "devnet"]}
            }
        },
        "restapi.RoastResponse": {
            "type": "object",
            "properties": {
                "roast": {"type": "string"},
                "share_url": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SUI Roast Agent API",
	Description:      "Roasts SUI wallets based on their on-chain activity.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

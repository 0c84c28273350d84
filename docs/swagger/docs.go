// Package swagger registers the OpenAPI document served under /swagger/*.
// Regenerate with: swag init -g cmd/app/main.go -o docs/swagger
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/hunter/profile": {
            "get": {
                "tags": ["hunter"],
                "summary": "Get hunter profile",
                "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/hunter/xp": {
            "post": {
                "tags": ["hunter"],
                "summary": "Add XP",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AddXPRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/hunter/quests/claim": {
            "post": {
                "tags": ["hunter"],
                "summary": "Claim quest reward",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.QuestRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/hunter/quests/contribute": {
            "post": {
                "tags": ["hunter"],
                "summary": "Contribute quest progress",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ContributeRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/hunter/daily-reward/claim": {
            "post": {
                "tags": ["hunter"],
                "summary": "Claim daily login reward",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DailyRewardRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/hunter/skills/upgrade": {
            "post": {
                "tags": ["hunter"],
                "summary": "Upgrade skill",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SkillRequest"}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/hunter/titles/equip": {
            "post": {
                "tags": ["hunter"],
                "summary": "Equip title",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TitleRequest"}}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/admin/hunter/reconcile": {
            "post": {
                "tags": ["admin"],
                "summary": "Reconcile all hunters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/hunter/reset-status": {
            "get": {
                "tags": ["admin"],
                "summary": "Get hunter reset status",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "handler.AddXPRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "amount": {"type": "integer"}, "source": {"type": "string"}}
        },
        "handler.QuestRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "kind": {"type": "string"}, "quest_id": {"type": "integer"}}
        },
        "handler.ContributeRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "kind": {"type": "string"}, "quest_id": {"type": "integer"}, "amount": {"type": "integer"}}
        },
        "handler.DailyRewardRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "day": {"type": "integer"}}
        },
        "handler.SkillRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "skill_id": {"type": "integer"}}
        },
        "handler.TitleRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "title_id": {"type": "integer"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Hunter System API",
	Description:      "Leveling, quest rewards and daily login calendar for hunters.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

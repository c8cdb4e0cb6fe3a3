package api

import (
	annotation2 "github.com/hilite/hilite-go/lib/api/annotation"
	"github.com/hilite/hilite-go/lib/lifecycle"
	"github.com/hilite/hilite-go/lib/property"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func InitAPI(c *fiber.App, controller *lifecycle.Controller, properties *property.Source, validate *validator.Validate) {
	annotation2.Init(c, controller, properties, validate)
}

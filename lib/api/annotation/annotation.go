package annotation

import (
	"encoding/json"
	goerrors "errors"

	error2 "github.com/hilite/hilite-go/lib/api/errors"
	"github.com/hilite/hilite-go/lib/doctree"
	"github.com/hilite/hilite-go/lib/exception"
	"github.com/hilite/hilite-go/lib/lifecycle"
	annotation2 "github.com/hilite/hilite-go/lib/models/annotation"
	"github.com/hilite/hilite-go/lib/property"
	"github.com/hilite/hilite-go/lib/rangemap"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CreateDto struct {
	BlockId    string `json:"blockId" validate:"required"`
	Start      int    `json:"start" validate:"gte=0"`
	End        int    `json:"end" validate:"gtfield=Start"`
	PropertyId string `json:"propertyId" validate:"required"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateDto struct {
	Start int `json:"start" validate:"gte=0"`
	End   int `json:"end" validate:"gtfield=Start"`
}

func Init(c *fiber.App, controller *lifecycle.Controller, properties *property.Source, validate *validator.Validate) {
	c.Get("/annotations", func(c *fiber.Ctx) error {
		records := controller.All()
		cloned := make([]*annotation2.Record, 0, len(records))
		for _, record := range records {
			cloned = append(cloned, record.Clone())
		}
		return c.JSON(cloned)
	})

	c.Get("/annotations/:annotationId", func(c *fiber.Ctx) error {
		record := controller.Get(c.Params("annotationId"))
		if record == nil {
			return c.Status(404).JSON(error2.Error{
				Message: "Annotation not found",
				Error:   404,
			})
		}
		return c.JSON(record.Clone())
	})

	c.Get("/tabs/:tabId/annotations", func(c *fiber.Ctx) error {
		records := controller.GetByTab(c.Params("tabId"))
		cloned := make([]*annotation2.Record, 0, len(records))
		for _, record := range records {
			cloned = append(cloned, record.Clone())
		}
		return c.JSON(cloned)
	})

	c.Get("/properties", func(c *fiber.Ctx) error {
		return c.JSON(properties.All())
	})

	c.Post("/annotations", func(c *fiber.Ctx) error {
		var dto CreateDto
		if err := json.Unmarshal(c.Body(), &dto); err != nil {
			return c.Status(400).JSON(error2.Error{
				Message: "Invalid request " + err.Error(),
				Error:   400,
			})
		}
		if err := validate.Struct(dto); err != nil {
			return c.Status(400).JSON(error2.Error{
				Message: "Invalid request " + err.Error(),
				Error:   400,
			})
		}
		block := doctree.FindById(controller.Root(), dto.BlockId)
		if block == nil {
			return c.Status(404).JSON(error2.Error{
				Message: "Block not found",
				Error:   404,
			})
		}
		propertyRef, ok := properties.Get(dto.PropertyId)
		if !ok {
			return c.Status(404).JSON(error2.Error{
				Message: "Property not found",
				Error:   404,
			})
		}
		rng := rangemap.RangeFromOffsets(block, dto.Start, dto.End)
		if rng == nil {
			return c.Status(400).JSON(error2.Error{
				Message: "Offsets out of range",
				Error:   400,
			})
		}
		record, err := controller.Create(rng, propertyRef, dto.Color)
		if err != nil {
			return statusFromError(c, err)
		}
		return c.Status(201).JSON(record.Clone())
	})

	c.Put("/annotations/:annotationId", func(c *fiber.Ctx) error {
		var dto UpdateDto
		if err := json.Unmarshal(c.Body(), &dto); err != nil {
			return c.Status(400).JSON(error2.Error{
				Message: "Invalid request " + err.Error(),
				Error:   400,
			})
		}
		if err := validate.Struct(dto); err != nil {
			return c.Status(400).JSON(error2.Error{
				Message: "Invalid request " + err.Error(),
				Error:   400,
			})
		}
		record, err := controller.Update(c.Params("annotationId"), dto.Start, dto.End)
		if err != nil {
			return statusFromError(c, err)
		}
		return c.JSON(record.Clone())
	})

	c.Delete("/annotations/:annotationId", func(c *fiber.Ctx) error {
		if err := controller.Delete(c.Params("annotationId")); err != nil {
			return statusFromError(c, err)
		}
		return c.SendStatus(204)
	})
}

func statusFromError(c *fiber.Ctx, err error) error {
	var notFound *exception.NotFoundError
	var conflict *exception.RangeConflictError
	var anchorLost *exception.AnchorLostError
	var invalidOffsets *exception.InvalidOffsetsError

	switch {
	case goerrors.As(err, &notFound):
		return c.Status(404).JSON(error2.Error{Message: err.Error(), Error: 404})
	case goerrors.As(err, &conflict):
		return c.Status(409).JSON(error2.Error{Message: err.Error(), Error: 409})
	case goerrors.As(err, &anchorLost):
		return c.Status(410).JSON(error2.Error{Message: err.Error(), Error: 410})
	case goerrors.As(err, &invalidOffsets):
		return c.Status(400).JSON(error2.Error{Message: err.Error(), Error: 400})
	default:
		return c.Status(500).JSON(error2.Error{Message: "Internal server error", Error: 500})
	}
}

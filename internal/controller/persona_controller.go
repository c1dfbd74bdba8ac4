package controller

import (
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/pkg/serverutils"
	"ai-brain-be/pkg/persona"

	"github.com/gofiber/fiber/v2"
)

type IPersonaController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type personaController struct {
	personas *persona.Registry
}

func NewPersonaController(personas *persona.Registry) IPersonaController {
	return &personaController{
		personas: personas,
	}
}

func (c *personaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/persona/v1")
	h.Get("", c.List)
}

func (c *personaController) List(ctx *fiber.Ctx) error {
	defaultId := c.personas.Default().Id

	res := make([]*dto.PersonaResponse, 0)
	for _, p := range c.personas.List() {
		res = append(res, &dto.PersonaResponse{
			Id:          p.Id,
			DisplayName: p.DisplayName,
			IsDefault:   p.Id == defaultId,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get personas", res))
}

package controller

import (
	"errors"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/service"
	"ai-brain-be/pkg/ai/gateway"

	"github.com/gofiber/fiber/v2"
)

// ICompletionController serves the stateless endpoints. Their bodies are
// plain {reply}/{result}/{error} objects rather than the response envelope.
type ICompletionController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	AnalyzeNotes(ctx *fiber.Ctx) error
}

type completionController struct {
	completionService service.ICompletionService
}

func NewCompletionController(completionService service.ICompletionService) ICompletionController {
	return &completionController{
		completionService: completionService,
	}
}

func (c *completionController) RegisterRoutes(r fiber.Router) {
	r.All("/chat", postOnly(c.Chat))
	r.All("/groq", postOnly(c.AnalyzeNotes))
}

func (c *completionController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatCompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return writeError(ctx, fiber.StatusBadRequest, constant.ErrMessageMessagesMissing)
	}

	res, err := c.completionService.Chat(ctx.UserContext(), &req)
	if err != nil {
		return writeGatewayError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *completionController) AnalyzeNotes(ctx *fiber.Ctx) error {
	var req dto.NoteAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return writeError(ctx, fiber.StatusBadRequest, constant.ErrMessagePromptMissing)
	}

	res, err := c.completionService.AnalyzeNotes(ctx.UserContext(), &req)
	if err != nil {
		return writeGatewayError(ctx, err)
	}
	return ctx.JSON(res)
}

func postOnly(handler fiber.Handler) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Method() != fiber.MethodPost {
			ctx.Set(fiber.HeaderAllow, fiber.MethodPost)
			return writeError(ctx, fiber.StatusMethodNotAllowed, constant.ErrMessageMethodNotAllow)
		}
		return handler(ctx)
	}
}

// writeGatewayError maps validation failures to 400 and every provider
// failure to 500 with its user-safe message.
func writeGatewayError(ctx *fiber.Ctx, err error) error {
	var gatewayErr *gateway.Error
	if !errors.As(err, &gatewayErr) {
		return writeError(ctx, fiber.StatusInternalServerError, constant.ErrMessageInternal)
	}
	if gatewayErr.Kind == gateway.KindValidation {
		return writeError(ctx, fiber.StatusBadRequest, gatewayErr.Message)
	}
	return writeError(ctx, fiber.StatusInternalServerError, gatewayErr.Message)
}

func writeError(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(dto.ErrorBody{Error: message})
}

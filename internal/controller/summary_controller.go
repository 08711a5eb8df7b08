package controller

import (
	"quicknote-be/internal/dto"
	"quicknote-be/internal/pkg/serverutils"
	"quicknote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// summaryController is the text-in/text-out summarization surface. It is
// called directly from browser contexts, so it lives outside the JWT group
// and relies on the global CORS middleware to answer preflights.
type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	Summarize(ctx *fiber.Ctx) error
	BulkSummarize(ctx *fiber.Ctx) error
}

type summaryController struct {
	summaryService service.ISummaryService
}

func NewSummaryController(summaryService service.ISummaryService) ISummaryController {
	return &summaryController{
		summaryService: summaryService,
	}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/summary/v1")
	h.Post("", c.Summarize)
	h.Post("bulk", c.BulkSummarize)
}

func (c *summaryController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	summary, err := c.summaryService.SummarizeOne(ctx.Context(), req.Content)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.SummarizeResponse{Summary: summary})
}

func (c *summaryController) BulkSummarize(ctx *fiber.Ctx) error {
	var req dto.BulkSummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	summary, err := c.summaryService.SummarizeMany(ctx.Context(), req.Notes)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.SummarizeResponse{Summary: summary})
}

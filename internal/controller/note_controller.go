package controller

import (
	"io"
	"strings"

	"quicknote-be/internal/collection"
	"quicknote-be/internal/dto"
	"quicknote-be/internal/entity"
	"quicknote-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	SummarizeAll(ctx *fiber.Ctx) error
	UploadText(ctx *fiber.Ctx) error
}

type noteController struct {
	registry *collection.Registry
}

func NewNoteController(registry *collection.Registry) INoteController {
	return &noteController{
		registry: registry,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Get)
	h.Post("", c.Create)
	h.Post("upload-text", c.UploadText)
	h.Post("summarize-all", c.SummarizeAll)
	h.Post(":id/summarize", c.Summarize)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func currentUser(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid session")
	}
	return userId, nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Summary:   n.Summary,
		FileName:  n.FileName,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	notes := mgr.Notes()
	res := dto.ListNotesResponse{
		Loading: mgr.Loading(),
		Notes:   make([]*dto.NoteResponse, len(notes)),
	}
	for i, n := range notes {
		res.Notes[i] = toNoteResponse(n)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	note := mgr.Get(id)
	if note == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get note", toNoteResponse(note)))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	note, err := mgr.Create(ctx.Context(), req.Title, req.Content, req.FileName)
	if err != nil {
		return err
	}
	if note == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "no active session")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create note", toNoteResponse(note)))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	note, err := mgr.Update(ctx.Context(), id, req.Title, req.Content)
	if err != nil {
		return err
	}
	if note == nil {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", toNoteResponse(note)))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	if err := mgr.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) Summarize(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid note id")
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	summary, err := mgr.SummarizeOne(ctx.Context(), id)
	if err != nil {
		if err == collection.ErrNoteNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Note not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summarize note", dto.SummarizeResponse{Summary: summary}))
}

func (c *noteController) SummarizeAll(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	mgr, err := c.registry.Acquire(ctx.Context(), userId)
	if err != nil {
		return err
	}

	combined, err := mgr.SummarizeAll(ctx.Context())
	if err != nil {
		return err
	}
	if combined == "" {
		return fiber.NewError(fiber.StatusNotFound, "No notes found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success summarize notes", dto.SummarizeResponse{Summary: combined}))
}

func (c *noteController) UploadText(ctx *fiber.Ctx) error {
	if _, err := currentUser(ctx); err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	if !strings.HasSuffix(fileHeader.Filename, ".txt") {
		return fiber.NewError(fiber.StatusBadRequest, "Only .txt files are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res := dto.UploadTextResponse{
		FileName:       fileHeader.Filename,
		Content:        string(content),
		SuggestedTitle: strings.TrimSuffix(fileHeader.Filename, ".txt"),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success read text file", res))
}

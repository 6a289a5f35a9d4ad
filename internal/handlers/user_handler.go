package handlers

import (
	"strconv"

	"catalog/internal/dto"
	"catalog/internal/query"
	"catalog/internal/response"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service   *services.UserService
	responses *response.Builder
	basePath  string
}

func NewUserHandler(service *services.UserService, responses *response.Builder, apiPrefix string) *UserHandler {
	return &UserHandler{
		service:   service,
		responses: responses,
		basePath:  apiPrefix + "/user",
	}
}

// RegisterRoutes registers the user routes. Updates use PUT with optional fields.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

func (h *UserHandler) itemLinks(id uint) *response.Links {
	return response.GenerateLinks(response.LinkContext{
		BaseURL:      h.basePath,
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		UpdateMethod: fiber.MethodPut,
	})
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(err)
	}
	result, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return err
	}

	links := response.GenerateLinks(response.LinkContext{
		BaseURL: h.basePath,
		Page:    response.NewPageContext(result.Pagination, extraQuery(c)),
	})
	data := response.SelectFields(result.Data, query.Fields(q.Fields))
	return respond(c, h.responses, fiber.StatusOK, "Users retrieved successfully", data, links, &result.Pagination)
}

func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, h.responses, fiber.StatusOK, "User retrieved successfully", user, h.itemLinks(id), nil)
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	user, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, h.responses, fiber.StatusCreated, "User created successfully", user, h.itemLinks(user.ID), nil)
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}
	var in dto.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	user, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return respond(c, h.responses, fiber.StatusOK, "User updated successfully", user, h.itemLinks(id), nil)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "User")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	links := response.GenerateLinks(response.LinkContext{BaseURL: h.basePath})
	return respond(c, h.responses, fiber.StatusOK, "User deleted successfully", nil, links, nil)
}

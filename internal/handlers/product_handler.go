package handlers

import (
	"strconv"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/query"
	"catalog/internal/response"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

type pageOfProducts = models.PaginatedResult[models.Product]

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   *services.ProductService
	responses *response.Builder
	basePath  string
}

// NewProductHandler creates a new ProductHandler. apiPrefix is the path the
// router passed to RegisterRoutes is mounted on, used to build links.
func NewProductHandler(service *services.ProductService, responses *response.Builder, apiPrefix string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		responses: responses,
		basePath:  apiPrefix + "/products",
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/search/:query", h.HandleSearchProducts)
	productRoutes.Get("/category/:category", h.HandleGetProductsByCategory)
	productRoutes.Get("/price-range/:minPrice/:maxPrice", h.HandleGetProductsByPriceRange)
	productRoutes.Get("/meta/categories", h.HandleGetCategories)

	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

func (h *ProductHandler) itemLinks(id uint) *response.Links {
	return response.GenerateLinks(response.LinkContext{
		BaseURL:      h.basePath,
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		UpdateMethod: fiber.MethodPatch,
	})
}

// HandleGetProducts lists products with filters, sorting and pagination.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(err)
	}
	return h.respondPage(c, h.basePath, q, func() (*pageOfProducts, error) {
		return h.service.List(c.UserContext(), q)
	})
}

// HandleGetProductsByCategory lists the products of one category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(err)
	}
	category := pathParam(c, "category")
	return h.respondPage(c, h.basePath+"/category/"+category, q, func() (*pageOfProducts, error) {
		return h.service.ListByCategory(c.UserContext(), category, q)
	})
}

// HandleGetProductsByPriceRange lists products priced within [minPrice, maxPrice].
func (h *ProductHandler) HandleGetProductsByPriceRange(c *fiber.Ctx) error {
	var q dto.ProductListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(err)
	}

	var fields []apperrors.FieldError
	bounds := make(map[string]float64, 2)
	for _, name := range []string{"minPrice", "maxPrice"} {
		raw := c.Params(name)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields = append(fields, apperrors.FieldError{
				Field:      name,
				Message:    name + " must be a number",
				Value:      raw,
				Constraint: "numeric",
			})
			continue
		}
		bounds[name] = v
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	base := h.basePath + "/price-range/" + c.Params("minPrice") + "/" + c.Params("maxPrice")
	return h.respondPage(c, base, q, func() (*pageOfProducts, error) {
		return h.service.ListByPriceRange(c.UserContext(), bounds["minPrice"], bounds["maxPrice"], q)
	})
}

func (h *ProductHandler) respondPage(c *fiber.Ctx, base string, q dto.ProductListQuery, list func() (*pageOfProducts, error)) error {
	result, err := list()
	if err != nil {
		return err
	}

	links := response.GenerateLinks(response.LinkContext{
		BaseURL: base,
		Page:    response.NewPageContext(result.Pagination, extraQuery(c)),
	})
	data := response.SelectFields(result.Data, query.Fields(q.Fields))
	return respond(c, h.responses, fiber.StatusOK, "Products retrieved successfully", data, links, &result.Pagination)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	data := response.SelectOne(*product, query.Fields(optionalQuery(c, "fields")))
	return respond(c, h.responses, fiber.StatusOK, "Product retrieved successfully", data, h.itemLinks(id), nil)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, h.responses, fiber.StatusCreated, "Product created successfully", product, h.itemLinks(product.ID), nil)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return err
	}
	var in dto.UpdateProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(err)
	}
	product, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return respond(c, h.responses, fiber.StatusOK, "Product updated successfully", product, h.itemLinks(id), nil)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	links := response.GenerateLinks(response.LinkContext{BaseURL: h.basePath})
	return respond(c, h.responses, fiber.StatusOK, "Product deleted successfully", nil, links, nil)
}

// HandleSearchProducts matches the path query against product text fields.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	fields := query.Fields(optionalQuery(c, "fields"))
	products, err := h.service.Search(c.UserContext(), pathParam(c, "query"), fields)
	if err != nil {
		return err
	}
	links := response.GenerateLinks(response.LinkContext{BaseURL: h.basePath})
	return respond(c, h.responses, fiber.StatusOK, "Products retrieved successfully", products, links, nil)
}

// HandleGetCategories lists the categories that currently have products.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	links := &response.Links{Self: h.basePath + "/meta/categories"}
	return respond(c, h.responses, fiber.StatusOK, "Categories retrieved successfully", categories, links, nil)
}

package graph

import (
	"context"
	"log/slog"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/events"
	"catalog/internal/services"

	"github.com/graphql-go/graphql"
)

// Resolver maps GraphQL fields onto the services.
type Resolver struct {
	productService *services.ProductService
	userService    *services.UserService
	bus            events.Bus
	logger         *slog.Logger
}

func NewResolver(products *services.ProductService, users *services.UserService, bus events.Bus, logger *slog.Logger) *Resolver {
	return &Resolver{productService: products, userService: users, bus: bus, logger: logger}
}

// fail converts err into the error shape returned to GraphQL clients.
func (r *Resolver) fail(ctx context.Context, field string, err error) error {
	appErr := apperrors.Normalize(err)
	if appErr.Code == apperrors.ErrCodeInternal {
		r.logger.ErrorContext(ctx, "graphql resolver failed", "field", field, "error", err)
	}
	return resolverError{appErr}
}

func productListQuery(args map[string]any) dto.ProductListQuery {
	return dto.ProductListQuery{
		Category:  optString(args, "category"),
		MinPrice:  optFloat(args, "minPrice"),
		MaxPrice:  optFloat(args, "maxPrice"),
		Search:    optString(args, "search"),
		Name:      optString(args, "name"),
		SortBy:    optString(args, "sortBy"),
		SortOrder: optString(args, "sortOrder"),
		Page:      optInt(args, "page"),
		Limit:     optInt(args, "limit"),
	}
}

func userListQuery(args map[string]any) dto.UserListQuery {
	return dto.UserListQuery{
		Email:     optString(args, "email"),
		Search:    optString(args, "search"),
		SortBy:    optString(args, "sortBy"),
		SortOrder: optString(args, "sortOrder"),
		Page:      optInt(args, "page"),
		Limit:     optInt(args, "limit"),
	}
}

// --- Queries ---

func (r *Resolver) products(p graphql.ResolveParams) (any, error) {
	result, err := r.productService.List(p.Context, productListQuery(p.Args))
	if err != nil {
		return nil, r.fail(p.Context, "products", err)
	}
	return result, nil
}

func (r *Resolver) product(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "Product")
	if err != nil {
		return nil, r.fail(p.Context, "product", err)
	}
	product, err := r.productService.Get(p.Context, id)
	if err != nil {
		return nil, r.fail(p.Context, "product", err)
	}
	return product, nil
}

func (r *Resolver) searchProducts(p graphql.ResolveParams) (any, error) {
	query, _ := p.Args["query"].(string)
	products, err := r.productService.Search(p.Context, query, stringList(p.Args, "fields"))
	if err != nil {
		return nil, r.fail(p.Context, "searchProducts", err)
	}
	return products, nil
}

func (r *Resolver) productsByCategory(p graphql.ResolveParams) (any, error) {
	category, _ := p.Args["category"].(string)
	result, err := r.productService.ListByCategory(p.Context, category, productListQuery(p.Args))
	if err != nil {
		return nil, r.fail(p.Context, "productsByCategory", err)
	}
	return result, nil
}

func (r *Resolver) productsByPriceRange(p graphql.ResolveParams) (any, error) {
	minPrice, maxPrice := optFloat(p.Args, "minPrice"), optFloat(p.Args, "maxPrice")
	if minPrice == nil || maxPrice == nil {
		return nil, r.fail(p.Context, "productsByPriceRange", apperrors.BadRequest("minPrice and maxPrice are required"))
	}
	result, err := r.productService.ListByPriceRange(p.Context, *minPrice, *maxPrice, productListQuery(p.Args))
	if err != nil {
		return nil, r.fail(p.Context, "productsByPriceRange", err)
	}
	return result, nil
}

func (r *Resolver) productCategories(p graphql.ResolveParams) (any, error) {
	categories, err := r.productService.Categories(p.Context)
	if err != nil {
		return nil, r.fail(p.Context, "productCategories", err)
	}
	return categories, nil
}

func (r *Resolver) users(p graphql.ResolveParams) (any, error) {
	result, err := r.userService.List(p.Context, userListQuery(p.Args))
	if err != nil {
		return nil, r.fail(p.Context, "users", err)
	}
	return result, nil
}

func (r *Resolver) user(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "User")
	if err != nil {
		return nil, r.fail(p.Context, "user", err)
	}
	user, err := r.userService.Get(p.Context, id)
	if err != nil {
		return nil, r.fail(p.Context, "user", err)
	}
	return user, nil
}

func (r *Resolver) searchUsers(p graphql.ResolveParams) (any, error) {
	query, _ := p.Args["query"].(string)
	users, err := r.userService.Search(p.Context, query, stringList(p.Args, "fields"))
	if err != nil {
		return nil, r.fail(p.Context, "searchUsers", err)
	}
	return users, nil
}

// --- Mutations ---

func (r *Resolver) createProduct(p graphql.ResolveParams) (any, error) {
	in := inputArg(p.Args, "input")
	product, err := r.productService.Create(p.Context, dto.CreateProductInput{
		Name:        stringOrEmpty(in, "name"),
		Description: optString(in, "description"),
		Price:       optDecimal(in, "price"),
		Category:    stringOrEmpty(in, "category"),
	})
	if err != nil {
		return nil, r.fail(p.Context, "createProduct", err)
	}
	return product, nil
}

func (r *Resolver) updateProduct(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "Product")
	if err != nil {
		return nil, r.fail(p.Context, "updateProduct", err)
	}
	in := inputArg(p.Args, "input")
	product, err := r.productService.Update(p.Context, id, dto.UpdateProductInput{
		Name:        optString(in, "name"),
		Description: optString(in, "description"),
		Price:       optDecimal(in, "price"),
		Category:    optString(in, "category"),
	})
	if err != nil {
		return nil, r.fail(p.Context, "updateProduct", err)
	}
	return product, nil
}

func (r *Resolver) deleteProduct(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "Product")
	if err != nil {
		return nil, r.fail(p.Context, "deleteProduct", err)
	}
	if err := r.productService.Delete(p.Context, id); err != nil {
		return nil, r.fail(p.Context, "deleteProduct", err)
	}
	return true, nil
}

func (r *Resolver) createUser(p graphql.ResolveParams) (any, error) {
	in := inputArg(p.Args, "input")
	user, err := r.userService.Create(p.Context, dto.CreateUserInput{
		Email:    stringOrEmpty(in, "email"),
		Password: stringOrEmpty(in, "password"),
	})
	if err != nil {
		return nil, r.fail(p.Context, "createUser", err)
	}
	return user, nil
}

func (r *Resolver) updateUser(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "User")
	if err != nil {
		return nil, r.fail(p.Context, "updateUser", err)
	}
	in := inputArg(p.Args, "input")
	user, err := r.userService.Update(p.Context, id, dto.UpdateUserInput{
		Email:    optString(in, "email"),
		Password: optString(in, "password"),
	})
	if err != nil {
		return nil, r.fail(p.Context, "updateUser", err)
	}
	return user, nil
}

func (r *Resolver) deleteUser(p graphql.ResolveParams) (any, error) {
	id, err := idArg(p.Args, "User")
	if err != nil {
		return nil, r.fail(p.Context, "deleteUser", err)
	}
	if err := r.userService.Delete(p.Context, id); err != nil {
		return nil, r.fail(p.Context, "deleteUser", err)
	}
	return true, nil
}

func stringOrEmpty(args map[string]any, key string) string {
	if s := optString(args, key); s != nil {
		return *s
	}
	return ""
}

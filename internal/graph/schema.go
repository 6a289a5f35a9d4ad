// Package graph exposes the catalog over GraphQL: queries and mutations on
// POST /graphql, subscriptions streamed as Server-Sent Events.
package graph

import (
	"catalog/internal/events"
	"catalog/internal/models"

	"github.com/graphql-go/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"price": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.Float),
			Resolve: resolvePrice,
		},
		"category":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var paginationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Pagination",
	Fields: graphql.Fields{
		"currentPage":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalItems":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"itemsPerPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"hasNext":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasPrev":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

func pageType(name string, item *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"data":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(item)))},
			"pagination": &graphql.Field{Type: graphql.NewNonNull(paginationType)},
		},
	})
}

var (
	productPageType = pageType("ProductPage", productType)
	userPageType    = pageType("UserPage", userType)
)

var deletedType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "DeletedPayload",
	Description: "Delete events carry only the id of the removed record.",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
	},
})

var createProductInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		"category":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var updateProductInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"category":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductSubscriptionFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"categories": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"minPrice":   &graphql.InputObjectFieldConfig{Type: graphql.Float},
		"maxPrice":   &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var userFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UserSubscriptionFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"emailContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var deleteFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "DeleteSubscriptionFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"userId": &graphql.InputObjectFieldConfig{
			Type:        graphql.ID,
			Description: "Accepted for compatibility. Not checked.",
		},
	},
})

// listArgs are the sorting and paging arguments shared by every list query.
func listArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"sortBy":    &graphql.ArgumentConfig{Type: graphql.String},
		"sortOrder": &graphql.ArgumentConfig{Type: graphql.String},
		"page":      &graphql.ArgumentConfig{Type: graphql.Int},
		"limit":     &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for k, v := range extra {
		args[k] = v
	}
	return args
}

func idArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func searchArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"query":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"fields": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
	}
}

// NewSchema builds the executable schema backed by r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(productPageType),
				Args: listArgs(graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: r.products,
			},
			"product": &graphql.Field{
				Type:    graphql.NewNonNull(productType),
				Args:    idArgs(),
				Resolve: r.product,
			},
			"searchProducts": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args:    searchArgs(),
				Resolve: r.searchProducts,
			},
			"productsByCategory": &graphql.Field{
				Type: graphql.NewNonNull(productPageType),
				Args: listArgs(graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: r.productsByCategory,
			},
			"productsByPriceRange": &graphql.Field{
				Type: graphql.NewNonNull(productPageType),
				Args: listArgs(graphql.FieldConfigArgument{
					"minPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				}),
				Resolve: r.productsByPriceRange,
			},
			"productCategories": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: r.productCategories,
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(userPageType),
				Args: listArgs(graphql.FieldConfigArgument{
					"email":  &graphql.ArgumentConfig{Type: graphql.String},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: r.users,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Args:    idArgs(),
				Resolve: r.user,
			},
			"searchUsers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Args:    searchArgs(),
				Resolve: r.searchUsers,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProductInput)},
				},
				Resolve: r.createProduct,
			},
			"updateProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProductInput)},
				},
				Resolve: r.updateProduct,
			},
			"deleteProduct": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArgs(),
				Resolve: r.deleteProduct,
			},
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: r.createUser,
			},
			"updateUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateUserInput)},
				},
				Resolve: r.updateUser,
			},
			"deleteUser": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Args:    idArgs(),
				Resolve: r.deleteUser,
			},
		},
	})

	productFilterArgs := graphql.FieldConfigArgument{
		"filter": &graphql.ArgumentConfig{Type: productFilterInput},
	}
	userFilterArgs := graphql.FieldConfigArgument{
		"filter": &graphql.ArgumentConfig{Type: userFilterInput},
	}
	deleteFilterArgs := graphql.FieldConfigArgument{
		"filter": &graphql.ArgumentConfig{Type: deleteFilterInput},
	}
	subscription := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"productCreated": &graphql.Field{
				Type:      graphql.NewNonNull(productType),
				Args:      productFilterArgs,
				Subscribe: r.subscribeProducts(events.ProductCreated),
				Resolve:   passThrough,
			},
			"productUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(productType),
				Args:      productFilterArgs,
				Subscribe: r.subscribeProducts(events.ProductUpdated),
				Resolve:   passThrough,
			},
			"productDeleted": &graphql.Field{
				Type:      graphql.NewNonNull(deletedType),
				Args:      deleteFilterArgs,
				Subscribe: r.subscribeDeletes(events.ProductDeleted),
				Resolve:   passThrough,
			},
			"userCreated": &graphql.Field{
				Type:      graphql.NewNonNull(userType),
				Args:      userFilterArgs,
				Subscribe: r.subscribeUsers(events.UserCreated),
				Resolve:   passThrough,
			},
			"userUpdated": &graphql.Field{
				Type:      graphql.NewNonNull(userType),
				Args:      userFilterArgs,
				Subscribe: r.subscribeUsers(events.UserUpdated),
				Resolve:   passThrough,
			},
			"userDeleted": &graphql.Field{
				Type:      graphql.NewNonNull(deletedType),
				Args:      deleteFilterArgs,
				Subscribe: r.subscribeDeletes(events.UserDeleted),
				Resolve:   passThrough,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
	})
}

func resolvePrice(p graphql.ResolveParams) (any, error) {
	switch src := p.Source.(type) {
	case *models.Product:
		return src.Price.InexactFloat64(), nil
	case models.Product:
		return src.Price.InexactFloat64(), nil
	}
	return nil, nil
}

// passThrough resolves a subscription field to the event that triggered it.
func passThrough(p graphql.ResolveParams) (any, error) {
	return p.Source, nil
}

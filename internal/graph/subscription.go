package graph

import (
	"context"

	"catalog/internal/events"
	"catalog/internal/models"

	"github.com/graphql-go/graphql"
)

// stream subscribes to topic for the lifetime of ctx and forwards the
// payloads accepted by match. The returned channel is closed when the
// subscription ends.
func (r *Resolver) stream(ctx context.Context, topic events.Topic, match func(any) bool) chan any {
	sub := r.bus.Subscribe(ctx, topic)
	out := make(chan any)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-sub.C():
				if !ok {
					return
				}
				if !match(payload) {
					continue
				}
				select {
				case out <- payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func productFilterArg(args map[string]any) events.ProductFilter {
	raw := inputArg(args, "filter")
	return events.ProductFilter{
		Categories: stringList(raw, "categories"),
		MinPrice:   optFloat(raw, "minPrice"),
		MaxPrice:   optFloat(raw, "maxPrice"),
	}
}

func (r *Resolver) subscribeProducts(topic events.Topic) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		filter := productFilterArg(p.Args)
		return r.stream(p.Context, topic, func(payload any) bool {
			product, ok := payload.(*models.Product)
			return ok && filter.Matches(product)
		}), nil
	}
}

func (r *Resolver) subscribeDeletes(topic events.Topic) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		filter := events.DeleteFilter{UserID: optString(inputArg(p.Args, "filter"), "userId")}
		return r.stream(p.Context, topic, filter.Matches), nil
	}
}

func (r *Resolver) subscribeUsers(topic events.Topic) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		filter := events.UserFilter{EmailContains: stringOrEmpty(inputArg(p.Args, "filter"), "emailContains")}
		return r.stream(p.Context, topic, func(payload any) bool {
			user, ok := payload.(*models.User)
			return ok && filter.Matches(user)
		}), nil
	}
}

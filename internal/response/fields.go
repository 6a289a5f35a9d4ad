package response

// Mappable is a record with a JSON field view.
type Mappable interface {
	ToMap() map[string]any
}

// SelectFields projects each item onto the requested fields. Unknown names
// are ignored and id is always kept. With no fields the items are returned
// unchanged.
func SelectFields[T Mappable](items []T, fields []string) any {
	if len(fields) == 0 {
		return items
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		out[i] = project(item.ToMap(), fields)
	}
	return out
}

// SelectOne is SelectFields for a single record.
func SelectOne[T Mappable](item T, fields []string) any {
	if len(fields) == 0 {
		return item
	}
	return project(item.ToMap(), fields)
}

func project(full map[string]any, fields []string) map[string]any {
	m := map[string]any{"id": full["id"]}
	for _, f := range fields {
		if v, ok := full[f]; ok {
			m[f] = v
		}
	}
	return m
}

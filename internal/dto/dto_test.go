package dto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) map[string]apperrors.FieldError {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, apperrors.ErrCodeValidation, appErr.Code)

	details, ok := appErr.Details.([]apperrors.FieldError)
	require.True(t, ok)

	byField := make(map[string]apperrors.FieldError, len(details))
	for _, d := range details {
		byField[d.Field] = d
	}
	return byField
}

func decodeCreate(t *testing.T, body string) dto.CreateProductInput {
	t.Helper()
	var in dto.CreateProductInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	in.Normalize()
	return in
}

func TestCreateProductInput_NormalizesAndValidates(t *testing.T) {
	in := decodeCreate(t, `{"name":"  Widget A ","description":"   ","price":9.99,"category":" ELECTRONICS "}`)

	require.NoError(t, dto.Validate(&in))
	assert.Equal(t, "Widget A", in.Name)
	assert.Nil(t, in.Description)
	assert.Equal(t, "electronics", in.Category)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("9.99")))

	p := in.ToModel()
	assert.Equal(t, "Widget A", p.Name)
	assert.Equal(t, "electronics", p.Category)
}

func TestCreateProductInput_AcceptsNumericStringPrice(t *testing.T) {
	in := decodeCreate(t, `{"name":"Widget","price":"19.50","category":"books"}`)

	require.NoError(t, dto.Validate(&in))
	assert.Equal(t, "19.5", in.Price.String())
}

func TestCreateProductInput_ReportsEveryFailedField(t *testing.T) {
	in := decodeCreate(t, `{"name":"W","description":"`+strings.Repeat("x", 1001)+`","price":0,"category":"weapons"}`)

	fields := fieldErrors(t, dto.Validate(&in))
	assert.Equal(t, "min", fields["name"].Constraint)
	assert.Equal(t, "max", fields["description"].Constraint)
	assert.Equal(t, "gt", fields["price"].Constraint)
	assert.Equal(t, "category", fields["category"].Constraint)
	assert.Equal(t, "weapons", fields["category"].Value)
}

func TestCreateProductInput_Rules(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		field      string
		constraint string
	}{
		{"missing name", `{"price":1,"category":"books"}`, "name", "required"},
		{"blank name", `{"name":"   ","price":1,"category":"books"}`, "name", "required"},
		{"long name", `{"name":"` + strings.Repeat("a", 101) + `","price":1,"category":"books"}`, "name", "max"},
		{"bad characters", `{"name":"Widget<script>","price":1,"category":"books"}`, "name", "productname"},
		{"non-ascii letters", `{"name":"Éclair","price":1,"category":"books"}`, "name", "productname"},
		{"missing price", `{"name":"Widget","category":"books"}`, "price", "required"},
		{"negative price", `{"name":"Widget","price":-3,"category":"books"}`, "price", "gt"},
		{"price too high", `{"name":"Widget","price":1000000,"category":"books"}`, "price", "lte"},
		{"too many decimals", `{"name":"Widget","price":1.999,"category":"books"}`, "price", "money"},
		{"missing category", `{"name":"Widget","price":1}`, "category", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decodeCreate(t, tt.body)
			fields := fieldErrors(t, dto.Validate(&in))
			require.Contains(t, fields, tt.field)
			assert.Equal(t, tt.constraint, fields[tt.field].Constraint)
			assert.NotEmpty(t, fields[tt.field].Message)
		})
	}
}

func TestCreateProductInput_AllowedNameCharacters(t *testing.T) {
	for _, name := range []string{"Kid's Toy", "Multi-Tool 3000", "Cafe Creme", "AB"} {
		in := dto.CreateProductInput{Name: name, Price: ptrDecimal("1.00"), Category: "toys"}
		in.Normalize()
		assert.NoError(t, dto.Validate(&in), name)
	}
}

func TestCreateProductInput_MaxPriceBoundary(t *testing.T) {
	in := dto.CreateProductInput{Name: "Yacht", Price: ptrDecimal("999999.99"), Category: "other"}
	assert.NoError(t, dto.Validate(&in))
}

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpdateProductInput(t *testing.T) {
	t.Run("empty update has no changes", func(t *testing.T) {
		var in dto.UpdateProductInput
		in.Normalize()
		assert.NoError(t, dto.Validate(&in))
		assert.False(t, in.HasChanges())
	})

	t.Run("present fields are validated", func(t *testing.T) {
		in := dto.UpdateProductInput{Name: strPtr(" x "), Category: strPtr("nope")}
		in.Normalize()
		fields := fieldErrors(t, dto.Validate(&in))
		assert.Equal(t, "min", fields["name"].Constraint)
		assert.Equal(t, "category", fields["category"].Constraint)
	})

	t.Run("empty description clears it", func(t *testing.T) {
		in := dto.UpdateProductInput{Description: strPtr("  ")}
		in.Normalize()
		require.NoError(t, dto.Validate(&in))
		assert.True(t, in.HasChanges())

		p := models.Product{Name: "Lamp", Description: strPtr("old")}
		in.Apply(&p)
		assert.Nil(t, p.Description)
		assert.Equal(t, "Lamp", p.Name)
	})

	t.Run("category is case folded", func(t *testing.T) {
		in := dto.UpdateProductInput{Category: strPtr(" Books ")}
		in.Normalize()
		require.NoError(t, dto.Validate(&in))
		assert.Equal(t, "books", *in.Category)
	})
}

func TestProductListQuery(t *testing.T) {
	minPrice, maxPrice := 20.0, 5.0
	q := dto.ProductListQuery{
		Category:  strPtr(" Electronics "),
		MinPrice:  &minPrice,
		MaxPrice:  &maxPrice,
		SortOrder: strPtr("DESC"),
	}
	q.Normalize()

	assert.Equal(t, "electronics", *q.Category)
	assert.Equal(t, "desc", *q.SortOrder)

	fields := fieldErrors(t, dto.Validate(&q))
	assert.Equal(t, "ltefield", fields["minPrice"].Constraint)
}

func TestProductListQuery_RejectsBadValues(t *testing.T) {
	negative := -1.0
	zero, big := 0, 101
	q := dto.ProductListQuery{
		MinPrice: &negative,
		SortBy:   strPtr("stock"),
		Page:     &zero,
		Limit:    &big,
	}
	q.Normalize()

	fields := fieldErrors(t, dto.Validate(&q))
	assert.Equal(t, "gte", fields["minPrice"].Constraint)
	assert.Equal(t, "oneof", fields["sortBy"].Constraint)
	assert.Equal(t, "min", fields["page"].Constraint)
	assert.Equal(t, "max", fields["limit"].Constraint)
}

func TestUserInputs(t *testing.T) {
	in := dto.CreateUserInput{Email: "  Jane@Example.COM ", Password: "secret1"}
	in.Normalize()
	require.NoError(t, dto.Validate(&in))
	assert.Equal(t, "jane@example.com", in.Email)
	assert.Equal(t, "secret1", in.ToModel().Password)

	bad := dto.CreateUserInput{Email: "not-an-email", Password: "123"}
	fields := fieldErrors(t, dto.Validate(&bad))
	assert.Equal(t, "email", fields["email"].Constraint)
	assert.Equal(t, "min", fields["password"].Constraint)

	update := dto.UpdateUserInput{}
	assert.False(t, update.HasChanges())
	update.Email = strPtr("bogus")
	fields = fieldErrors(t, dto.Validate(&update))
	assert.Contains(t, fields, "email")
}

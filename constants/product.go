package constants

import (
	"strings"
)

type Product string

const (
	ProductAuto      Product = "auto"
	ProductLife      Product = "life"
	ProductMedical   Product = "medical"
	ProductProperty  Product = "property"
	ProductCargo     Product = "cargo"
	ProductLiability Product = "liability"
	ProductUnknown   Product = "unknown"
)

var allProducts = []Product{
	ProductAuto,
	ProductLife,
	ProductMedical,
	ProductProperty,
	ProductCargo,
	ProductLiability,
}

// ProductsAsStringSlice lists the known product lines, without the unknown sentinel.
func ProductsAsStringSlice() []string {
	result := make([]string, len(allProducts))
	for i, p := range allProducts {
		result[i] = string(p)
	}
	return result
}

// CanonicalizeProduct maps free-form labels (as returned by a model or typed by a user) onto a Product.
func CanonicalizeProduct(input string) (Product, bool) {
	if input == "" {
		return ProductUnknown, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Product{
		"autos":                 ProductAuto,
		"automovil":             ProductAuto,
		"automóvil":             ProductAuto,
		"vehicle":               ProductAuto,
		"car":                   ProductAuto,
		"vida":                  ProductLife,
		"gastos medicos":        ProductMedical,
		"gastos médicos":        ProductMedical,
		"gmm":                   ProductMedical,
		"health":                ProductMedical,
		"hogar":                 ProductProperty,
		"daños":                 ProductProperty,
		"home":                  ProductProperty,
		"transporte":            ProductCargo,
		"transport":             ProductCargo,
		"responsabilidad civil": ProductLiability,
		"rc general":            ProductLiability,
		"general liability":     ProductLiability,
	}

	if p, ok := synonyms[normalized]; ok {
		return p, true
	}

	for _, p := range allProducts {
		if normalized == string(p) {
			return p, true
		}
	}

	return ProductUnknown, false
}

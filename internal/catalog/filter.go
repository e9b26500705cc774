package catalog

import "strings"

// Filter returns the products whose name or description contains query,
// ignoring case. A blank query returns products unchanged. The result is
// never nil.
func Filter(query string, products []Product) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		if products == nil {
			return []Product{}
		}
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			(p.Description != "" && strings.Contains(strings.ToLower(p.Description), q)) {
			out = append(out, p)
		}
	}
	return out
}

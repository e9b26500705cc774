package admin

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationError names the first form field that failed. It matches
// ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewProduct is the raw admin form. Price and Variants arrive as typed text.
// An uploaded file in ImageData takes precedence over an Image URL and is
// only decoded once the product is validated.
type NewProduct struct {
	Name        string
	Price       string
	Description string
	Variants    string
	Image       string

	ImageType string
	ImageData []byte
}

type validProduct struct {
	name        string
	price       float64
	description string
	variants    []string
	image       string
}

func (in NewProduct) validate() (validProduct, error) {
	var out validProduct

	out.image = strings.TrimSpace(in.Image)
	if in.ImageData != nil {
		u, err := ImageDataURL(in.ImageType, in.ImageData)
		if err != nil {
			return out, err
		}
		out.image = u
	}
	if out.image == "" {
		return out, &ValidationError{Field: "image", Message: "Please select an image"}
	}

	out.name = strings.TrimSpace(in.Name)
	if out.name == "" {
		return out, &ValidationError{Field: "name", Message: "name is required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return out, &ValidationError{Field: "price", Message: "price must be a number"}
	}
	if price < 0 {
		return out, &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	out.price = price

	out.description = strings.TrimSpace(in.Description)
	if out.description == "" {
		return out, &ValidationError{Field: "description", Message: "description is required"}
	}

	out.variants = ParseVariants(in.Variants)
	return out, nil
}

// ParseVariants splits a comma separated list, trims each label and drops
// empty ones.
func ParseVariants(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/services"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/bind"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/response"
)

// ProductController manages the catalog endpoints.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List returns products matching the query parameters.
// GET /api/products
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	products, err := c.products.List(r.Context(), filter)
	if err != nil {
		response.Internal(w, "Failed to fetch products", err)
		return
	}
	response.Success(w, products)
}

// Get returns one product.
// GET /api/products/{productId}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.GetByID(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeServiceError(w, err, "Product not found", "Failed to fetch product")
		return
	}
	response.Success(w, product)
}

type createProductInput struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Category    string   `json:"category" validate:"required,in=sneaker,running,football,basketball,slipper"`
	Brand       string   `json:"brand" validate:"required,in=nike,adidas,puma,under armour,new balance"`
	Gender      string   `json:"gender" validate:"required,in=men,women,kid"`
	Color       string   `json:"color" validate:"required,in=red,blue,black,white,gray,green,yellow"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Sizes       []int    `json:"sizes" validate:"required"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	ProductCode string   `json:"productCode" validate:"required,min=3"`
	Description string   `json:"description"`
	MainImage   string   `json:"mainImage" validate:"required"`
	Images      []string `json:"images" validate:"required"`
	InStock     *bool    `json:"inStock"`
}

// Create adds a product to the catalog.
// POST /api/products
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in createProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if !models.ValidSizes(in.Sizes) {
		response.BadRequest(w, "Sizes must be between 33 and 46")
		return
	}

	product, err := c.products.Create(r.Context(), &models.Product{
		Name:        in.Name,
		Category:    in.Category,
		Brand:       in.Brand,
		Gender:      in.Gender,
		Color:       in.Color,
		Price:       *in.Price,
		Sizes:       in.Sizes,
		Stock:       *in.Stock,
		ProductCode: in.ProductCode,
		Description: in.Description,
		MainImage:   in.MainImage,
		Images:      in.Images,
	}, in.InStock)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			response.BadRequest(w, "Product code already in use")
			return
		}
		response.Internal(w, "Failed to create product", err)
		return
	}
	response.Created(w, product)
}

// Every field is optional on update; nil means leave it alone. The stock
// count travels as "stockCount" on this endpoint.
type updateProductInput struct {
	Name        *string   `json:"name" validate:"min=2"`
	Category    *string   `json:"category" validate:"in=sneaker,running,football,basketball,slipper"`
	Brand       *string   `json:"brand" validate:"in=nike,adidas,puma,under armour,new balance"`
	Gender      *string   `json:"gender" validate:"in=men,women,kid"`
	Color       *string   `json:"color" validate:"in=red,blue,black,white,gray,green,yellow"`
	Price       *float64  `json:"price" validate:"gte=0"`
	Sizes       *[]int    `json:"sizes"`
	Stock       *int      `json:"stockCount" validate:"gte=0"`
	InStock     *bool     `json:"inStock"`
	ProductCode *string   `json:"productCode" validate:"min=3"`
	Description *string   `json:"description"`
	MainImage   *string   `json:"mainImage"`
	Images      *[]string `json:"images"`
}

// Update patches a product.
// PATCH /api/products/{productId}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in updateProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Brand != nil {
		set["brand"] = *in.Brand
	}
	if in.Gender != nil {
		set["gender"] = *in.Gender
	}
	if in.Color != nil {
		set["color"] = *in.Color
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.Sizes != nil {
		if !models.ValidSizes(*in.Sizes) {
			response.BadRequest(w, "Sizes must be between 33 and 46")
			return
		}
		set["sizes"] = *in.Sizes
	}
	if in.Stock != nil {
		set["stock"] = *in.Stock
	}
	if in.InStock != nil {
		set["inStock"] = *in.InStock
	}
	if in.ProductCode != nil {
		set["productCode"] = *in.ProductCode
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.MainImage != nil {
		set["mainImage"] = *in.MainImage
	}
	if in.Images != nil {
		set["images"] = *in.Images
	}

	product, err := c.products.Update(r.Context(), chi.URLParam(r, "productId"), set)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			response.BadRequest(w, "Product code already in use")
			return
		}
		writeServiceError(w, err, "Product not found", "Failed to update product")
		return
	}
	response.Success(w, product)
}

// Delete removes a product from the catalog.
// DELETE /api/products/{productId}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "productId")); err != nil {
		writeServiceError(w, err, "Product not found", "Failed to delete product")
		return
	}
	response.Message(w, "Product deleted")
}

// productFilterFromQuery maps the listing query string onto a repository
// filter. Enum parameters accept comma-separated values.
func productFilterFromQuery(r *http.Request) (repositories.ProductFilter, error) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Search:     q.Get("search"),
		Categories: splitParam(q.Get("category")),
		Colors:     splitParam(q.Get("color")),
		Brands:     splitParam(q.Get("brand")),
		Genders:    splitParam(q.Get("gender")),
		Sort:       q.Get("sort"),
	}

	if v := q.Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errors.New("minPrice must be a number")
		}
		filter.MinPrice = &f
	}
	if v := q.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, errors.New("maxPrice must be a number")
		}
		filter.MaxPrice = &f
	}
	if v := q.Get("inStock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("inStock must be true or false")
		}
		filter.InStock = &b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	return filter, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package handler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tokosakti/pos-api/internal/application/service"
	"github.com/tokosakti/pos-api/internal/config"
	"github.com/tokosakti/pos-api/internal/domain/repository"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/request"
	"github.com/tokosakti/pos-api/internal/presentation/http/dto/response"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	storage        *config.StorageConfig
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, storage *config.StorageConfig) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storage:        storage,
	}
}

// List handles listing products with filters
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: paginationParams(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid category ID")
			return
		}
		id := uint(categoryID)
		params.CategoryID = &id
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Code:           req.Code,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		Price:          req.Price,
		Cost:           req.Cost,
		Stock:          req.Stock,
		StockAlert:     req.StockAlert,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("code"), &service.UpdateProductInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		Price:          req.Price,
		Cost:           req.Cost,
		Stock:          req.Stock,
		StockAlert:     req.StockAlert,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UploadImage handles the product image upload
func (h *ProductHandler) UploadImage(c *gin.Context) {
	code := c.Param("code")

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}
	if file.Size > h.storage.UploadMaxSize {
		response.BadRequest(c, fmt.Sprintf("Image must not exceed %d bytes", h.storage.UploadMaxSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		response.BadRequest(c, "Image must be a jpg, png or webp file")
		return
	}

	filename := fmt.Sprintf("%s-%d%s", code, time.Now().Unix(), ext)
	dst := filepath.Join(h.storage.Path, "products", filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.SetProductImage(c.Request.Context(), code, filepath.ToSlash(filepath.Join("products", filename)))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product image uploaded successfully", product)
}

// Export streams the catalog as a CSV download
func (h *ProductHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.productService.ExportProducts(c.Request.Context(), c.Writer); err != nil {
		c.Error(err)
	}
}

// Import creates products from an uploaded CSV file
func (h *ProductHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "CSV file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	result, err := h.productService.ImportProducts(c.Request.Context(), src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product import finished", result)
}

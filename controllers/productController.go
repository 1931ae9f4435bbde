package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var product models.Product
		if err := ctx.ShouldBindJSON(&product); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if err := db.Create(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
			return
		}

		ctx.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
			}
			return
		}

		var input models.Product
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		product.Name = input.Name
		product.Category = input.Category
		product.Description = input.Description
		product.Price = input.Price
		product.OldPrice = input.OldPrice
		product.Stock = input.Stock
		product.Ingredients = input.Ingredients
		if input.Image != "" {
			product.Image = input.Image
		}

		if err := db.Save(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		result := db.Delete(&models.Product{}, productID)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
	}
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * limit

		query := db.Model(&models.Product{})

		if category := ctx.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := ctx.Query("search"); search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}

		var products []models.Product
		result := query.Limit(limit).Offset(offset).Find(&products)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
			return
		}

		var count int64
		countQuery := db.Model(&models.Product{})
		if category := ctx.Query("category"); category != "" {
			countQuery = countQuery.Where("category = ?", category)
		}
		if search := ctx.Query("search"); search != "" {
			countQuery = countQuery.Where("name LIKE ?", "%"+search+"%")
		}
		countQuery.Count(&count)

		ctx.JSON(http.StatusOK, gin.H{
			"products": products,
			"metadata": gin.H{
				"total": count,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		result := db.First(&product, productID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage stores the uploaded file in S3 and records the public
// URL on the product.
func UploadProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
			}
			return
		}

		file, err := ctx.FormFile("image")
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
			return
		}

		f, err := file.Open()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to open uploaded file", err)
			return
		}
		defer f.Close()

		uploader, err := getAWSUploader()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
			return
		}

		// Unique key to prevent overwrites
		uniqueFilename := fmt.Sprintf("%d-%s-%s", productID, time.Now().Format("20060102150405"), file.Filename)

		result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(getEnvOr("S3_BUCKET", "farmley")),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		if err != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, err)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
			return
		}

		product.Image = result.Location
		if err := db.Save(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"message": "Image uploaded",
			"url":     result.Location,
		})
	}
}

// ExportProductsToExcel streams the full catalog as an xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch products", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create Excel sheet", err)
			return
		}

		headers := []string{"ID", "Name", "Category", "Price", "OldPrice", "Stock", "Image", "CreatedAt", "UpdatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(p.ID))
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.OldPrice)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Image)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		ctx.Header("Content-Disposition", "attachment; filename=products.xlsx")
		ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(ctx.Writer); err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to write Excel file", err)
			return
		}
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mohit-gami/farmley-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user with this email already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgUserCreated           = "User created successfully."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

// Signup handles user registration
func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var signUpData models.User
		if err := ctx.ShouldBindJSON(&signUpData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		var existingUser models.User
		result := db.Where("email = ?", signUpData.Email).Find(&existingUser)
		if result.Error != nil {
			log.Println("Database error during user check:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if result.RowsAffected > 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}

		hashedPassword, err := hashPassword(signUpData.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}
		signUpData.Password = hashedPassword

		// Assign default role if not specified
		if signUpData.Role == "" {
			signUpData.Role = "user"
		}

		if result := db.Create(&signUpData); result.Error != nil {
			log.Println("User creation error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated})
	}
}

// Login handles user authentication
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var loginData models.LoginData
		if err := ctx.ShouldBindJSON(&loginData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		var user models.User
		if err := db.Where("email = ?", loginData.Email).First(&user).Error; err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		if err := comparePasswords(user.Password, loginData.Password); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
			return
		}

		tokenString, err := generateJWT(user)
		if err != nil {
			log.Println("JWT generation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"token":  tokenString,
			"userId": user.ID,
		})
	}
}

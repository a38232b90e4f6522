package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"metrobook/internal/domain"
	"metrobook/internal/domain/models"
	"metrobook/internal/http/middleware"
	"metrobook/internal/repositories"
	"metrobook/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Username) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	repo := repositories.UserRepository{}
	passenger, hash, err := repo.FindPassengerByUsername(req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(c, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login_failed", "password mismatch for "+req.Username)
		RespondError(c, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := issueToken(jwt.MapClaims{"username": passenger.Username, "role": "passenger"})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "passenger "+passenger.Username)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"full_name": passenger.Name,
			"username":  passenger.Username,
		},
	})
}

// POST /api/register (multipart: account fields + priority card image)
func Register(c *gin.Context) {
	required := []string{"id", "name", "password", "username", "email", "birth_date", "resettle", "address", "phone"}
	for _, field := range required {
		if utils.TrimOrEmpty(c.PostForm(field)) == "" {
			RespondError(c, http.StatusBadRequest, fmt.Sprintf("field '%s' is required", field))
			return
		}
	}

	card, err := c.FormFile("priority_card")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "priority card image is required")
		return
	}

	// Reject a malformed birth date before anything is written.
	birthDate, err := utils.ParseDate(c.PostForm("birth_date"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.PostForm("password")), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	uploadDir := envConfig().UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	filename := fmt.Sprintf("%s_%s", c.PostForm("id"), filepath.Base(card.Filename))
	cardPath := filepath.Join(uploadDir, filename)
	if err := c.SaveUploadedFile(card, cardPath); err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	repo := repositories.UserRepository{}
	err = repo.CreatePassenger(models.Passenger{
		ID:           utils.TrimOrEmpty(c.PostForm("id")),
		Name:         utils.NormalizeSpace(c.PostForm("name")),
		Username:     utils.TrimOrEmpty(c.PostForm("username")),
		Email:        utils.TrimOrEmpty(c.PostForm("email")),
		Phone:        utils.TrimOrEmpty(c.PostForm("phone")),
		BirthDate:    utils.FormatDate(birthDate),
		ResettleDate: utils.TrimOrEmpty(c.PostForm("resettle")),
		Address:      utils.TrimOrEmpty(c.PostForm("address")),
		CardPath:     cardPath,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "registration successful, please log in"})
}

type employeeRegisterRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// POST /api/employee/register
func EmployeeRegister(c *gin.Context) {
	var req employeeRegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.EmployeeID <= 0 || utils.TrimOrEmpty(req.Name) == "" ||
		utils.TrimOrEmpty(req.Username) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "employee_id, name, username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	repo := repositories.UserRepository{}
	err = repo.CreateEmployee(models.Employee{
		ID:       req.EmployeeID,
		Name:     utils.TrimOrEmpty(req.Name),
		Username: utils.TrimOrEmpty(req.Username),
		Email:    utils.TrimOrEmpty(req.Email),
		Phone:    utils.TrimOrEmpty(req.Phone),
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "employee account registered"})
}

// POST /api/employee/login — accepts employee id or username as credential.
func EmployeeLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.Username) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "employee id/username and password are required")
		return
	}

	repo := repositories.UserRepository{}
	employee, hash, err := repo.FindEmployeeByCredential(req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(c, http.StatusUnauthorized, "employee id/username not found")
		return
	}
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "incorrect employee id/username or password")
		return
	}

	token, err := issueToken(jwt.MapClaims{"employee_id": employee.ID, "role": "employee"})
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "employee_login", fmt.Sprintf("employee_id=%d", employee.ID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"employee": gin.H{
			"name":        employee.Name,
			"employee_id": employee.ID,
		},
	})
}

// GET /api/passengers/:id/name
func PassengerNameByID(c *gin.Context) {
	repo := repositories.UserRepository{}
	name, err := repo.PassengerNameByID(c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(c, http.StatusNotFound, "no passenger found for that id")
		return
	}
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": utils.TrimOrEmpty(name)})
}

func issueToken(claims jwt.MapClaims) (string, error) {
	claims["exp"] = time.Now().Add(24 * time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(envConfig().JWTSecret))
}

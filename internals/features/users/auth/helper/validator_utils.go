package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func ValidateRegisterInput(userName, email, password string) error {
	if strings.TrimSpace(userName) == "" || strings.TrimSpace(email) == "" || password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_name, email and password are required")
	}
	if len(password) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "identifier and password are required")
	}
	return nil
}

package repositories

import (
	"errors"
	"fmt"
	"strings"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/users/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	DeleteUser(id uint) (int64, error)
	GetAllUsers() ([]models.User, error)
	SearchUsers(filters map[string]string) ([]models.User, error)
	EnsureAdminUser() error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	var existing models.User
	err := r.db.Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("Username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user in database: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d not found", id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user '%s' not found", username)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	if err := r.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) DeleteUser(id uint) (int64, error) {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *userRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

// SearchUsers filters by username substring and/or admin flag, AND-combined.
func (r *userRepository) SearchUsers(filters map[string]string) ([]models.User, error) {
	query := r.db.Model(&models.User{})

	if username, ok := filters["Username"]; ok && strings.TrimSpace(username) != "" {
		query = query.Where("username LIKE ?", "%"+username+"%")
	}
	if isAdminStr, ok := filters["IsAdmin"]; ok && strings.TrimSpace(isAdminStr) != "" {
		query = query.Where("is_admin = ?", strings.EqualFold(isAdminStr, "true"))
	}

	var users []models.User
	err := query.Order("id").Find(&users).Error
	return users, err
}

// EnsureAdminUser seeds the default admin account on first boot. The check
// is against the whole table, not the "admin" name: once any account exists
// the operators own user management, and a deleted or renamed admin must not
// come back with default credentials on the next restart.
func (r *userRepository) EnsureAdminUser() error {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := services.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := r.db.Create(&admin).Error; err != nil {
		return err
	}

	config.Logger.Info("Default admin user created",
		zap.String("username", "admin"),
	)
	return nil
}

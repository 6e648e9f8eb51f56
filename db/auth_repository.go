package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/messaging/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByID(id uuid.UUID) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUsersByIDs(ids []uuid.UUID) ([]models.User, error)
	GetAllUsers() ([]models.User, error)
	IsEmailExist(email string) error
	IsUsernameExist(username string) error
	UpdateUser(user *models.User) error
	DeleteUser(id uuid.UUID) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("CreateUser error: user is nil")
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUsersByIDs resolves the given identifiers to existing users.
// Identifiers with no matching record are dropped silently.
func (a *authRepo) FindUsersByIDs(ids []uuid.UUID) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := a.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		log.Printf("FindUsersByIDs error: %v", err)
		return nil, errors.Wrap(err, "could not resolve user ids")
	}
	return users, nil
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("GetAllUsers error: %v", err)
		return nil, err
	}
	return users, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) IsUsernameExist(username string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("username already in use")
	}
	return nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

// DeleteUser hard-deletes the account; message cleanup follows the schema's
// cascade rules.
func (a *authRepo) DeleteUser(id uuid.UUID) error {
	result := a.DB.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		log.Printf("DeleteUser error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("IsTokenInBlacklist error: %v", err)
		return false
	}
	return count > 0
}

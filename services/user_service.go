package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/techagentng/messaging/db"
	apiError "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/policy"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles user CRUD. Reads are scoped (staff see all, others only
// themselves); writes go through the policy package first.
type UserService interface {
	ListUsers(actor *models.User) ([]models.UserResponse, *apiError.Error)
	GetUser(actor *models.User, id uuid.UUID) (*models.UserResponse, *apiError.Error)
	CreateUser(actor *models.User, request *models.CreateUserRequest) (*models.UserResponse, *apiError.Error)
	UpdateUser(actor *models.User, id uuid.UUID, request *models.UpdateUserRequest) (*models.UserResponse, *apiError.Error)
	DeleteUser(actor *models.User, id uuid.UUID) *apiError.Error
}

type userService struct {
	authRepo db.AuthRepository
}

func NewUserService(authRepo db.AuthRepository) UserService {
	return &userService{authRepo: authRepo}
}

func (s *userService) ListUsers(actor *models.User) ([]models.UserResponse, *apiError.Error) {
	if actor.IsStaff {
		users, err := s.authRepo.GetAllUsers()
		if err != nil {
			log.Printf("ListUsers error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		responses := make([]models.UserResponse, 0, len(users))
		for i := range users {
			responses = append(responses, users[i].Response())
		}
		return responses, nil
	}
	// Non-staff callers see exactly their own record.
	return []models.UserResponse{actor.Response()}, nil
}

func (s *userService) GetUser(actor *models.User, id uuid.UUID) (*models.UserResponse, *apiError.Error) {
	if !policy.UserVisibleTo(actor, id) {
		return nil, apiError.ErrNotFound
	}
	user, err := s.authRepo.FindUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	resp := user.Response()
	return &resp, nil
}

func (s *userService) CreateUser(actor *models.User, request *models.CreateUserRequest) (*models.UserResponse, *apiError.Error) {
	if denied := policy.CanCreateUser(actor); denied != nil {
		return nil, denied
	}

	if err := models.NormalizeStrings(request); err != nil {
		log.Printf("CreateUser normalize error: %v", err)
		return nil, apiError.ErrBadRequest
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.ValidationError(err.Error())
	}
	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		return nil, apiError.GetUniqueContraintError(err)
	}
	if err := s.authRepo.IsUsernameExist(request.Username); err != nil {
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("CreateUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Username:       request.Username,
		Email:          request.Email,
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		PhoneNumber:    request.PhoneNumber,
		IsStaff:        request.IsStaff,
		HashedPassword: string(hashed),
	}
	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	resp := created.Response()
	return &resp, nil
}

// UpdateUser applies a partial update. The credential is re-hashed only when
// the request carries a new one; it is never stored or echoed in plaintext.
func (s *userService) UpdateUser(actor *models.User, id uuid.UUID, request *models.UpdateUserRequest) (*models.UserResponse, *apiError.Error) {
	if !policy.UserVisibleTo(actor, id) {
		return nil, apiError.ErrNotFound
	}
	if denied := policy.CanUpdateUser(actor, id); denied != nil {
		return nil, denied
	}

	user, err := s.authRepo.FindUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("UpdateUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if request.Username != nil && *request.Username != user.Username {
		if err := s.authRepo.IsUsernameExist(*request.Username); err != nil {
			return nil, apiError.GetUniqueContraintError(err)
		}
		user.Username = *request.Username
	}
	if request.Email != nil && *request.Email != user.Email {
		if err := s.authRepo.IsEmailExist(*request.Email); err != nil {
			return nil, apiError.GetUniqueContraintError(err)
		}
		user.Email = *request.Email
	}
	if request.FirstName != nil {
		user.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		user.LastName = *request.LastName
	}
	if request.PhoneNumber != nil {
		user.PhoneNumber = request.PhoneNumber
	}
	// Only staff may change the staff flag; a user cannot promote themselves.
	if request.IsStaff != nil && actor.IsStaff {
		user.IsStaff = *request.IsStaff
	}
	if request.Password != nil {
		if err := models.ValidatePassword(*request.Password); err != nil {
			return nil, apiError.ValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("UpdateUser error hashing password: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		user.HashedPassword = string(hashed)
	}
	if err := models.NormalizeStrings(user); err != nil {
		log.Printf("UpdateUser normalize error: %v", err)
		return nil, apiError.ErrBadRequest
	}

	if err := s.authRepo.UpdateUser(user); err != nil {
		log.Printf("UpdateUser save error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}
	resp := user.Response()
	return &resp, nil
}

func (s *userService) DeleteUser(actor *models.User, id uuid.UUID) *apiError.Error {
	if denied := policy.CanDeleteUser(actor); denied != nil {
		return denied
	}
	if err := s.authRepo.DeleteUser(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("DeleteUser error: %v", err)
		return apiError.New("failed to delete user", http.StatusInternalServerError)
	}
	return nil
}

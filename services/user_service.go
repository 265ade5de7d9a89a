package services

import (
	"blog-api/models"
	"blog-api/repositories"

	"github.com/sirupsen/logrus"
)

type UserService interface {
	CreateUser(req models.CreateUserRequest) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repositories.UserRepository
	log      logrus.FieldLogger
}

func NewUserService(userRepo repositories.UserRepository, log logrus.FieldLogger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *userService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	user, err := s.userRepo.Create(models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, observe("user.create", err)
	}
	observe("user.create", nil)
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user created")
	return user, nil
}

func (s *userService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	return user, observe("user.get", err)
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	return user, observe("user.get_by_username", err)
}

func (s *userService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	return users, observe("user.list", err)
}

func (s *userService) UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.Update(id, models.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	return user, observe("user.update", err)
}

func (s *userService) DeleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		return observe("user.delete", err)
	}
	observe("user.delete", nil)
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

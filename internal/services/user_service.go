package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/repository"

	"github.com/google/uuid"
)

type IUserService interface {
	RegisterNewUser(name, phone, password, state, district string) (*models.User, *models.UserSession, string, error)
	Login(phone, password string, deviceInfo, ipAddress *string) (*models.User, *models.UserSession, string, error)
	Logout(ctx context.Context, userID string) error
	GetUserByID(userID string) (*models.User, error)
}

type UserService struct {
	userRepo       repository.IUserRepository
	sessionService *SessionService
	jwtService     *JWTService

	globalLoginAttempt map[string]int
	mu                 *sync.Mutex
}

func NewUserService(userRepo repository.IUserRepository, sessionService *SessionService, jwtService *JWTService) IUserService {
	return &UserService{
		userRepo:           userRepo,
		sessionService:     sessionService,
		jwtService:         jwtService,
		globalLoginAttempt: make(map[string]int),
		mu:                 &sync.Mutex{},
	}
}

func (s *UserService) RegisterNewUser(name, phone, password, state, district string) (*models.User, *models.UserSession, string, error) {
	if existing, _ := s.userRepo.GetUserByPhone(phone); existing != nil {
		return nil, nil, "", fmt.Errorf("error creating new user: phone number already registered")
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		PhoneNumber:  phone,
		PasswordHash: password,
		State:        state,
		District:     district,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, nil, "", fmt.Errorf("error creating new user: %w", err)
	}

	// Auto-login after registration, same as the web flow.
	token, session, err := s.issueSession(user, nil, nil)
	if err != nil {
		return nil, nil, "", err
	}

	return user, session, token, nil
}

func (s *UserService) Login(phone, password string, deviceInfo, ipAddress *string) (*models.User, *models.UserSession, string, error) {
	user, err := s.userRepo.GetUserByPhone(phone)
	if err != nil {
		log.Printf("user searching failed: %s \n", err)
		return nil, nil, "", fmt.Errorf("phone number or password incorrect: %s", err)
	}

	if !s.userRepo.CheckPasswordHash(password, user.PasswordHash) {
		attemptCount := s.incrementLoginAttempts(user.ID)

		if attemptCount%5 == 0 {
			log.Printf("Suspicious login activity detected for user %s: %d attempts", user.ID, attemptCount)
		}
		if attemptCount%10 == 0 {
			log.Println("account blocked due to too many failed login attempts")
			s.suspendUser(user, time.Now().Unix()+(int64(attemptCount)*60))
			return nil, nil, "", fmt.Errorf("account blocked due to too many failed login attempts")
		}
		return nil, nil, "", fmt.Errorf("invalid password")
	}

	if user.Status == models.UserStatusSuspended {
		if user.LockedUntil > 0 && time.Now().Unix() > user.LockedUntil {
			user.Status = models.UserStatusActive
			user.LockedUntil = 0
			if err := s.userRepo.UpdateUser(user); err != nil {
				log.Printf("Failed to automatically unban user %s: %v", user.ID, err)
				return nil, nil, "", fmt.Errorf("account blocked, try again later")
			}
		} else {
			return nil, nil, "", fmt.Errorf("account blocked, try again later")
		}
	}

	s.resetLoginAttempts(user.ID)

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.UpdateUser(user); err != nil {
		log.Printf("Failed to record last login for user %s: %v", user.ID, err)
	}

	token, session, err := s.issueSession(user, deviceInfo, ipAddress)
	if err != nil {
		return nil, nil, "", err
	}

	return user, session, token, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.sessionService.InvalidateUserSessions(ctx, userID)
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

func (s *UserService) issueSession(user *models.User, deviceInfo, ipAddress *string) (string, *models.UserSession, error) {
	token, err := s.jwtService.GenerateNewToken(user.ID, user.PhoneNumber, user.Name)
	if err != nil {
		log.Println("error generating token: ", err)
		return "", nil, fmt.Errorf("error generating token: %s", err)
	}

	session, err := s.sessionService.CreateSession(context.Background(), user.ID, token, deviceInfo, ipAddress)
	if err != nil {
		log.Println("error creating session: ", err)
		return "", nil, fmt.Errorf("error creating session: %s", err)
	}

	return token, session, nil
}

func (s *UserService) incrementLoginAttempts(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalLoginAttempt[userID]++
	return s.globalLoginAttempt[userID]
}

func (s *UserService) resetLoginAttempts(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.globalLoginAttempt, userID)
}

func (s *UserService) suspendUser(user *models.User, until int64) {
	user.Status = models.UserStatusSuspended
	user.LockedUntil = until
	if err := s.userRepo.UpdateUser(user); err != nil {
		log.Printf("Failed to suspend user %s: %v", user.ID, err)
	}
}

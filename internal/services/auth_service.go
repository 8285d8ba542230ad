package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberInactive     = errors.New("member is deactivated")
)

type AuthService struct {
	config *config.Config
	db     *gorm.DB
}

func NewAuthService(cfg *config.Config, db *gorm.DB) *AuthService {
	return &AuthService{config: cfg, db: db}
}

// JWT Claims
type Claims struct {
	MemberID uuid.UUID `json:"member_id"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// HashPassword creates a bcrypt hash of the password
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password with a hash
func (s *AuthService) CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken creates a JWT token for a member. The token carries
// identity only; role and activation are re-read from the database on
// every request because both can change between requests.
func (s *AuthService) GenerateToken(member *models.Member) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.config.JWTExpiration) * time.Hour)

	claims := &Claims{
		MemberID: member.ID,
		Email:    member.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.AppName,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Register provisions a member account. Invitation delivery is handled
// outside this service; this is the first-authentication edge.
func (s *AuthService) Register(email, password, displayName string, department models.Department, role models.MemberRole) (*models.Member, error) {
	var existing models.Member
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Department:   department,
		Role:         role,
		IsActive:     true,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}

	return member, nil
}

// Login authenticates a member and returns a token. Deactivated
// members cannot sign in.
func (s *AuthService) Login(email, password string) (*models.Member, string, error) {
	var member models.Member
	if err := s.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !s.CheckPassword(password, member.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !member.IsActive {
		return nil, "", ErrMemberInactive
	}

	token, err := s.GenerateToken(&member)
	if err != nil {
		return nil, "", err
	}

	return &member, token, nil
}

// GetMemberByID retrieves a member by their ID
func (s *AuthService) GetMemberByID(id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := s.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

// UpdateMember persists profile changes
func (s *AuthService) UpdateMember(member *models.Member) error {
	return s.db.Save(member).Error
}

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/pkg/jwt"
	"github.com/jhoicas/Marketplace-api/pkg/sanitize"
)

const (
	minPasswordLen = 8
	resetTokenTTL  = time.Hour
	oauthStateTTL  = 10 * time.Minute
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// GoogleProfile datos mínimos del usuario devueltos por Google.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}

// GoogleProvider intercambio OAuth con Google. nil deshabilita el login con Google.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}

// Deps dependencias del caso de uso de auth.
type Deps struct {
	Users       repository.UserRepository
	Resets      repository.PasswordResetRepository
	Tx          repository.TxRunner
	Events      ports.EventPublisher
	States      ports.StateStore
	Google      GoogleProvider
	JWT         JWTConfig
	FrontendURL string
}

// AuthUseCase registro, login local y con Google, elección de rol y recuperación de contraseña.
type AuthUseCase struct {
	d   Deps
	now func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(d Deps) *AuthUseCase {
	return &AuthUseCase{d: d, now: time.Now}
}

// Register crea una cuenta local compradora o vendedora y devuelve su token.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name := sanitize.PlainText(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleBuyer
	}
	if role != entity.RoleBuyer && role != entity.RoleSeller {
		return nil, fmt.Errorf("%w: el registro admite buyer o seller", domain.ErrInvalidInput)
	}
	existing, err := uc.d.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
		RoleSelected: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.d.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica email/password y genera el JWT. Cualquier fallo de credenciales es ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.d.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

// GoogleEnabled indica si hay proveedor OAuth configurado.
func (uc *AuthUseCase) GoogleEnabled() bool { return uc.d.Google != nil }

// GoogleAuthURL genera un state de un solo uso y devuelve la URL de consentimiento.
func (uc *AuthUseCase) GoogleAuthURL(ctx context.Context) (string, error) {
	if uc.d.Google == nil {
		return "", fmt.Errorf("%w: login con Google no configurado", domain.ErrForbidden)
	}
	state, err := randomToken(32)
	if err != nil {
		return "", err
	}
	if err := uc.d.States.Save(ctx, state, oauthStateTTL); err != nil {
		return "", fmt.Errorf("guardar state oauth: %w", err)
	}
	return uc.d.Google.AuthCodeURL(state), nil
}

// GoogleCallback valida el state, intercambia el código y busca o crea la cuenta.
// Una cuenta nueva no tiene contraseña ni rol hasta que llama a SelectRole.
func (uc *AuthUseCase) GoogleCallback(ctx context.Context, state, code string) (*dto.LoginResponse, error) {
	if uc.d.Google == nil {
		return nil, fmt.Errorf("%w: login con Google no configurado", domain.ErrForbidden)
	}
	if state == "" || code == "" {
		return nil, fmt.Errorf("%w: state y code son requeridos", domain.ErrInvalidInput)
	}
	valid, err := uc.d.States.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("validar state oauth: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: state inválido o expirado", domain.ErrUnauthorized)
	}
	profile, err := uc.d.Google.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: intercambio con Google: %v", domain.ErrUnauthorized, err)
	}
	email, err := normalizeEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	user, err := uc.d.Users.GetByGoogleID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if user, err = uc.d.Users.GetByEmail(ctx, email); err != nil {
			return nil, err
		}
		if user != nil {
			// vincula la cuenta local existente
			gid := profile.ID
			user.GoogleID = &gid
			user.UpdatedAt = uc.now()
			if err := uc.d.Users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}
	if user == nil {
		gid := profile.ID
		now := uc.now()
		name := sanitize.PlainText(profile.Name)
		if name == "" {
			name = email
		}
		user = &entity.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			GoogleID:  &gid,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.d.Users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return uc.session(user)
}

// SelectRole fija el rol de una cuenta OAuth. Solo puede hacerse una vez (ErrConflict).
func (uc *AuthUseCase) SelectRole(ctx context.Context, userID, role string) (*dto.LoginResponse, error) {
	if role != entity.RoleBuyer && role != entity.RoleSeller {
		return nil, fmt.Errorf("%w: role debe ser buyer o seller", domain.ErrInvalidInput)
	}
	user, err := uc.d.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.RoleSelected {
		return nil, fmt.Errorf("%w: el rol ya fue elegido", domain.ErrConflict)
	}
	user.Role = role
	user.RoleSelected = true
	user.UpdatedAt = uc.now()
	if err := uc.d.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// ForgotPassword genera un token de un solo uso y publica password_reset.requested.
// No revela si el email existe: los fallos solo se registran.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.d.Users.GetByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("forgot-password: buscar usuario")
		return
	}
	if user == nil {
		return
	}
	token, err := randomToken(32)
	if err != nil {
		log.Error().Err(err).Msg("forgot-password: generar token")
		return
	}
	now := uc.now()
	pr := &entity.PasswordReset{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := uc.d.Resets.Create(ctx, pr); err != nil {
		log.Error().Err(err).Msg("forgot-password: guardar token")
		return
	}
	if uc.d.Events == nil {
		return
	}
	err = uc.d.Events.Publish(ctx, ports.TopicPasswordResetRequest, user.ID, ports.PasswordResetRequestedEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		ResetURL:   uc.d.FrontendURL + "/reset-password?token=" + url.QueryEscape(token),
		ExpiresAt:  pr.ExpiresAt.UTC(),
		OccurredAt: now.UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("forgot-password: publicar evento")
	}
}

// ResetPassword valida el token y fija la nueva contraseña. Token usado o vencido: ErrTokenExpired.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}
	tokenHash := hashToken(strings.TrimSpace(in.Token))
	return uc.d.Tx.Run(ctx, func(repos repository.TxRepos) error {
		pr, err := repos.Resets.GetByTokenHash(ctx, tokenHash)
		if err != nil {
			return err
		}
		if pr == nil || !pr.Usable(uc.now()) {
			return domain.ErrTokenExpired
		}
		user, err := repos.Users.GetByID(ctx, pr.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrTokenExpired
		}
		// el token se consume antes de escribir la contraseña; si otra petición lo ganó, no se toca el usuario
		if err := repos.Resets.MarkUsed(ctx, pr.ID, uc.now()); err != nil {
			return err
		}
		user.PasswordHash = &hash
		user.UpdatedAt = uc.now()
		return repos.Users.Update(ctx, user)
	})
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.d.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := usecase.ToUserResponse(user)
	return &out, nil
}

// User devuelve la entidad del usuario autenticado (autor de respuestas de tickets).
func (uc *AuthUseCase) User(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.d.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *AuthUseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.d.JWT.Secret, user.ID, user.Email, user.Role, uc.d.JWT.Issuer, uc.d.JWT.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		User:      usecase.ToUserResponse(user),
		NeedsRole: !user.RoleSelected,
	}, nil
}

func normalizeEmail(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return email, nil
}

func hashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken solo se persiste el SHA-256 del token enviado por email.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/platform/auth"
)

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
	trail  *audit.Trail
	logins *prometheus.CounterVec
}

func NewService(repo Repository, tokens *auth.TokenIssuer, trail *audit.Trail, logins *prometheus.CounterVec) *Service {
	return &Service{repo: repo, tokens: tokens, trail: trail, logins: logins}
}

// Register creates a staff account. Only administrators reach this path;
// the route enforces the role before the service runs.
func (s *Service) Register(ctx context.Context, actor *auth.Principal, in RegisterInput) (*User, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if in.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	role, err := auth.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:          in.Email,
		FullName:       in.FullName,
		Role:           role,
		EmployeeID:     in.EmployeeID,
		Specialization: in.Specialization,
		Phone:          in.Phone,
		Active:         true,
		PasswordHash:   hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "user", u.ID.String(),
		map[string]interface{}{"email": u.Email, "role": string(u.Role)})

	return u, nil
}

// Login authenticates by email and password. The email is matched exactly,
// byte for byte. Unknown email and wrong password return the identical error
// so callers cannot probe which addresses have accounts.
func (s *Service) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err == ErrNotFound {
		s.countLogin("failure")
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(u.PasswordHash, in.Password) {
		s.countLogin("failure")
		return nil, auth.ErrInvalidCredentials
	}
	if !u.Active {
		s.countLogin("failure")
		return nil, auth.ErrAccountInactive
	}

	token, err := s.tokens.Issue(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}

	s.countLogin("success")
	s.trail.Record(ctx, u.Principal(), audit.ActionLogin, "user", u.ID.String(), nil)

	return &TokenResponse{AccessToken: token, TokenType: "bearer", User: u}, nil
}

// Me returns the live user record for the authenticated principal.
func (s *Service) Me(ctx context.Context, actor *auth.Principal) (*User, error) {
	id, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Doctors(ctx context.Context) ([]*User, error) {
	return s.repo.ListDoctors(ctx)
}

// SetStatus activates or deactivates an account. Administrators cannot
// deactivate themselves; that would lock the last admin out.
func (s *Service) SetStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, active bool) error {
	if actor.ID == id.String() && !active {
		return ErrSelfDeactivation
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.trail.Record(ctx, actor, audit.ActionUpdateStatus, "user", id.String(),
		map[string]interface{}{"is_active": active})

	return nil
}

// FindPrincipal resolves a token subject to the live user record. It backs
// the auth middleware, so a deactivated or deleted account stops
// authenticating the moment the change lands, regardless of token expiry.
func (s *Service) FindPrincipal(ctx context.Context, subjectID string) (*auth.Principal, error) {
	id, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, ErrNotFound
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Principal(), nil
}

// DoctorName resolves an id to a doctor's display name. Non-doctor
// accounts resolve as not found so a nurse id cannot be booked as the
// attending doctor.
func (s *Service) DoctorName(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u.Role != auth.RoleDoctor {
		return "", ErrNotFound
	}
	return u.FullName, nil
}

func (s *Service) countLogin(outcome string) {
	if s.logins != nil {
		s.logins.WithLabelValues(outcome).Inc()
	}
}

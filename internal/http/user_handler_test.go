package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (entity.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, p usecase.ListParams) ([]entity.User, int, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id, role string, membershipDate *time.Time) error {
	args := m.Called(ctx, id, role, membershipDate)
	return args.Error(0)
}

func newUserHandler(repo *mockUserRepo) *UserHandler {
	return NewUserHandler(repo, usecase.NewUserUsecase(repo), "test-secret")
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMock      func(m *mockUserRepo)
		expectedStatus int
	}{
		{
			name: "created",
			body: map[string]string{
				"email":    "new@example.com",
				"username": "newuser",
				"password": "Password123!",
			},
			setupMock: func(m *mockUserRepo) {
				m.On("GetByEmail", mock.Anything, "new@example.com").
					Return(entity.User{}, usecase.ErrNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           "not json",
			setupMock:      func(m *mockUserRepo) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			body: map[string]string{
				"username": "newuser",
				"password": "Password123!",
			},
			setupMock:      func(m *mockUserRepo) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{
				"email":    "new@example.com",
				"username": "newuser",
				"password": "password",
			},
			setupMock:      func(m *mockUserRepo) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "email already exists",
			body: map[string]string{
				"email":    "taken@example.com",
				"username": "newuser",
				"password": "Password123!",
			},
			setupMock: func(m *mockUserRepo) {
				m.On("GetByEmail", mock.Anything, "taken@example.com").
					Return(entity.User{ID: "u1", Email: "taken@example.com"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			tt.setupMock(repo)
			handler := newUserHandler(repo)

			req := authedRequest(http.MethodPost, "/users/register", tt.body, "", "")
			w := httptest.NewRecorder()
			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserHandler_RegisterCreatesMember(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(entity.User{}, usecase.ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleMember && u.Password != "Password123!"
	})).Return(nil)
	handler := newUserHandler(repo)

	req := authedRequest(http.MethodPost, "/users/register", map[string]string{
		"email":    "new@example.com",
		"username": "newuser",
		"password": "Password123!",
	}, "", "")
	w := httptest.NewRecorder()
	handler.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestUserHandler_Login(t *testing.T) {
	hash, err := auth.HashPassword("Password123!")
	require.NoError(t, err)
	stored := entity.User{ID: "u1", Email: "user@example.com", Password: hash, Role: entity.RoleMember}

	t.Run("ok issues token with role", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPost, "/users/login", map[string]string{
			"email":    "user@example.com",
			"password": "Password123!",
		}, "", "")
		w := httptest.NewRecorder()
		handler.Login(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

		claims, err := auth.ParseToken("test-secret", payload["token"])
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Sub)
		assert.Equal(t, entity.RoleMember, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "user@example.com").Return(stored, nil)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPost, "/users/login", map[string]string{
			"email":    "user@example.com",
			"password": "WrongPassword1!",
		}, "", "")
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(entity.User{}, usecase.ErrNotFound)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPost, "/users/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Password123!",
		}, "", "")
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_ChangeRole(t *testing.T) {
	t.Run("admin promotes member to librarian", func(t *testing.T) {
		repo := new(mockUserRepo)
		joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		repo.On("GetByID", mock.Anything, "u1").
			Return(entity.User{ID: "u1", Role: entity.RoleMember, MembershipDate: &joined}, nil)
		repo.On("UpdateRole", mock.Anything, "u1", entity.RoleLibrarian, (*time.Time)(nil)).Return(nil)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPatch, "/users/u1/role", map[string]string{"role": "librarian"}, "admin-1", entity.RoleAdmin)
		w := httptest.NewRecorder()
		handler.ChangeRole(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var payload entity.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, entity.RoleLibrarian, payload.Role)
		assert.Nil(t, payload.MembershipDate)
		repo.AssertExpectations(t)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		repo := new(mockUserRepo)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPatch, "/users/u1/role", map[string]string{"role": "librarian"}, "lib-1", entity.RoleLibrarian)
		w := httptest.NewRecorder()
		handler.ChangeRole(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad role value", func(t *testing.T) {
		repo := new(mockUserRepo)
		handler := newUserHandler(repo)

		req := authedRequest(http.MethodPatch, "/users/u1/role", map[string]string{"role": "root"}, "admin-1", entity.RoleAdmin)
		w := httptest.NewRecorder()
		handler.ChangeRole(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

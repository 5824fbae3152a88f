package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
	"libraryapi/internal/httpx"
	"libraryapi/internal/usecase"
)

const tokenTTL = 24 * time.Hour

type UserHandler struct {
	repo   usecase.UserRepository
	users  *usecase.UserUsecase
	secret string
}

func NewUserHandler(repo usecase.UserRepository, users *usecase.UserUsecase, secret string) *UserHandler {
	return &UserHandler{repo: repo, users: users, secret: secret}
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,password_strength"`
	MobileNo string `json:"mobile_no" validate:"max=15"`
}

// @Summary Register new user
// @Description Create a member account
// @Tags users
// @Accept json
// @Produce json
// @Param user body registerReq true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	_, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err == nil {
		Error(w, http.StatusConflict, "email already exists")
		return
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		Error(w, http.StatusInternalServerError, "server error")
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		Error(w, http.StatusInternalServerError, "server error")
		return
	}

	newUser := &entity.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashedPassword,
		Role:     entity.RoleMember,
		MobileNo: req.MobileNo,
	}
	if err := h.repo.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			Error(w, http.StatusConflict, "email already exists")
			return
		}
		Error(w, http.StatusInternalServerError, "server error")
		return
	}

	JSON(w, http.StatusCreated, newUser)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Login
// @Description Authenticate and issue a JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body loginReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	user, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(user.Password, req.Password) {
		Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := auth.GenerateToken(h.secret, user.ID, user.Role, tokenTTL)
	if err != nil {
		Error(w, http.StatusInternalServerError, "server error")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"token": token})
}

// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, err := h.repo.GetByID(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, user)
}

// List handles GET /users: admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if httpx.RoleFrom(r) != entity.RoleAdmin {
		Error(w, http.StatusForbidden, "forbidden")
		return
	}
	params := listParamsFromQuery(r)
	users, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		usecaseError(w, err)
		return
	}
	if users == nil {
		users = []entity.User{}
	}
	JSON(w, http.StatusOK, map[string]any{
		"data": users,
		"meta": listMeta(params, total),
	})
}

type changeRoleReq struct {
	Role string `json:"role" validate:"required,oneof=admin librarian member"`
}

// ChangeRole handles PATCH /users/{id}/role. Admin only; switching a user to
// admin or librarian clears the membership date, switching to member stamps
// it once.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/users/")
	userID, ok := strings.CutSuffix(rest, "/role")
	if !ok || userID == "" || strings.Contains(userID, "/") {
		http.NotFound(w, r)
		return
	}

	var req changeRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msgs := ValidateStruct(req); len(msgs) > 0 {
		Error(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	user, err := h.users.ChangeRole(r.Context(), httpx.IdentityFrom(r), userID, req.Role)
	if err != nil {
		usecaseError(w, err)
		return
	}
	JSON(w, http.StatusOK, user)
}

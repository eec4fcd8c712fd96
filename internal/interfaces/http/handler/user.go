package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/persistence"
	"github.com/sltrack/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	repo *persistence.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(repo *persistence.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Current handles GET /api/users/current, returning the caller's own
// resolved account. Unlike the rest of the user routes it is open to any
// authenticated user.
func (h *UserHandler) Current(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.HandleError(c, shared.ErrUnauthenticated.WithMessage("Authentication required"))
		return
	}
	h.Success(c, user)
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	row, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var in identity.UserInput
	if !h.BindJSON(c, &in) {
		return
	}
	row, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, row)
}

// Update handles PUT /api/users/:id. Username is immutable; only display
// name, email, role and active flag may change.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var in identity.UserUpdate
	if !h.BindJSON(c, &in) {
		return
	}
	row, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

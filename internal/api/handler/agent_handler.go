package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

// AgentHandler serves agent management for admins and the agent's own profile.
type AgentHandler struct {
	service ports.AgentService
}

func NewAgentHandler(service ports.AgentService) *AgentHandler {
	return &AgentHandler{service: service}
}

type agentRequest struct {
	Username      string   `json:"username"`
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"         validate:"omitempty,email"`
	Password      string   `json:"password"      validate:"omitempty,min=6"`
	ProfileImage  string   `json:"profileImage"`
	Position      string   `json:"position"`
	WhatsApp      string   `json:"whatsapp"`
	Department    string   `json:"department"`
	ContactNumber string   `json:"contactNumber"`
	VCard         string   `json:"vcard"`
	Languages     []string `json:"languages"`
	AboutMe       string   `json:"aboutMe"`
	Address       string   `json:"address"`
	SocialLinks   []string `json:"socialLinks"`
}

type createAgentRequest struct {
	agentRequest
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r agentRequest) toInput() ports.AgentInput {
	return ports.AgentInput{
		Username:      r.Username,
		FullName:      r.FullName,
		Email:         r.Email,
		Password:      r.Password,
		ProfileImage:  r.ProfileImage,
		Position:      r.Position,
		WhatsApp:      r.WhatsApp,
		Department:    r.Department,
		ContactNumber: r.ContactNumber,
		VCard:         r.VCard,
		Languages:     r.Languages,
		AboutMe:       r.AboutMe,
		Address:       r.Address,
		SocialLinks:   r.SocialLinks,
	}
}

// List returns every agent.
//
// @Summary      List agents
// @Tags         agents
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  successResponse{data=[]domain.Agent}
// @Router       /api/agents [get]
func (h *AgentHandler) List(c echo.Context) error {
	agents, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", agents)
}

// Get returns a single agent.
//
// @Summary      Get agent
// @Tags         agents
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Agent id"
// @Success      200  {object}  successResponse{data=domain.Agent}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/agents/{id} [get]
func (h *AgentHandler) Get(c echo.Context) error {
	agent, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", agent)
}

// Create adds an agent.
//
// @Summary      Create agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createAgentRequest  true  "New agent"
// @Success      201   {object}  successResponse{data=domain.Agent}
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/agents [post]
func (h *AgentHandler) Create(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req createAgentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := req.agentRequest.toInput()
	in.Username, in.FullName, in.Email, in.Password = req.Username, req.FullName, req.Email, req.Password

	agent, err := h.service.Create(c.Request().Context(), actorID, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Agent created successfully", agent)
}

// Update applies a partial update; empty fields are left unchanged.
//
// @Summary      Update agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string        true  "Agent id"
// @Param        body  body      agentRequest  true  "Changes"
// @Success      200   {object}  successResponse{data=domain.Agent}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/agents/{id} [put]
func (h *AgentHandler) Update(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req agentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	agent, err := h.service.Update(c.Request().Context(), actorID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Agent updated successfully", agent)
}

// Delete removes an agent.
//
// @Summary      Delete agent
// @Tags         agents
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Agent id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/agents/{id} [delete]
func (h *AgentHandler) Delete(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Agent deleted successfully", nil)
}

// CheckUsername reports whether an agent username is free.
//
// @Summary      Check agent username availability
// @Tags         agents
// @Produce      json
// @Security     CookieAuth
// @Param        username   query     string  true   "Username"
// @Param        excludeId  query     string  false  "Agent id to ignore"
// @Success      200        {object}  successResponse{data=usernameAvailability}
// @Router       /api/agents/check-username [get]
func (h *AgentHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	ok, err := h.service.UsernameAvailable(c.Request().Context(), username, c.QueryParam("excludeId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", usernameAvailability{Username: username, Available: ok})
}

// Profile returns the signed-in agent.
//
// @Summary      Current agent profile
// @Tags         agents
// @Produce      json
// @Security     AgentCookieAuth
// @Success      200  {object}  successResponse{data=domain.Agent}
// @Failure      401  {object}  ErrorResponse
// @Router       /api/agent/profile [get]
func (h *AgentHandler) Profile(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	agent, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", agent)
}

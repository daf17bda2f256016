package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mateluxy/backoffice-api/internal/core/ports"
)

type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type propertyRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"        validate:"gte=0"`
	Currency     string   `json:"currency"     validate:"omitempty,len=3"`
	Location     string   `json:"location"`
	PropertyType string   `json:"propertyType"`
	ListingType  string   `json:"listingType"  validate:"omitempty,oneof=sale rent"`
	Bedrooms     int      `json:"bedrooms"     validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms"    validate:"gte=0"`
	AreaSqft     float64  `json:"areaSqft"     validate:"gte=0"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	AgentID      string   `json:"agentId"`
	Featured     bool     `json:"featured"`
}

type listPropertiesQuery struct {
	Page        int    `query:"page"        validate:"gte=0"`
	Limit       int    `query:"limit"       validate:"gte=0,max=100"`
	ListingType string `query:"listingType" validate:"omitempty,oneof=sale rent"`
	Featured    string `query:"featured"    validate:"omitempty,boolean"`
	AgentID     string `query:"agentId"`
}

func (r propertyRequest) toInput() ports.PropertyInput {
	return ports.PropertyInput{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Currency:     r.Currency,
		Location:     r.Location,
		PropertyType: r.PropertyType,
		ListingType:  r.ListingType,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		AreaSqft:     r.AreaSqft,
		Images:       r.Images,
		Amenities:    r.Amenities,
		AgentID:      r.AgentID,
		Featured:     r.Featured,
	}
}

// List pages through listings, newest first.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size"
// @Param        listingType  query     string  false  "sale or rent"
// @Param        featured     query     bool    false  "Only featured listings"
// @Param        agentId      query     string  false  "Listings of one agent"
// @Success      200          {object}  successResponse{data=ports.PropertyPage}
// @Failure      400          {object}  ErrorResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	var q listPropertiesQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	var featured *bool
	if q.Featured != "" {
		v, _ := strconv.ParseBool(q.Featured)
		featured = &v
	}

	page, err := h.service.List(c.Request().Context(), ports.PropertyFilter{
		ListingType: q.ListingType,
		Featured:    featured,
		AgentID:     q.AgentID,
		Page:        q.Page,
		Limit:       q.Limit,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", page)
}

// Get returns one listing.
//
// @Summary      Get property
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  successResponse{data=domain.Property}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", p)
}

// Create adds a listing and notifies every admin.
//
// @Summary      Create property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      propertyRequest  true  "Listing"
// @Success      201   {object}  successResponse{data=domain.Property}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), actorID, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Property created successfully", p)
}

// Update replaces a listing's editable fields.
//
// @Summary      Update property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string           true  "Property id"
// @Param        body  body      propertyRequest  true  "Listing"
// @Success      200   {object}  successResponse{data=domain.Property}
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), actorID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Property updated successfully", p)
}

// Delete removes a listing.
//
// @Summary      Delete property
// @Tags         properties
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	actorID, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Property deleted successfully", nil)
}

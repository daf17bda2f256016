package domain

import "time"

const DefaultCountryCode = "+971"

type PropertyRequestStatus string

const (
	RequestNew       PropertyRequestStatus = "new"
	RequestContacted PropertyRequestStatus = "contacted"
	RequestClosed    PropertyRequestStatus = "closed"
)

func (s PropertyRequestStatus) Valid() bool {
	switch s {
	case RequestNew, RequestContacted, RequestClosed:
		return true
	}
	return false
}

// PropertyRequest is a visitor's enquiry about a specific listing.
type PropertyRequest struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	Phone            string                `json:"phone"`
	CountryCode      string                `json:"countryCode"`
	PropertyID       string                `json:"propertyId"`
	PropertyTitle    string                `json:"propertyTitle"`
	PrivacyConsent   bool                  `json:"privacyConsent"`
	MarketingConsent bool                  `json:"marketingConsent"`
	Status           PropertyRequestStatus `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

const DefaultCurrency = "AED"

const (
	ListingSale = "sale"
	ListingRent = "rent"
)

// Property is a listing managed from the back office.
type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Location     string    `json:"location"`
	PropertyType string    `json:"propertyType"`
	ListingType  string    `json:"listingType"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	AreaSqft     float64   `json:"areaSqft"`
	Images       []string  `json:"images"`
	Amenities    []string  `json:"amenities"`
	AgentID      string    `json:"agentId,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

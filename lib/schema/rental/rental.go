// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package rental

// Role identifies what a signed-in account is allowed to see and do.
// Enforcement lives server-side; the client uses the role only to gate
// navigation and hide controls.
type Role string

const (
	RoleAdmin           Role = "admin"
	RolePropertyManager Role = "property_manager"
	RoleTenant          Role = "tenant"
)

// User is the account record returned by the auth endpoints.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Phone      string `json:"phone,omitempty"`
	PropertyID string `json:"propertyId,omitempty"` // Set for tenant accounts.
}

// Address is the embedded address block on a property.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// PropertyImage is one entry in a property's image gallery.
type PropertyImage struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Property statuses.
const (
	PropertyAvailable   = "available"
	PropertyOccupied    = "occupied"
	PropertyMaintenance = "maintenance"
)

// Property listing types (rent vs sale).
const (
	ListingRent = "rent"
	ListingSell = "sell"
)

// Property is a managed unit or building.
type Property struct {
	ID            string          `json:"_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Address       Address         `json:"address"`
	PropertyType  string          `json:"propertyType"` // apartment, house, condo, ...
	ListingType   string          `json:"type"`         // rent or sell
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Area          string          `json:"area,omitempty"`
	RentAmount    float64         `json:"rentAmount,omitempty"`
	SalePrice     float64         `json:"salePrice,omitempty"`
	Status        string          `json:"status"`
	Images        []PropertyImage `json:"images,omitempty"`
	Company       string          `json:"company,omitempty"`
	ParkingSpaces int             `json:"parkingSpaces,omitempty"`
	YearBuilt     int             `json:"yearBuilt,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
}

// ClientPreferences captures what a prospective client is looking for.
type ClientPreferences struct {
	Bedrooms    int  `json:"bedrooms,omitempty"`
	Bathrooms   int  `json:"bathrooms,omitempty"`
	PetFriendly bool `json:"petFriendly,omitempty"`
	Furnished   bool `json:"furnished,omitempty"`
	Parking     bool `json:"parking,omitempty"`
}

// Client transaction types.
const (
	TransactionRent = "rent"
	TransactionBuy  = "buy"
)

// Client is a prospective renter or buyer being tracked by a manager.
type Client struct {
	ID              string            `json:"_id"`
	ClientName      string            `json:"clientName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone,omitempty"`
	Property        Ref[Property]     `json:"property,omitempty"`
	TransactionType string            `json:"transactionType"`
	Budget          float64           `json:"budget,omitempty"`
	MoveInDate      string            `json:"moveInDate,omitempty"`
	LeaseDuration   int               `json:"leaseDuration,omitempty"`
	Status          string            `json:"status,omitempty"`
	Preferences     ClientPreferences `json:"preferences,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       string            `json:"createdAt,omitempty"`
}

// Tenant is an account occupying a property. LeaseID is populated with
// the lease document on list endpoints, which carries the start and end
// dates the edit form needs.
type Tenant struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone,omitempty"`
	PropertyID Ref[Property] `json:"propertyId,omitempty"`
	LeaseID    Ref[Lease]    `json:"leaseId,omitempty"`
	Notes      string        `json:"notes,omitempty"`
	CreatedAt  string        `json:"createdAt,omitempty"`
}

// Lease binds a tenant to a property for a date range. The server
// stores startDate/endDate; older records carry leaseStart/leaseEnd,
// so readers should prefer the Start/End accessors.
type Lease struct {
	ID              string        `json:"_id"`
	Tenant          Ref[Tenant]   `json:"tenant,omitempty"`
	Property        Ref[Property] `json:"property,omitempty"`
	StartDate       string        `json:"startDate,omitempty"`
	EndDate         string        `json:"endDate,omitempty"`
	LeaseStart      string        `json:"leaseStart,omitempty"`
	LeaseEnd        string        `json:"leaseEnd,omitempty"`
	LeaseTerms      string        `json:"leaseTerms,omitempty"`
	AgreementPdfURL string        `json:"agreementPdfUrl,omitempty"`
	CreatedAt       string        `json:"createdAt,omitempty"`
}

// Start returns the lease start date, preferring the canonical field.
func (lease Lease) Start() string {
	if lease.LeaseStart != "" {
		return lease.LeaseStart
	}
	return lease.StartDate
}

// End returns the lease end date, preferring the canonical field.
func (lease Lease) End() string {
	if lease.LeaseEnd != "" {
		return lease.LeaseEnd
	}
	return lease.EndDate
}

// Payment types.
const (
	PaymentRent            = "rent"
	PaymentSecurityDeposit = "security_deposit"
	PaymentLateFee         = "late_fee"
	PaymentPetDeposit      = "pet_deposit"
	PaymentUtility         = "utility"
	PaymentMaintenanceFee  = "maintenance"
	PaymentOther           = "other"
)

// Payment methods.
const (
	MethodCash         = "cash"
	MethodCheck        = "check"
	MethodBankTransfer = "bank_transfer"
	MethodCreditCard   = "credit_card"
	MethodOnline       = "online"
	MethodOther        = "other"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentOverdue   = "overdue"
)

// Payment is a single rent or fee transaction.
type Payment struct {
	ID            string        `json:"_id"`
	Tenant        Ref[Tenant]   `json:"tenant,omitempty"`
	Property      Ref[Property] `json:"property,omitempty"`
	Lease         Ref[Lease]    `json:"lease,omitempty"`
	Amount        float64       `json:"amount"`
	DueDate       string        `json:"dueDate,omitempty"`
	PaidDate      string        `json:"paidDate,omitempty"`
	PaymentType   string        `json:"paymentType"`
	PaymentMethod string        `json:"paymentMethod"`
	Status        string        `json:"status"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
}

// Maintenance categories.
const (
	CategoryPlumbing   = "plumbing"
	CategoryElectrical = "electrical"
	CategoryHVAC       = "hvac"
	CategoryAppliance  = "appliance"
	CategoryStructural = "structural"
	CategoryCosmetic   = "cosmetic"
	CategorySecurity   = "security"
	CategoryOther      = "other"
)

// Maintenance priorities.
const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// Maintenance statuses.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
	MaintenanceOnHold     = "on_hold"
)

// MaintenanceRequest is a reported issue against a property.
type MaintenanceRequest struct {
	ID          string        `json:"_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	Property    Ref[Property] `json:"property,omitempty"`
	RequestedBy Ref[User]     `json:"requestedBy,omitempty"`
	CreatedAt   string        `json:"createdAt,omitempty"`
}

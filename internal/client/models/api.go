package models

import "encoding/json"

// TokenPair is the credential set issued on login, OTP verification,
// guest purchase and token refresh.
type TokenPair struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn"`
}

// OtpSendResponse describes the one-time-code challenge the backend issued.
type OtpSendResponse struct {
	Delay int64  `json:"delay"`
	Sid   string `json:"sid"`
	TTL   int64  `json:"ttl"`
}

// Money is an amount with and without VAT.
type Money struct {
	IncVat float64 `json:"incVat"`
	ExcVat float64 `json:"excVat"`
}

type Contact struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Gender         *string `json:"gender"`
	Birthday       *string `json:"birthday"`
	DriversLicense *string `json:"driversLicense"`
	CompanyID      *int64  `json:"companyId"`
	EmployeeNumber *string `json:"employeeNumber,omitempty"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
}

type Address struct {
	Name     *string `json:"name,omitempty"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	PostCode string  `json:"postCode"`
}

type Vehicle struct {
	Plate      *string `json:"plate"`
	IsDefault  bool    `json:"isDefault"`
	Permit     *string `json:"permit,omitempty"`
	TollTag    *string `json:"tollTag,omitempty"`
	CardNumber *string `json:"cardNumber,omitempty"`
}

type Card struct {
	Code      string `json:"code"`
	IsDefault bool   `json:"isDefault"`
}

type PaymentMethodCard struct {
	Holder    string `json:"holder"`
	Type      string `json:"type"`
	Last4D    string `json:"last4D"`
	Expiry    string `json:"expiry"`
	Token     string `json:"token"`
	IsDefault bool   `json:"isDefault"`
}

type PaymentMethods struct {
	Cards []PaymentMethodCard `json:"cards"`
}

// Customer is the account owner as the backend reports it. Rarely used
// sub-documents stay raw.
type Customer struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Contact         Contact         `json:"contact"`
	BillingAddress  Address         `json:"billingAddress"`
	ShippingAddress *Address        `json:"shippingAddress"`
	Vehicles        []Vehicle       `json:"vehicles"`
	Cards           []Card          `json:"cards"`
	Wallet          json.RawMessage `json:"wallet"`
	TollTag         *string         `json:"tollTag"`
	PaymentMethods  PaymentMethods  `json:"paymentMethods"`
	Settings        json.RawMessage `json:"settings"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       *string         `json:"updatedAt"`
}

type OrderOffer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Spot     *string `json:"spot"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

type Validity struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OrderPrice struct {
	Total    float64 `json:"total"`
	Discount float64 `json:"discount"`
}

type OrderResult struct {
	Status      string  `json:"status"`
	Details     *string `json:"details"`
	MissingInfo *string `json:"missingInfo"`
}

type OrderPaymentMethod struct {
	Card     PaymentMethodCard `json:"card"`
	Priority *string           `json:"priority"`
}

type Order struct {
	ID            string             `json:"id"`
	ShortID       string             `json:"shortId"`
	Name          string             `json:"name"`
	CustomerID    string             `json:"customerId"`
	Tags          []string           `json:"tags"`
	BookingRef    string             `json:"bookingRef"`
	Contact       Contact            `json:"contact"`
	Offer         OrderOffer         `json:"offer"`
	Vehicles      []Vehicle          `json:"vehicles"`
	Cards         []Card             `json:"cards"`
	TollTag       *string            `json:"tollTag"`
	PaymentMethod OrderPaymentMethod `json:"paymentMethod"`
	Validity      Validity           `json:"validity"`
	Price         OrderPrice         `json:"price"`
	Result        OrderResult        `json:"result"`
	Flags         []string           `json:"flags"`
	Files         json.RawMessage    `json:"files"`
	CreatedAt     string             `json:"createdAt"`
}

// Profile is the authenticated customer plus their order history. Most
// account mutations return a fresh copy of it.
type Profile struct {
	Customer Customer `json:"customer"`
	Orders   []Order  `json:"orders"`
}

type Statement struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customerId"`
	ShortID     string `json:"shortId"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	OfferType   string `json:"offerType"`
	OfferName   string `json:"offerName"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Total       Money  `json:"total"`
	DownloadURL string `json:"downloadUrl"`
}

type TransactionSpot struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type TransactionOffer struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	TypeName string `json:"typeName"`
}

type Transaction struct {
	ID            string           `json:"id"`
	Offer         TransactionOffer `json:"offer"`
	Contact       Contact          `json:"contact"`
	Spot          TransactionSpot  `json:"spot"`
	Enter         string           `json:"enter"`
	Exit          string           `json:"exit"`
	Amount        Money            `json:"amount"`
	VehicleNumber string           `json:"vehicleNumber"`
}

// InitCardResponse opens a hosted payment page session.
type InitCardResponse struct {
	URL string `json:"url"`
	Sid string `json:"sid"`
}

type HppStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// OfferTile is a purchasable product as shown in the catalog. The UI and
// terminal sub-documents stay raw.
type OfferTile struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Subtitle  *string         `json:"subtitle,omitempty"`
	Type      string          `json:"type"`
	Tags      []OfferTag      `json:"tags"`
	Spot      OfferSpot       `json:"spot"`
	UI        json.RawMessage `json:"ui"`
	Price     OfferPrice      `json:"price"`
	Options   OfferOptions    `json:"options"`
	Published bool            `json:"published"`
	CreatedAt string          `json:"createdAt"`
}

type OfferTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type OfferSpot struct {
	Name    *string         `json:"name"`
	Address json.RawMessage `json:"address"`
}

type OfferPrice struct {
	Type     string   `json:"type"`
	Amount   float64  `json:"amount"`
	Discount *float64 `json:"discount"`
	Tax      *float64 `json:"tax"`
}

// OfferOptionToggle marks an optional checkout requirement.
type OfferOptionToggle struct {
	Enabled  bool `json:"enabled"`
	Required bool `json:"required"`
}

type OfferOptions struct {
	IsApprovalRequired bool               `json:"isApprovalRequired"`
	IsAutoRenewable    bool               `json:"isAutoRenewable"`
	Files              *OfferOptionToggle `json:"files"`
	Plate              OfferOptionToggle  `json:"plate"`
	Card               *OfferOptionToggle `json:"card"`
	WalletTopUp        *OfferOptionToggle `json:"walletTopUp"`
}

type BreakdownItem struct {
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Discount Money  `json:"discount"`
}

type Breakdown struct {
	Items    []BreakdownItem `json:"items"`
	Total    Money           `json:"total"`
	Discount Money           `json:"discount"`
	Tax      float64         `json:"tax"`
	Options  struct {
		ShowTax bool `json:"showTax"`
	} `json:"options"`
}

// PurchaseData is the order submission payload.
type PurchaseData struct {
	OfferID         string          `json:"offerId"`
	Contact         Contact         `json:"contact"`
	BillingAddress  *Address        `json:"billingAddress,omitempty"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
	Vehicles        []Vehicle       `json:"vehicles"`
	Cards           []Card          `json:"cards"`
	TollTag         *string         `json:"tollTag,omitempty"`
	PaymentMethod   PurchasePayment `json:"paymentMethod"`
	Services        []string        `json:"services"`
	Validity        Validity        `json:"validity"`
	Options         PurchaseOptions `json:"options"`
}

type PurchaseNewCard struct {
	Sid string `json:"sid"`
}

type PurchaseExistCard struct {
	Token string `json:"token"`
}

type PurchasePayment struct {
	NewCard   *PurchaseNewCard   `json:"newCard,omitempty"`
	ExistCard *PurchaseExistCard `json:"existCard,omitempty"`
}

type WalletOption struct {
	TopUpAmount float64 `json:"topUpAmount"`
}

type PurchaseOptions struct {
	OpenAnAccount *bool         `json:"openAnAccount,omitempty"`
	Notifications *bool         `json:"notifications,omitempty"`
	OfferTerms    *bool         `json:"offerTerms,omitempty"`
	GeneralTerms  *bool         `json:"generalTerms,omitempty"`
	Wallet        *WalletOption `json:"wallet,omitempty"`
}

// PurchaseResponse carries the created order plus a guest-session token pair.
type PurchaseResponse struct {
	Order       Order     `json:"order"`
	Credentials TokenPair `json:"credentials"`
}

// UploadSlotRequest asks the backend to allocate one presigned upload slot.
type UploadSlotRequest struct {
	ContentType string `json:"contentType"`
}

// UploadSlot is one allocated slot: the file id to attach to the order and
// the presigned URL to PUT the bytes to.
type UploadSlot struct {
	FileID    string `json:"fileId"`
	UploadURL string `json:"uploadUrl"`
}

package models

// OrderStatus enumerates the server-side order states the client displays.
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "Order Placed"
	OrderPacking        OrderStatus = "Packing"
	OrderShipped        OrderStatus = "Shipped"
	OrderOutForDelivery OrderStatus = "Out for delivery"
	OrderDelivered      OrderStatus = "Delivered"
)

// PaymentMethod enumerates how an order is paid.
type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "COD"
	PaymentRazorpay PaymentMethod = "Razorpay"
)

// Address is the delivery address collected at checkout.
// Validation tags gate order placement before any backend call.
type Address struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zipcode   string `json:"zipcode" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone" validate:"required,min=7"`
}

// OrderItem is a line-item snapshot taken at purchase time. Prices and
// discounts are frozen here so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Quantity  int     `json:"quantity"`
	Selector  string  `json:"size"`
	Image     string  `json:"image,omitempty"`
}

// Order is server-owned and read-only on the client after placement.
type Order struct {
	ID        string        `json:"_id"`
	UserID    string        `json:"userId"`
	Items     []OrderItem   `json:"items"`
	Amount    float64       `json:"amount"`
	Address   Address       `json:"address"`
	Status    OrderStatus   `json:"status"`
	Payment   PaymentMethod `json:"paymentMethod"`
	Paid      bool          `json:"payment"`
	CreatedAt int64         `json:"date"`
}

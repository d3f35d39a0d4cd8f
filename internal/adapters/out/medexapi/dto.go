package medexapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/domain/model/vendor"
)

// flexID accepts an id sent either as a JSON number or as a numeric string.
type flexID int64

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(bytes.Trim(b, `"`))
	if raw == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id %s is not numeric: %w", b, err)
	}
	*id = flexID(n)
	return nil
}

// backendLayout is how the backend writes naive UTC datetimes.
const backendLayout = "2006-01-02T15:04:05.999999999"

// timestamp accepts RFC 3339 and the backend's zone-less datetimes, read as UTC.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.Parse(backendLayout, raw)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", raw, err)
	}
	t.Time = parsed.UTC()
	return nil
}

func (t *timestamp) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func pointOf(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}
	p, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type userDTO struct {
	ID       flexID `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (d userDTO) toDomain() User {
	return User{ID: int64(d.ID), Email: d.Email, FullName: d.FullName, Role: d.Role}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message      string  `json:"message"`
	User         userDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type registerUserResponse struct {
	Message string  `json:"message"`
	User    userDTO `json:"user"`
}

type registerVendorRequest struct {
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type registerDriverRequest struct {
	VendorID      int64  `json:"vendor_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	LicenseNumber string `json:"license_number"`
}

// enrollmentResponse covers both vendor and driver registration replies.
type enrollmentResponse struct {
	Message  string `json:"message"`
	UserID   flexID `json:"user_id"`
	VendorID flexID `json:"vendor_id"`
	DriverID flexID `json:"driver_id"`
}

type itemDTO struct {
	SKU      string  `json:"sku,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderDTO struct {
	ID                    flexID     `json:"id"`
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	CustomerName          string     `json:"customer_name"`
	CustomerPhone         string     `json:"customer_phone"`
	PickupAddress         string     `json:"pickup_address"`
	PickupLatitude        *float64   `json:"pickup_latitude"`
	PickupLongitude       *float64   `json:"pickup_longitude"`
	DeliveryAddress       string     `json:"delivery_address"`
	DeliveryLatitude      *float64   `json:"delivery_latitude"`
	DeliveryLongitude     *float64   `json:"delivery_longitude"`
	VendorID              flexID     `json:"vendor_id"`
	DriverID              *flexID    `json:"driver_id"`
	TrackingToken         string     `json:"tracking_token"`
	DeliveryFee           float64    `json:"delivery_fee"`
	Notes                 *string    `json:"notes"`
	Items                 []itemDTO  `json:"items"`
	EstimatedDeliveryTime *timestamp `json:"estimated_delivery_time"`
	CreatedAt             timestamp  `json:"created_at"`
}

func (d orderDTO) toDomain() (*order.Order, error) {
	pickup, err := pointOf(d.PickupLatitude, d.PickupLongitude)
	if err != nil {
		return nil, fmt.Errorf("order %d pickup point: %w", d.ID, err)
	}
	delivery, err := pointOf(d.DeliveryLatitude, d.DeliveryLongitude)
	if err != nil {
		return nil, fmt.Errorf("order %d delivery point: %w", d.ID, err)
	}

	var driverID *int64
	if d.DriverID != nil && *d.DriverID > 0 {
		id := int64(*d.DriverID)
		driverID = &id
	}
	var notes string
	if d.Notes != nil {
		notes = *d.Notes
	}
	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, order.Item{SKU: it.SKU, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    int64(d.ID),
		Number:                d.OrderNumber,
		Status:                d.Status,
		CustomerName:          d.CustomerName,
		CustomerPhone:         d.CustomerPhone,
		PickupAddress:         d.PickupAddress,
		PickupPoint:           pickup,
		DeliveryAddress:       d.DeliveryAddress,
		DeliveryPoint:         delivery,
		VendorID:              int64(d.VendorID),
		DriverID:              driverID,
		TrackingToken:         d.TrackingToken,
		DeliveryFee:           d.DeliveryFee,
		Notes:                 notes,
		Items:                 items,
		EstimatedDeliveryTime: d.EstimatedDeliveryTime.ptr(),
		CreatedAt:             d.CreatedAt.Time,
	})
}

type createOrderRequest struct {
	VendorID          int64     `json:"vendor_id"`
	CustomerName      string    `json:"customer_name"`
	CustomerPhone     string    `json:"customer_phone"`
	PickupAddress     string    `json:"pickup_address"`
	DeliveryAddress   string    `json:"delivery_address"`
	DeliveryLatitude  *float64  `json:"delivery_latitude,omitempty"`
	DeliveryLongitude *float64  `json:"delivery_longitude,omitempty"`
	Items             []itemDTO `json:"items"`
	DeliveryFee       float64   `json:"delivery_fee"`
	Notes             string    `json:"notes,omitempty"`
}

type driverDTO struct {
	ID                 flexID     `json:"id"`
	UserID             flexID     `json:"user_id"`
	VendorID           flexID     `json:"vendor_id"`
	FullName           string     `json:"full_name"`
	Phone              string     `json:"phone"`
	Status             string     `json:"status"`
	CurrentLatitude    *float64   `json:"current_latitude"`
	CurrentLongitude   *float64   `json:"current_longitude"`
	LastLocationUpdate *timestamp `json:"last_location_update"`
}

func (d driverDTO) toDomain() (*driver.Driver, error) {
	last, err := pointOf(d.CurrentLatitude, d.CurrentLongitude)
	if err != nil {
		return nil, fmt.Errorf("driver %d location: %w", d.ID, err)
	}
	return driver.RestoreDriver(driver.Snapshot{
		ID:             int64(d.ID),
		UserID:         int64(d.UserID),
		VendorID:       int64(d.VendorID),
		FullName:       d.FullName,
		Phone:          d.Phone,
		Status:         d.Status,
		LastLocation:   last,
		LastLocationAt: d.LastLocationUpdate.ptr(),
	})
}

type vendorDTO struct {
	ID           flexID `json:"id"`
	UserID       flexID `json:"user_id"`
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

func (d vendorDTO) toDomain() (vendor.Vendor, error) {
	v := vendor.Vendor{
		ID:           int64(d.ID),
		UserID:       int64(d.UserID),
		BusinessName: d.BusinessName,
		Address:      d.Address,
		Phone:        d.Phone,
	}
	if err := v.Validate(); err != nil {
		return vendor.Vendor{}, err
	}
	return v, nil
}

type trackedOrderDTO struct {
	OrderNumber           string     `json:"order_number"`
	Status                string     `json:"status"`
	CustomerName          string     `json:"customer_name"`
	DeliveryAddress       string     `json:"delivery_address"`
	DeliveryLatitude      *float64   `json:"delivery_latitude"`
	DeliveryLongitude     *float64   `json:"delivery_longitude"`
	EstimatedDeliveryTime *timestamp `json:"estimated_delivery_time"`
	CreatedAt             timestamp  `json:"created_at"`
}

type driverLocationDTO struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	LastUpdate *timestamp `json:"last_update"`
}

type trackingDTO struct {
	Order          trackedOrderDTO    `json:"order"`
	DriverLocation *driverLocationDTO `json:"driver_location"`
	ETAMinutes     *int               `json:"eta_minutes"`
}

func (d trackingDTO) toDomain() (tracking.Snapshot, error) {
	status, err := order.ParseStatus(d.Order.Status)
	if err != nil {
		return tracking.Snapshot{}, err
	}
	delivery, err := pointOf(d.Order.DeliveryLatitude, d.Order.DeliveryLongitude)
	if err != nil {
		return tracking.Snapshot{}, fmt.Errorf("delivery point: %w", err)
	}

	snapshot := tracking.Snapshot{
		Order: tracking.TrackedOrder{
			Number:                d.Order.OrderNumber,
			Status:                status,
			CustomerName:          d.Order.CustomerName,
			DeliveryAddress:       d.Order.DeliveryAddress,
			DeliveryPoint:         delivery,
			EstimatedDeliveryTime: d.Order.EstimatedDeliveryTime.ptr(),
			CreatedAt:             d.Order.CreatedAt.Time,
		},
		ETAMinutes: d.ETAMinutes,
	}

	if loc := d.DriverLocation; loc != nil {
		point, err := kernel.NewGeoPoint(loc.Latitude, loc.Longitude)
		if err != nil {
			return tracking.Snapshot{}, fmt.Errorf("driver location: %w", err)
		}
		position := &tracking.DriverPosition{Point: point}
		if at := loc.LastUpdate.ptr(); at != nil {
			position.UpdatedAt = *at
		}
		snapshot.Driver = position
	}

	if err := snapshot.Validate(); err != nil {
		return tracking.Snapshot{}, err
	}
	return snapshot, nil
}

// errorBody is the FastAPI error envelope. detail is a string for handled errors
// and a list of objects for request validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func detailOf(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return string(bytes.TrimSpace(body))
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	return string(eb.Detail)
}

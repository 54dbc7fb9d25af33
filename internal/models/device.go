package models

import "sort"

// unknownProduct is reported when a device carries no product descriptor.
const unknownProduct = "unknown"

// Product identifies the vendor hardware family.
type Product struct {
	Type  string `json:"product_type"`
	Model string `json:"product_model"`
}

// Device is a read-only snapshot of one entry in the vendor device list.
// Telemetry holds vendor-specific fields (battery, voltage, battery_level,
// ...) whose presence and shape vary by firmware.
type Device struct {
	MAC       string         `json:"mac"`
	Nickname  string         `json:"nickname"`
	IsOnline  bool           `json:"is_online"`
	Product   *Product       `json:"product,omitempty"`
	Telemetry map[string]any `json:"telemetry,omitempty"`
}

// DeviceInfo is the normalized summary printed when no doorbell matches.
type DeviceInfo struct {
	MAC          string `json:"mac"`
	Nickname     string `json:"nickname"`
	ProductType  string `json:"product_type"`
	ProductModel string `json:"product_model"`
	IsOnline     bool   `json:"is_online"`
}

// ProductType returns the product type or "unknown".
func (d *Device) ProductType() string {
	if d.Product == nil {
		return unknownProduct
	}
	return d.Product.Type
}

// ProductModel returns the product model or "unknown".
func (d *Device) ProductModel() string {
	if d.Product == nil {
		return unknownProduct
	}
	return d.Product.Model
}

// Info summarizes the device for diagnostics.
func (d *Device) Info() DeviceInfo {
	return DeviceInfo{
		MAC:          d.MAC,
		Nickname:     d.Nickname,
		ProductType:  d.ProductType(),
		ProductModel: d.ProductModel(),
		IsOnline:     d.IsOnline,
	}
}

// Field looks up a telemetry attribute. The boolean reports presence; a
// present attribute may still hold nil.
func (d *Device) Field(name string) (any, bool) {
	v, ok := d.Telemetry[name]
	return v, ok
}

// Dump returns every attribute of the device as a flat map, identity fields
// included. Telemetry keys never shadow identity fields.
func (d *Device) Dump() (map[string]any, error) {
	out := make(map[string]any, len(d.Telemetry)+5)
	for k, v := range d.Telemetry {
		out[k] = v
	}
	out["mac"] = d.MAC
	out["nickname"] = d.Nickname
	out["is_online"] = d.IsOnline
	if d.Product != nil {
		out["product_type"] = d.Product.Type
		out["product_model"] = d.Product.Model
	}
	return out, nil
}

// NonNullAttributes returns the dump without nil values.
func (d *Device) NonNullAttributes() (map[string]any, error) {
	all, err := d.Dump()
	if err != nil {
		return nil, err
	}
	for k, v := range all {
		if v == nil {
			delete(all, k)
		}
	}
	return all, nil
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

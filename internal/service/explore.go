package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"
)

// exploreFields are printed when present and non-nil.
var exploreFields = []string{
	"battery",
	"voltage",
	"battery_level",
	"power_level",
	"electricity",
	"battery_percentage",
}

// ExplorerService prints every device in detail so the doorbell's
// identifiers and battery fields can be discovered.
type ExplorerService struct {
	lister DeviceLister
	out    io.Writer
	log    *logger.Logger
}

func NewExplorerService(lister DeviceLister, out io.Writer, log *logger.Logger) *ExplorerService {
	return &ExplorerService{lister: lister, out: out, log: log}
}

func (s *ExplorerService) Explore(ctx context.Context) error {
	s.log.Infow("fetching all devices")
	devices, err := s.lister.DevicesList(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		s.log.Warnw("no devices found in account")
		return nil
	}

	s.log.Infow("devices found", "count", len(devices))
	for i := range devices {
		if err := writeDevice(s.out, &devices[i]); err != nil {
			return fmt.Errorf("write device %q: %w", devices[i].MAC, err)
		}
	}
	return nil
}

func writeDevice(w io.Writer, d *models.Device) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Nickname: %s\n", d.Nickname)
	fmt.Fprintf(&b, "MAC: %s\n", d.MAC)
	fmt.Fprintf(&b, "Online: %t\n", d.IsOnline)
	if d.Product != nil {
		fmt.Fprintf(&b, "Product Type: %s\n", d.Product.Type)
		fmt.Fprintf(&b, "Product Model: %s\n", d.Product.Model)
	}

	for _, name := range exploreFields {
		if v, ok := d.Field(name); ok && v != nil {
			fmt.Fprintf(&b, "%s: %v\n", name, v)
		}
	}

	if data, err := d.Dump(); err != nil {
		fmt.Fprintf(&b, "Could not get dump: %v\n", err)
	} else {
		fmt.Fprintf(&b, "Full data: %s\n", formatAttrs(data))
	}
	if attrs, err := d.NonNullAttributes(); err == nil {
		fmt.Fprintf(&b, "Non-null attributes: %s\n", formatAttrs(attrs))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// formatAttrs renders m as {k: v, ...} with sorted keys.
func formatAttrs(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, k := range models.SortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

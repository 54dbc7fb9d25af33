package service

import (
	"context"
	"strings"

	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"
)

// doorbellIndicators are matched, in order, as lower-case substrings of the
// product type, product model and nickname. Best effort: expect to extend
// this list when the vendor ships new identifiers.
var doorbellIndicators = []string{
	"doorbell",
	"wvdb",   // Wyze Video Doorbell
	"gw_be1", // battery doorbell
}

// LocatorService finds the doorbell among the account's devices.
type LocatorService struct {
	lister DeviceLister
	log    *logger.Logger
}

func NewLocatorService(lister DeviceLister, log *logger.Logger) *LocatorService {
	return &LocatorService{lister: lister, log: log}
}

// FindDoorbell returns the first matching device in list order. The second
// result summarizes every device examined; when nothing matches that is the
// whole list. A nil device with a nil error means "not found".
func (s *LocatorService) FindDoorbell(ctx context.Context) (*models.Device, []models.DeviceInfo, error) {
	s.log.Infow("searching for doorbell device")
	devices, err := s.lister.DevicesList(ctx)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]models.DeviceInfo, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		infos = append(infos, d.Info())
		if token, ok := matchDoorbell(d); ok {
			s.log.Infow("found doorbell", "nickname", d.Nickname, "model", d.ProductModel(), "token", token)
			return d, infos, nil
		}
	}

	s.log.Warnw("doorbell not found by known identifiers", "devices", len(devices))
	return nil, infos, nil
}

// matchDoorbell reports the first indicator found in the device's fields.
func matchDoorbell(d *models.Device) (string, bool) {
	fields := []string{
		strings.ToLower(d.ProductType()),
		strings.ToLower(d.ProductModel()),
		strings.ToLower(d.Nickname),
	}
	for _, token := range doorbellIndicators {
		for _, f := range fields {
			if strings.Contains(f, token) {
				return token, true
			}
		}
	}
	return "", false
}

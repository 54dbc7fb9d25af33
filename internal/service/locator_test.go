package service

import (
	"context"
	"errors"
	"testing"

	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/models"
)

func device(nickname, pType, pModel string) models.Device {
	return models.Device{
		MAC:      "MAC-" + nickname,
		Nickname: nickname,
		Product:  &models.Product{Type: pType, Model: pModel},
	}
}

func TestLocatorService_FindDoorbell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		devices   []models.Device
		wantMAC   string
		wantInfos int
	}{
		{
			name:      "matches product type in any case",
			devices:   []models.Device{device("Cam", "Camera", "WYZEC1"), device("Porch", "DoorBell", "X")},
			wantMAC:   "MAC-Porch",
			wantInfos: 2,
		},
		{
			name:      "matches model prefix",
			devices:   []models.Device{device("Porch", "Camera", "WVDB1")},
			wantMAC:   "MAC-Porch",
			wantInfos: 1,
		},
		{
			name:      "matches nickname",
			devices:   []models.Device{device("My Doorbell", "Camera", "X")},
			wantMAC:   "MAC-My Doorbell",
			wantInfos: 1,
		},
		{
			name: "first match wins and stops the scan",
			devices: []models.Device{
				device("Cam", "Camera", "X"),
				device("Front", "Camera", "GW_BE1"),
				device("Back", "Doorbell", "WVDB1"),
			},
			wantMAC:   "MAC-Front",
			wantInfos: 2,
		},
		{
			name: "not found lists every device",
			devices: []models.Device{
				device("Cam", "Camera", "WYZEC1"),
				device("Plug", "Plug", "WLPP1"),
				{MAC: "MAC-bare", Nickname: "Bare"},
			},
			wantInfos: 3,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := &fakeDirectory{devices: tc.devices}
			s := NewLocatorService(dir, logger.Nop())

			got, infos, err := s.FindDoorbell(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(infos) != tc.wantInfos {
				t.Fatalf("expected %d infos, got %d", tc.wantInfos, len(infos))
			}
			if tc.wantMAC == "" {
				if got != nil {
					t.Fatalf("expected not found, got %q", got.MAC)
				}
				return
			}
			if got == nil || got.MAC != tc.wantMAC {
				t.Fatalf("expected %q, got %+v", tc.wantMAC, got)
			}
		})
	}
}

func TestLocatorService_NotFoundInfosAreNormalized(t *testing.T) {
	dir := &fakeDirectory{devices: []models.Device{{MAC: "AA", Nickname: "Bare", IsOnline: true}}}
	s := NewLocatorService(dir, logger.Nop())

	_, infos, err := s.FindDoorbell(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.DeviceInfo{MAC: "AA", Nickname: "Bare", ProductType: "unknown", ProductModel: "unknown", IsOnline: true}
	if infos[0] != want {
		t.Fatalf("got %+v, want %+v", infos[0], want)
	}
}

func TestLocatorService_PropagatesDirectoryError(t *testing.T) {
	dir := &fakeDirectory{listErr: errors.New("api down")}
	s := NewLocatorService(dir, logger.Nop())

	_, _, err := s.FindDoorbell(context.Background())
	if err == nil || err.Error() != "api down" {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestMatchDoorbell_TokenPriority(t *testing.T) {
	d := device("gw_be1 porch", "Camera", "WVDB1")
	token, ok := matchDoorbell(&d)
	if !ok || token != "wvdb" {
		t.Fatalf("expected wvdb (earlier token) to win, got %q %v", token, ok)
	}
}

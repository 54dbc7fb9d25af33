package wyze

import (
	"strings"

	"doorbell_monitor/internal/models"

	"github.com/spf13/cast"
)

// Request constants the mobile app sends with every device-API call.
const (
	appName         = "com.hualai.WyzeCam"
	appVersion      = "2.18.91"
	phoneSystemType = "1"
	signatureSC     = "9f275790cab94a72bd206c8876429f3c"
	signatureSV     = "9d74946e652647e9b6c9d59326aef104"
	userAgent       = "doorbell-monitor/1.0"

	loginPath      = "/api/user/login"
	objectListPath = "/app/v2/home_page/get_object_list"

	successCode     = "1"
	connStateOnline = 1
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	// Present on failures.
	ErrorCode   any    `json:"errorCode"`
	Description string `json:"description"`
}

type objectListRequest struct {
	AccessToken     string `json:"access_token"`
	AppName         string `json:"app_name"`
	AppVer          string `json:"app_ver"`
	AppVersion      string `json:"app_version"`
	PhoneID         string `json:"phone_id"`
	PhoneSystemType string `json:"phone_system_type"`
	SC              string `json:"sc"`
	SV              string `json:"sv"`
	TS              int64  `json:"ts"`
}

type objectListResponse struct {
	// The API has returned both "1" and 1 over time.
	Code any    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		DeviceList []map[string]any `json:"device_list"`
	} `json:"data"`
}

func (r objectListResponse) ok() bool {
	return cast.ToString(r.Code) == successCode
}

// identityKeys are the device-list fields mapped onto models.Device rather
// than kept as telemetry.
var identityKeys = map[string]bool{
	"mac":           true,
	"nickname":      true,
	"product_type":  true,
	"product_model": true,
	"conn_state":    true,
	"device_params": true,
}

// toDevice maps one raw device-list entry. device_params become telemetry;
// other unrecognized top-level fields are kept as telemetry unless a
// device_params entry of the same name exists.
func toDevice(raw map[string]any) models.Device {
	d := models.Device{
		MAC:       cast.ToString(raw["mac"]),
		Nickname:  cast.ToString(raw["nickname"]),
		IsOnline:  cast.ToInt(raw["conn_state"]) == connStateOnline,
		Telemetry: map[string]any{},
	}

	pType, hasType := raw["product_type"]
	pModel, hasModel := raw["product_model"]
	if hasType || hasModel {
		d.Product = &models.Product{
			Type:  strings.TrimSpace(cast.ToString(pType)),
			Model: strings.TrimSpace(cast.ToString(pModel)),
		}
	}

	if params, ok := raw["device_params"].(map[string]any); ok {
		for k, v := range params {
			d.Telemetry[k] = v
		}
	}
	for k, v := range raw {
		if identityKeys[k] {
			continue
		}
		if _, exists := d.Telemetry[k]; !exists {
			d.Telemetry[k] = v
		}
	}
	return d
}

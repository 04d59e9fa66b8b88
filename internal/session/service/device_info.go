package service

import (
	"encoding/json"
	"time"
)

// deviceInfo is the JSON shape stored in a session's device_info column.
type deviceInfo struct {
	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	Timestamp string `json:"timestamp"`
}

// BuildDeviceInfo formats request metadata into the opaque device_info blob
// captured at session creation. The blob is advisory only.
func BuildDeviceInfo(userAgent, ipAddress string) string {
	info := deviceInfo{
		UserAgent: userAgent,
		IPAddress: ipAddress,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(info)
	if err != nil {
		return ""
	}
	return string(b)
}

package utils

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"kpi-tracker-backend/config"

	"go.uber.org/zap"
)

const (
	ntpServer  = "pool.ntp.org:123"
	ntpTimeout = 5 * time.Second
	// Seconds between the NTP epoch (1900) and the Unix epoch (1970).
	ntpUnixOffset = 2208988800
)

// DateLocation is the business timezone. All period calculations and upload
// timestamps use IST regardless of where the server runs.
var DateLocation *time.Location

// InitializeDateLocation loads Asia/Kolkata, falling back to a fixed +05:30
// zone when the tz database is unavailable.
func InitializeDateLocation() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		config.Logger.Warn("Asia/Kolkata not found in tz database, using fixed offset",
			zap.Error(err),
		)
		loc = time.FixedZone("IST", 5*3600+30*60)
	}
	DateLocation = loc
}

// queryNetworkTime asks a public SNTP server for the current time. The
// request is a bare 48-byte client packet; the transmit timestamp sits at
// bytes 40..47 of the response.
func queryNetworkTime() (time.Time, error) {
	conn, err := net.DialTimeout("udp", ntpServer, ntpTimeout)
	if err != nil {
		return time.Time{}, fmt.Errorf("dialing ntp server: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ntpTimeout)); err != nil {
		return time.Time{}, fmt.Errorf("setting ntp deadline: %w", err)
	}

	request := make([]byte, 48)
	request[0] = 0x1B // LI=0, VN=3, Mode=3 (client)
	if _, err := conn.Write(request); err != nil {
		return time.Time{}, fmt.Errorf("sending ntp request: %w", err)
	}

	response := make([]byte, 48)
	if _, err := conn.Read(response); err != nil {
		return time.Time{}, fmt.Errorf("reading ntp response: %w", err)
	}

	secs := binary.BigEndian.Uint32(response[40:44])
	frac := binary.BigEndian.Uint32(response[44:48])
	if secs < ntpUnixOffset {
		return time.Time{}, fmt.Errorf("invalid ntp response")
	}

	unixSecs := int64(secs) - ntpUnixOffset
	nanos := int64(float64(frac) / (1 << 32) * float64(time.Second))
	return time.Unix(unixSecs, nanos).UTC(), nil
}

// NetworkTimeIST returns the current time in IST, preferring the network
// clock. fallback is true when the SNTP query failed and the local clock was
// used instead.
func NetworkTimeIST() (now time.Time, fallback bool) {
	utc, err := queryNetworkTime()
	if err != nil {
		config.Logger.Warn("Network time unavailable, falling back to local clock",
			zap.Error(err),
		)
		return time.Now().In(DateLocation), true
	}
	return utc.In(DateLocation), false
}

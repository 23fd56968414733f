package utils

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	timeFormat = "2006/01/02 15:04:05"
)

var logger = &Logger{
	Logger: log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile),
}

var bufPool = &sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuf gets a *bytes.Buffer from pool
func GetBuf() *bytes.Buffer {
	result := bufPool.Get().(*bytes.Buffer)
	result.Reset()
	return result
}

// ReturnBuf returns a *bytes.Buffer to Pool once you don't need it
func ReturnBuf(buf *bytes.Buffer) {
	bufPool.Put(buf)
}

// AccessCheck checks whether the file or directory exists
func AccessCheck(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("Not found %s or permision denied", err)
	}
	return nil
}

// ParseIPPort parses "IP:Port" and "[IPv6]:Port" strings; returns nil IP on failure
func ParseIPPort(ipPort string) (net.IP, int) {
	host, portStr, err := net.SplitHostPort(ipPort)
	if err != nil {
		return nil, 0
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, 0
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, 0
	}

	return ip, port
}

// Uint8Len returns bytes length in uint8 type
func Uint8Len(data []byte) uint8 {
	return uint8(len(data))
}

// Uint32Len returns bytes length in uint32 type
func Uint32Len(data []byte) uint32 {
	return uint32(len(data))
}

// ToHex returns the upper case hexadecimal encoding string
func ToHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// FromHex returns the bytes represented by the hexadecimal string s
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// TimeToString returns a textual representation of the time;
// it only accepts int64 or time.Time type
func TimeToString(t interface{}) string {

	if int64T, ok := t.(int64); ok {
		return time.Unix(int64T, 0).Format(timeFormat)
	}

	if timeT, ok := t.(time.Time); ok {
		return timeT.Format(timeFormat)
	}

	logger.Fatal("invalid call to TimeToString (%v)\n", t)
	return ""
}

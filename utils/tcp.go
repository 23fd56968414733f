package utils

import (
	"errors"
	"io"
	"net"
	"time"
)

const (
	tcpDialTimeout = 10 * time.Second
)

// ErrReadTimeout is returned by TCPConn.ReadTimeout when nothing arrived in time
var ErrReadTimeout = errors.New("read timeout")

// TCPConn is a connected byte stream owned by a single goroutine
type TCPConn interface {
	// ReadTimeout reads at most len(buf) bytes, waiting no longer than timeout.
	// It returns ErrReadTimeout if the window elapsed with no data and
	// (0, nil) once the remote closed the connection.
	ReadTimeout(buf []byte, timeout time.Duration) (int, error)

	// Write sends all of data or returns an error
	Write(data []byte) error

	RemoteAddr() net.Addr
	Close() error
}

// TCPConnectTo dials ip:port
func TCPConnectTo(ip net.IP, port int) (TCPConn, error) {
	targetAddr := &net.TCPAddr{
		IP:   ip,
		Port: port,
	}
	conn, err := net.DialTimeout("tcp", targetAddr.String(), tcpDialTimeout)
	if err != nil {
		return nil, err
	}

	return NewTCPConn(conn), nil
}

// NewTCPConn wraps an established net.Conn
func NewTCPConn(conn net.Conn) TCPConn {
	return &tcpConn{
		conn: conn,
	}
}

type tcpConn struct {
	conn net.Conn
}

func (c *tcpConn) ReadTimeout(buf []byte, timeout time.Duration) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}

	size, err := c.conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return 0, ErrReadTimeout
		}
		if err == io.EOF {
			logger.Debug("connection closed by remote:%v\n", c.RemoteAddr())
			return 0, nil
		}
		return size, err
	}

	return size, nil
}

func (c *tcpConn) Write(data []byte) error {
	for len(data) > 0 {
		n, err := c.conn.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (c *tcpConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

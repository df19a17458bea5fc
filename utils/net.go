package utils

import (
	"net"
	"time"

	"github.com/vuuvv/errors"
	"go.uber.org/zap"
)

func SafeCloseConn(conn net.Conn) {
	if conn != nil {
		zap.L().Info("Closing connections", zap.String("addr", conn.RemoteAddr().String()))
		if err := conn.Close(); err != nil {
			zap.L().Warn("close error: %v", zap.Error(err))
		}
	}
}

func OptimalTcpConn(conn net.Conn, readBufferSize, writeBufferSize int) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return errors.New("not a tcp connection")
	}

	// 启用TCP保活机制, 防止"半开连接"
	err := tcpConn.SetKeepAlive(true)
	if err != nil {
		return errors.WithStack(err)
	}

	// 每3分钟发送一次保活探测包, 默认值通常为15分钟
	err = tcpConn.SetKeepAlivePeriod(3 * time.Minute)
	if err != nil {
		return errors.WithStack(err)
	}

	// 禁用Nagle算法, 仪器指令短小, 立即发送以降低延迟
	err = tcpConn.SetNoDelay(true)
	if err != nil {
		return errors.WithStack(err)
	}

	err = tcpConn.SetReadBuffer(readBufferSize)
	if err != nil {
		return errors.WithStack(err)
	}

	err = tcpConn.SetWriteBuffer(writeBufferSize)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

package tcp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/vscpi/core"
	"github.com/vuuvv/vscpi/log"
	"github.com/vuuvv/vscpi/utils"
	"go.uber.org/zap"
)

// InterpreterFactory builds the interpreter for one accepted
// connection. Each session gets its own instance; interpreters are
// single threaded and carry per session state such as the error queue
// and the header context.
type InterpreterFactory func() (*core.Interpreter, error)

type ServerConfig struct {
	Address         string `json:"address"`
	ReadBufferSize  int    `json:"readBufferSize"`
	WriteBufferSize int    `json:"writeBufferSize"`
	MaxConnections  int    `json:"maxConnections"`
}

type Server struct {
	config           *ServerConfig
	listener         net.Listener
	connections      sync.Map
	wg               sync.WaitGroup
	ctx              context.Context
	cancel           context.CancelFunc
	factory          InterpreterFactory
	connectionCounts int32
}

func NewTCPServer(config *ServerConfig, factory InterpreterFactory) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	if config.ReadBufferSize <= 0 {
		config.ReadBufferSize = 4096
	}
	if config.WriteBufferSize <= 0 {
		config.WriteBufferSize = 4096
	}
	if config.MaxConnections <= 0 {
		config.MaxConnections = 10000
	}
	return &Server{
		config:  config,
		factory: factory,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.Errorf("failed to start listener: %v", err)
	}
	s.listener = listener

	log.Info("SCPI server start", zap.String("addr", listener.Addr().String()))

	// 启动连接清理协程
	s.wg.Add(1)
	go s.connectionCleaner()

	// 接受连接
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return nil
			default:
				log.Warn(errors.Wrap(err, "Accept error"))
				continue
			}
		}

		// 检查连接数限制
		if !s.acceptConnection() {
			log.Warn("Max connections reached, rejecting", zap.String("addr", conn.RemoteAddr().String()))
			utils.SafeCloseConn(conn)
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// Addr is the bound listener address, valid after Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) acceptConnection() bool {
	current := atomic.LoadInt32(&s.connectionCounts)
	if current >= int32(s.config.MaxConnections) {
		return false
	}
	return atomic.CompareAndSwapInt32(&s.connectionCounts, current, current+1)
}

func (s *Server) releaseConnection() {
	atomic.AddInt32(&s.connectionCounts, -1)
}

// handleConnection 处理单个连接
func (s *Server) handleConnection(conn net.Conn) {
	defer utils.NormalRecover()
	defer utils.SafeCloseConn(conn)
	defer s.wg.Done()
	defer s.releaseConnection()

	// 连接优化
	err := utils.OptimalTcpConn(conn, s.config.ReadBufferSize, s.config.WriteBufferSize)
	if err != nil {
		log.Warn(errors.Wrap(err, "OptimalTcpConn fail"))
		return
	}

	interp, err := s.factory()
	if err != nil {
		log.Error(errors.Wrap(err, "build interpreter fail"))
		return
	}

	session := NewConnection(s, conn, interp)
	defer s.RemoveConnection(session)
	err = session.Serve()
	if err != nil {
		log.Warn(errors.Wrap(err, "Serve fail"), session.zapFields()...)
		return
	}
}

func (s *Server) AddConnection(conn *Connection) {
	s.connections.Store(conn.key, conn)
}

func (s *Server) RemoveConnection(conn *Connection) {
	s.connections.Delete(conn.key)
}

// connectionCleaner 连接清理器
func (s *Server) connectionCleaner() {
	defer utils.Catch(func(reason any) {
		go s.releaseConnection()
	})
	defer s.wg.Done()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			count := 0
			s.connections.Range(func(key, value any) bool {
				count++
				return true
			})
			log.Info("Active connections", zap.Int("count", count))
		}
	}
}

// Stop 停止服务器
func (s *Server) Stop() error {
	zap.L().Info("Stopping SCPI server")
	s.cancel()

	if s.listener != nil {
		err := s.listener.Close()
		if err != nil {
			log.Warn(errors.Wrap(err, "Error closing listener"))
		}
	}

	// 关闭所有连接
	s.connections.Range(func(key, value interface{}) bool {
		if conn, ok := value.(*Connection); ok {
			conn.Close()
		}
		return true
	})

	// 等待所有goroutine结束
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Server shutdown complete")
		return nil
	case <-time.After(30 * time.Second):
		return errors.Errorf("shutdown timeout")
	}
}

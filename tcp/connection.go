package tcp

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/vuuvv/vscpi/core"
	"github.com/vuuvv/vscpi/log"
	"github.com/vuuvv/vscpi/utils"
	"go.uber.org/zap"
)

// Connection is one instrument control session. It adapts the network
// connection to the interpreter's byte stream boundary and keeps a
// small history of recent traffic for diagnostics.
type Connection struct {
	server         *Server
	conn           net.Conn
	key            string
	lastActiveTime time.Time
	mu             sync.Mutex
	ctx            context.Context
	cancel         context.CancelFunc
	interp         *core.Interpreter
	writer         *bufio.Writer
	history        *utils.LockFreeCircularBuffer[*utils.WithTime]
}

func NewConnection(server *Server, conn net.Conn, interp *core.Interpreter) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	session := &Connection{
		key:            utils.GenId(),
		server:         server,
		conn:           conn,
		lastActiveTime: time.Now(),
		ctx:            ctx,
		cancel:         cancel,
		interp:         interp,
		writer:         bufio.NewWriterSize(conn, server.config.WriteBufferSize),
		history:        utils.NewLockFreeCircularBuffer[*utils.WithTime](16),
	}
	server.AddConnection(session)
	return session
}

func (this *Connection) Key() string {
	return this.key
}

func (this *Connection) RemoteAddr() string {
	return this.conn.RemoteAddr().String()
}

func (this *Connection) Interpreter() *core.Interpreter {
	return this.interp
}

// Read implements core.Adapter.
func (this *Connection) Read(p []byte) (int, error) {
	n, err := this.conn.Read(p)
	if n > 0 {
		this.UpdateActiveTime()
		this.history.Add(&utils.WithTime{Time: time.Now(), Data: fmt.Sprintf("<- %q", p[:n])})
	}
	return n, err
}

// Write implements core.Adapter.
func (this *Connection) Write(data []byte) error {
	this.mu.Lock()
	defer this.mu.Unlock()
	this.history.Add(&utils.WithTime{Time: time.Now(), Data: fmt.Sprintf("-> %q", data)})
	_, err := this.writer.Write(data)
	return err
}

// Flush implements core.Adapter.
func (this *Connection) Flush() error {
	this.mu.Lock()
	defer this.mu.Unlock()
	return this.writer.Flush()
}

func (this *Connection) UpdateActiveTime() {
	this.mu.Lock()
	this.lastActiveTime = time.Now()
	this.mu.Unlock()
}

func (this *Connection) GetLastActiveTime() time.Time {
	this.mu.Lock()
	defer this.mu.Unlock()
	return this.lastActiveTime
}

func (this *Connection) Histories() []*utils.WithTime {
	return this.history.GetAll()
}

// Serve runs the interpreter loop until the peer disconnects or the
// session is cancelled.
func (this *Connection) Serve() error {
	/// 启动一个 Goroutine 来监听 Context 取消事件
	go this.checkCancel()

	return this.interp.Process(this.ctx, this)
}

func (this *Connection) checkCancel() {
	<-this.ctx.Done()
	log.Warn("Context cancelled. Setting ReadDeadline to NOW to interrupt session.", this.zapFields()...)

	// Context 被取消了，强制中断阻塞的读取
	err := this.conn.SetReadDeadline(time.Now())
	if err != nil {
		log.Error(err, this.zapFields()...)
	}
}

func (this *Connection) zapFields(fields ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("addr", this.RemoteAddr()),
		zap.String("key", this.key),
	}, fields...)
}

func (this *Connection) Close() {
	this.cancel()
	utils.SafeCloseConn(this.conn)
}

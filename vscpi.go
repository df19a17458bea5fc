// Package vscpi is a SCPI command interpreter for instrument firmware
// and instrument facing services. The core package holds the parser,
// the command tree and the interpreter; the tcp package serves
// interpreters over socket sessions.
package vscpi

import (
	"github.com/vuuvv/vscpi/core"
	"github.com/vuuvv/vscpi/log"
	"github.com/vuuvv/vscpi/tcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Error = core.Error
type ErrorQueue = core.ErrorQueue
type StaticErrorQueue = core.StaticErrorQueue

var NewStaticErrorQueue = core.NewStaticErrorQueue

type Value = core.Value
type Characters = core.Characters

type Config = core.Config

var NewConfigFromBytes = core.NewConfigFromBytes
var NewConfigFromFile = core.NewConfigFromFile

type Registry = core.Registry
type Registration = core.Registration
type HandlerFunc = core.HandlerFunc
type Interpreter = core.Interpreter
type Adapter = core.Adapter
type ResponseWriter = core.ResponseWriter

var NewRegistry = core.NewRegistry
var NewInterpreter = core.NewInterpreter
var NewResponseWriter = core.NewResponseWriter
var BuildTree = core.BuildTree

type StatusRegisters = core.StatusRegisters

var NewStatusRegisters = core.NewStatusRegisters
var RegisterErrorCommands = core.RegisterErrorCommands
var RegisterStandardCommands = core.RegisterStandardCommands
var RegisterStatusCommands = core.RegisterStatusCommands

type TcpServer = tcp.Server
type TcpServerConfig = tcp.ServerConfig
type InterpreterFactory = tcp.InterpreterFactory

var NewTcpServer = tcp.NewTCPServer

func Setup() {
	var logger *zap.Logger
	var err error
	if !zap.L().Core().Enabled(zapcore.PanicLevel) {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		logger = zap.L()
	}
	log.SetLogger(logger)
	log.SetDefaultLogger(logger)
}

package core

// EventStatus holds the IEEE 488.2 standard event status register bits.
type EventStatus uint8

const (
	EventOperationComplete EventStatus = 1 << iota
	EventRequestControl
	EventQueryError
	EventDeviceDependentError
	EventExecutionError
	EventCommandError
	EventUserRequest
	EventPowerOn
)

// StatusByte holds the IEEE 488.2 status byte register bits.
type StatusByte uint8

const (
	StatusImplementorDefined0 StatusByte = 1 << iota
	StatusImplementorDefined1
	StatusErrorEventQueue
	StatusDataQuestionable
	StatusMessageAvailable
	StatusStandardEvent
	StatusRequestService
	StatusOperationStatus
)

// StatusRegisters groups the event status register and the two enable
// masks. The enable registers select which bits are reported through
// *ESR? and *STB?.
type StatusRegisters struct {
	EventStatus       EventStatus
	EventStatusEnable EventStatus
	StatusByteEnable  StatusByte
}

// NewStatusRegisters returns the power on state: the power on event is
// latched and every non implementor defined bit is enabled.
func NewStatusRegisters() *StatusRegisters {
	return &StatusRegisters{
		EventStatus:       EventPowerOn,
		EventStatusEnable: 0xff,
		StatusByteEnable:  0xff &^ StatusImplementorDefined1 &^ StatusImplementorDefined0,
	}
}

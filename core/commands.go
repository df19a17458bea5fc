package core

import "context"

// Version reported by SYSTem:VERSion?.
const SCPIStdVersion = "1999.0"

// RegisterErrorCommands wires the standard error management commands
// against an error queue:
//
//   - SYSTem:ERRor[:NEXT]?
//   - SYSTem:ERRor:COUNt?
//
// The queue should be the one the interpreter pushes into, normally
// shared through Config.Queue.
func RegisterErrorCommands(r *Registry, queue ErrorQueue) {
	r.Add("SYSTem:ERRor[:NEXT]?", 0, func(ctx context.Context, args []Value) (any, error) {
		if err, ok := queue.Pop(); ok {
			return err, nil
		}
		return Error{}, nil
	})
	r.Add("SYSTem:ERRor:COUNt?", 0, func(ctx context.Context, args []Value) (any, error) {
		return queue.Count(), nil
	})
}

// RegisterStandardCommands wires SYSTem:VERSion?.
func RegisterStandardCommands(r *Registry) {
	r.Add("SYSTem:VERSion?", 0, func(ctx context.Context, args []Value) (any, error) {
		return Characters(SCPIStdVersion), nil
	})
}

// RegisterStatusCommands wires the IEEE 488.2 status reporting
// commands against a register set and the error queue:
//
//   - *CLS, *ESE, *ESE?, *ESR?, *OPC, *OPC?, *SRE, *SRE?, *STB?
func RegisterStatusCommands(r *Registry, regs *StatusRegisters, queue ErrorQueue) {
	r.Add("*CLS", 0, func(ctx context.Context, args []Value) (any, error) {
		queue.Clear()
		regs.EventStatus = 0
		return nil, nil
	})
	r.Add("*ESE", 1, func(ctx context.Context, args []Value) (any, error) {
		value, err := UintValue[uint8](args[0])
		if err != nil {
			return nil, err
		}
		regs.EventStatusEnable = EventStatus(value)
		return nil, nil
	})
	r.Add("*ESE?", 0, func(ctx context.Context, args []Value) (any, error) {
		return uint8(regs.EventStatusEnable), nil
	})
	r.Add("*ESR?", 0, func(ctx context.Context, args []Value) (any, error) {
		return eventStatusRegister(regs), nil
	})
	r.Add("*OPC", 0, func(ctx context.Context, args []Value) (any, error) {
		regs.EventStatus |= EventOperationComplete
		return nil, nil
	})
	r.Add("*OPC?", 0, func(ctx context.Context, args []Value) (any, error) {
		regs.EventStatus |= EventOperationComplete
		return regs.EventStatus&EventOperationComplete != 0, nil
	})
	r.Add("*SRE", 1, func(ctx context.Context, args []Value) (any, error) {
		value, err := UintValue[uint8](args[0])
		if err != nil {
			return nil, err
		}
		regs.StatusByteEnable = StatusByte(value)
		return nil, nil
	})
	r.Add("*SRE?", 0, func(ctx context.Context, args []Value) (any, error) {
		return uint8(regs.StatusByteEnable), nil
	})
	r.Add("*STB?", 0, func(ctx context.Context, args []Value) (any, error) {
		var status StatusByte
		if queue.Count() > 0 {
			status |= StatusErrorEventQueue
		}
		if eventStatusRegister(regs) != 0 {
			status |= StatusStandardEvent
		}
		return uint8(status & regs.StatusByteEnable), nil
	})
}

func eventStatusRegister(regs *StatusRegisters) uint8 {
	return uint8(regs.EventStatus & regs.EventStatusEnable)
}

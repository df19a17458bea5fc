package utils

import (
	"fmt"

	"github.com/vuuvv/vscpi/log"
)

func PanicIf(err error) {
	if err != nil {
		panic(err)
	}
}

func Panicf(format string, a ...any) {
	panic(fmt.Sprintf(format, a...))
}

func NormalRecover() {
	if r := recover(); r != nil {
		log.Error(r)
	}
}

func Catch(handler func(reason any)) {
	if r := recover(); r != nil {
		log.Error(r)
		handler(r)
	}
}

func SafeCall(fn func()) {
	defer NormalRecover()
	fn()
}

package exception

import (
	"os"
	"runtime/debug"

	"starledger/logx"
	"starledger/monitoring"
)

func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("EXCEPTION", "Panic in ", name, ": ", r, "\n", string(debug.Stack()))
			}
		}()
		fn()
	}()
}

func SafeGoWithPanic(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				monitoring.IncreasePanicCount()
				logx.Error("EXCEPTION", "Panic in ", name, ": ", r, "\n", string(debug.Stack()))
				os.Exit(1)
			}
		}()
		fn()
	}()
}

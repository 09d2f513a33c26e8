package malloc

import "sync/atomic"

import "github.com/bnclabs/gomalloc/log"

var logok = int64(0)

// LogEnable turns on logging for this package. Logging is off by
// default since a State's allocate/free paths run on every request
// and the formatting cost is not free.
func LogEnable() {
	atomic.StoreInt64(&logok, 1)
}

// LogDisable turns logging back off.
func LogDisable() {
	atomic.StoreInt64(&logok, 0)
}

func debugf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Debugf(format, v...)
	}
}

func infof(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Infof(format, v...)
	}
}

func warnf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Warnf(format, v...)
	}
}

func errorf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
		log.Errorf(format, v...)
	}
}

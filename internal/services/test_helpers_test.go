package services_test

import (
	"github.com/lessonforge/lessonforge-api/pkg/logger"
)

// The logger defaults to a nop; switch it to console output once so service
// log lines are visible under go test -v.
func init() {
	err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	})
	if err != nil {
		panic("logger init: " + err.Error())
	}
}

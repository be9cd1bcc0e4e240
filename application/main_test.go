package application_test

import (
	"testing"

	"coinbot/config"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	config.SetTestConfig(config.NewTestConfig())
	goleak.VerifyTestMain(m)
}

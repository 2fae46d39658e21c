package utils

import (
	"strconv"

	"github.com/clearlend/loanclear/utils/env"
)

// Dev returns true if loanclear is in development mode
func Dev() bool {
	return env.GetVar("LOANCLEAR_MODE") == "DEV"
}

// Stg returns true if loanclear is in staging mode
func Stg() bool {
	return env.GetVar("LOANCLEAR_MODE") == "STG"
}

// Prod returns true if loanclear is in production mode
func Prod() bool {
	return env.GetVar("LOANCLEAR_MODE") == "PROD"
}

// StandBy returns true if loanclear is in standby mode
func StandBy() bool {
	standby, _ := strconv.ParseBool(env.GetVar("STANDBY_MODE"))
	return standby
}

var (
	Sha1hash string
	Version  string = "dev"
)

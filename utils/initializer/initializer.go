package initializer

import (
	"github.com/clearlend/loanclear/utils/env"
)

// Initialize registers loanclear's required environment
// variables to their default values.
func Initialize() {
	// server
	env.RegisterDefault("LOANCLEAR_MODE", "DEV")
	env.RegisterDefault("LOANCLEAR_PORT", "5996")
	env.RegisterDefault("LOANCLEAR_METRICS_PORT", "7777")
	env.RegisterDefault("ADMIN_SECRET", "zrqvPg1f4yKU8sMBX0dTWhnbJc6oeEuA")
	env.RegisterDefault("LOG_LEVEL", "INFO")
	env.RegisterDefault("STANDBY_MODE", "FALSE")

	// payments
	env.RegisterDefault("PAYMENT_CURRENCY", "USD")

	// document extraction
	env.RegisterDefault("DOCAI_URL", "https://docai.clearlend.internal")
	env.RegisterDefault("DOCAI_API_KEY", "")
	env.RegisterDefault("DOCAI_MODELS", "clause-large,clause-pro,clause-lite")

	// metrics
	env.RegisterDefault("DD_AGENT_HOST", "127.0.0.1")
	env.RegisterDefault("DD_AGENT_PORT", "8125")
}

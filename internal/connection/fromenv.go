package connection

import (
	"log/slog"
	"strings"
)

// DetailsFromEnviron builds raw connection details from environment
// variables of the form <TYPE>[_<PREFIX>]_<KEY>, e.g. SINGLESTORE_HOST or
// SINGLESTORE_PROD_HOST. environ takes os.Environ()-style "KEY=value"
// entries so callers can substitute a fixture in tests.
func DetailsFromEnviron(environ []string, connectorType, prefix string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	connectorType = strings.ToUpper(connectorType)
	envPrefix := connectorType
	if prefix != "" {
		envPrefix = connectorType + "_" + strings.ToUpper(prefix)
	}
	envPrefix += "_"

	details := make(map[string]string)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		details[strings.ToLower(strings.TrimPrefix(key, envPrefix))] = value
	}
	details["type"] = strings.ToLower(connectorType)

	logger.Debug("built connection details from environment variables")
	return details
}

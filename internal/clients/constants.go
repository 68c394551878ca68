package clients

import "time"

const (
	DEFAULT_TIMEOUT    = 60 * time.Second
	PRODUCTION_TIMEOUT = 10 * time.Second
	USER_AGENT         = "docscore-client/1.0 (+https://github.com/spacesedan/docscore)"
)

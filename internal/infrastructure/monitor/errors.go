package monitor

import "errors"

var errNoAPI = errors.New("no API client configured")

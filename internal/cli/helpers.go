package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	JobKind         = "job"
	AppointmentKind = "appointment"
	StatusKind      = "status"
)

var (
	pluralKinds = map[string]string{
		JobKind:         "jobs",
		AppointmentKind: "appointments",
		StatusKind:      "statuses",
	}
)

func parseAndValidateKindId(arg string) (string, *uuid.UUID, error) {
	kind, rawID, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}

	if rawID == "" {
		return kind, nil, nil
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid %s id: %s", kind, rawID)
	}
	return kind, &id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}
